package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookForm struct {
	ISBN     string `validate:"required,isbn"`
	Password string `validate:"required,min=6,max=16"`
	Repeat   string `validate:"eqfield=Password"`
}

func TestISBNRule(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterOn(v))

	tests := []struct {
		name  string
		isbn  string
		valid bool
	}{
		{"ISBN-13", "9787536692930", true},
		{"带连字符", "978-7-5366-9293-0", true},
		{"ISBN-10末位X", "080442957X", true},
		{"X不在末位", "08044X9571", false},
		{"长度错误", "12345", false},
		{"包含字母", "97875366929AB", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(bookForm{ISBN: tt.isbn, Password: "abc123", Repeat: "abc123"})
			assert.Equal(t, tt.valid, err == nil, "isbn=%s err=%v", tt.isbn, err)
		})
	}
}

func TestDescribe(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterOn(v))

	err := v.Struct(bookForm{ISBN: "bad", Password: "abc123", Repeat: "abc124"})
	require.Error(t, err)

	msg := Describe(err)
	assert.Contains(t, msg, "ISBN: ISBN格式不正确")
	assert.Contains(t, msg, "Repeat: 与Password不一致")
}
