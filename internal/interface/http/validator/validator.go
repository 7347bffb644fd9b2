package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/xiebiao/online-bookstore/internal/domain/book"
)

// Register 向gin的校验引擎注册自定义规则
//
//	isbn: 数字/连字符/空格组成,去掉分隔符后为10位或13位(ISBN-10末位可为X)
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin校验引擎不是validator/v10")
	}
	return RegisterOn(v)
}

// RegisterOn 在指定的validator实例上注册规则(测试使用)
func RegisterOn(v *validator.Validate) error {
	return v.RegisterValidation("isbn", func(fl validator.FieldLevel) bool {
		return book.IsValidISBN(fl.Field().String())
	})
}

// Describe 把校验错误转换为可读消息
// 例如 "price: 必须大于0; isbn: ISBN格式不正确"
func Describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fieldName(fe), message(fe)))
	}
	return strings.Join(msgs, "; ")
}

func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "不能为空"
	case "isbn":
		return "ISBN格式不正确"
	case "email":
		return "邮箱格式不正确"
	case "eqfield":
		return "与" + fe.Param() + "不一致"
	case "gt":
		return "必须大于" + fe.Param()
	case "gte", "min":
		return "不能小于" + fe.Param()
	case "lte", "max":
		return "不能超过" + fe.Param()
	case "oneof":
		return "必须是以下之一: " + fe.Param()
	default:
		return "校验失败(" + fe.Tag() + ")"
	}
}
