package category

import (
	"strings"
	"time"
	"unicode/utf8"
)

// 字段长度限制
const (
	MaxNameLength        = 255
	MaxDescriptionLength = 1024
)

// Category 图书分类实体
// 与Book是多对多关系,关联保存在book_categories表
type Category struct {
	ID          uint
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCategory 创建分类
func NewCategory(name, description string) (*Category, error) {
	c := &Category{}
	if err := c.Rename(name, description); err != nil {
		return nil, err
	}
	c.CreatedAt = c.UpdatedAt
	return c, nil
}

// Rename 更新名称和描述
func (c *Category) Rename(name, description string) error {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > MaxNameLength {
		return ErrInvalidName
	}
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return ErrInvalidDescription
	}
	c.Name = name
	c.Description = description
	c.UpdatedAt = time.Now()
	return nil
}
