package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/online-bookstore/internal/interface/http/validator"
	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
	"github.com/xiebiao/online-bookstore/pkg/response"
)

// bindError 参数绑定/校验失败统一返回40900
func bindError(c *gin.Context, err error) {
	response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "参数错误: "+validator.Describe(err))
}

// pathID 解析路径参数中的正整数ID
func pathID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "无效的"+name+": "+raw)
		return 0, false
	}
	return uint(id), true
}

// splitValues 展开重复参数和逗号分隔的值
func splitValues(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
