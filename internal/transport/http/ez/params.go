package ez

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"kunstcollectie/internal/domain"
)

// bindError 绑定失败统一成 ValidationError（超限保持原样）
func bindError(err error) error {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return err
	}
	if errors.Is(err, io.EOF) {
		return domain.Invalid("empty request body")
	}
	var se *json.SyntaxError
	var te *json.UnmarshalTypeError
	switch {
	case errors.As(err, &se):
		return domain.Invalid("malformed JSON")
	case errors.As(err, &te):
		return domain.Invalid("wrong type", te.Field)
	}
	return domain.Invalid(err.Error())
}

// ParamID 路径参数中的正整数 id
func ParamID(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, domain.Invalid("invalid id", name)
	}
	return uint(n), nil
}

// PageOf 解析 ?page=&limit=；缺省取默认值
func PageOf(c *gin.Context) (domain.Page, error) {
	atoi := func(key string) (int, error) {
		s := strings.TrimSpace(c.Query(key))
		if s == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, domain.Invalid("not a number", key)
		}
		return n, nil
	}
	page, err := atoi("page")
	if err != nil {
		return domain.Page{}, err
	}
	limit, err := atoi("limit")
	if err != nil {
		return domain.Page{}, err
	}
	return domain.NewPage(page, limit)
}

// QueryUint 可选的 id 查询参数
func QueryUint(c *gin.Context, key string) (uint, error) {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, domain.Invalid("invalid id", key)
	}
	return uint(n), nil
}

// Body 读取 JSON 对象体（数字保留原文）
func Body(c *gin.Context) (map[string]any, error) {
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()
	m := map[string]any{}
	if err := dec.Decode(&m); err != nil {
		return nil, bindError(err)
	}
	return m, nil
}
