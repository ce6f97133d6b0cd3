package middleware

import (
	"bytes"
	"encoding/json"
	"html"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"

	resp "kunstcollectie/internal/transport/http/response"
)

// 不做清洗的 key（密码原样保留）
var rawKeys = map[string]struct{}{
	"wachtwoord": {}, "password": {},
}

// SanitizeJSON 清洗 JSON 体中所有字符串字段（去掉 HTML 标签）
func SanitizeJSON() gin.HandlerFunc {
	policy := bluemonday.StrictPolicy()
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			c.Next()
			return
		}
		if !strings.HasPrefix(c.ContentType(), gin.MIMEJSON) || c.Request.Body == nil {
			c.Next()
			return
		}

		buf, err := io.ReadAll(c.Request.Body)
		if err != nil {
			code := resp.CodeBadRequest
			var mbe *http.MaxBytesError
			if errorsAs(err, &mbe) {
				code = resp.CodeTooLarge
			}
			c.AbortWithStatusJSON(code, resp.Error(code, "invalid body"))
			return
		}
		if len(bytes.TrimSpace(buf)) == 0 {
			c.Request.Body = io.NopCloser(bytes.NewReader(buf))
			c.Next()
			return
		}
		dec := json.NewDecoder(bytes.NewReader(buf))
		dec.UseNumber()
		var body any
		if err := dec.Decode(&body); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, "malformed JSON"))
			return
		}

		clean, _ := json.Marshal(sanitize(policy, "", body))
		c.Request.Body = io.NopCloser(bytes.NewReader(clean))
		c.Request.ContentLength = int64(len(clean))
		c.Next()
	}
}

func sanitize(p *bluemonday.Policy, key string, v any) any {
	switch x := v.(type) {
	case string:
		if _, ok := rawKeys[strings.ToLower(key)]; ok {
			return x
		}
		// StrictPolicy 会转义 & 等字符，这里还原成纯文本
		return html.UnescapeString(p.Sanitize(x))
	case map[string]any:
		for k, vv := range x {
			x[k] = sanitize(p, k, vv)
		}
		return x
	case []any:
		for i, vv := range x {
			x[i] = sanitize(p, key, vv)
		}
		return x
	}
	return v
}
