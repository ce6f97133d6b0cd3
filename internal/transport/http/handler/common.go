package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"kunstcollectie/internal/domain"
	"kunstcollectie/internal/service"
	"kunstcollectie/internal/transport/http/ez"
)

// none 无出参动作的返回值
type none = struct{}

// values 读取 JSON 体并转成 service.Values
func values(c *gin.Context) (service.Values, error) {
	m, err := ez.Body(c)
	if err != nil {
		return nil, err
	}
	return service.ValuesOf(m), nil
}

// query 把查询参数转成 service.Values（同名取第一个）
func query(c *gin.Context) service.Values {
	out := service.Values{}
	for k, v := range c.Request.URL.Query() {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}

// upload 取 multipart 文件；调用方负责 close
func upload(c *gin.Context, field string) (domain.Upload, io.Closer, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return domain.Upload{}, nil, err
		}
		return domain.Upload{}, nil, domain.Invalid("no file uploaded", field)
	}
	f, err := fh.Open()
	if err != nil {
		return domain.Upload{}, nil, err
	}
	return domain.Upload{FileName: fh.Filename, Size: fh.Size, Content: f}, f, nil
}

func pageAnd(c *gin.Context, ids ...string) (domain.Page, []uint, error) {
	p, err := ez.PageOf(c)
	if err != nil {
		return p, nil, err
	}
	out := make([]uint, len(ids))
	for i, k := range ids {
		if out[i], err = ez.QueryUint(c, k); err != nil {
			return p, nil, err
		}
	}
	return p, out, nil
}
