package ez

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kunstcollectie/internal/core/auth"
	"kunstcollectie/internal/domain"
	resp "kunstcollectie/internal/transport/http/response"
)

// gin.Context 中的 key
const (
	KeyClaims    = "claims"
	KeyUserID    = "userId"
	KeyRole      = "role"
	KeyRequestID = "X-Request-ID"
)

type EZ struct {
	g   *gin.RouterGroup
	log *zap.Logger
}

func New(g *gin.RouterGroup, l *zap.Logger) EZ { return EZ{g: g, log: l} }

// Group 子分组，继承 logger
func (e EZ) Group(path string, mw ...gin.HandlerFunc) EZ {
	return EZ{g: e.g.Group(path, mw...), log: e.log}
}

func (e EZ) Logger() *zap.Logger { return e.log }

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON 绑定
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindNone  Binder = "none"  // 不绑定，自己从 c.Param / c.PostForm 取
)

// 动作定义：I 入参，O 出参
type Action[I any, O any] struct {
	Method  string      // "GET" | "POST" | "PUT" | "DELETE"
	Path    string      // 例："/kunstwerken/:id/afbeeldingen"
	Binder  Binder      // 绑定方式
	Role    domain.Role // 需要的角色；空表示任意已登录（分组未鉴权时不检查）
	Status  int         // 成功时的 HTTP 状态，默认 200
	Handler func(c *gin.Context, in *I) (O, error)
}

// paged 列表结果拆成 data + pagination
type paged interface {
	Body() any
	Meta() domain.Pagination
}

// Claims 取当前会话（未经过 AuthJWT 时为 nil）
func Claims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(KeyClaims); ok {
		if cl, ok := v.(*auth.Claims); ok {
			return cl
		}
	}
	return nil
}

// RegisterAction 在当前 EZ 下注册动作接口
func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		// 1) 角色
		if a.Role != "" && !auth.Authorize(Claims(c), a.Role) {
			if Claims(c) == nil {
				Fail(c, e.log, domain.ErrUnauthenticated)
				return
			}
			Fail(c, e.log, domain.ErrForbidden)
			return
		}

		// 2) 绑定入参
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		default: // BindNone: 不绑定
		}
		if bindErr != nil {
			Fail(c, e.log, bindError(bindErr))
			return
		}

		// 3) 执行
		out, err := a.Handler(c, &in)
		if err != nil {
			Fail(c, e.log, err)
			return
		}
		if c.Writer.Written() {
			return // 文件下载等已自行写响应
		}

		// 4) 统一成功信封
		status := a.Status
		if status == 0 {
			status = http.StatusOK
		}
		if p, ok := any(out).(paged); ok {
			c.JSON(status, resp.Page(p.Body(), p.Meta()))
			return
		}
		c.JSON(status, resp.OK(out))
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodPatch:
		e.g.PATCH(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default: // 默认 POST
		e.g.POST(a.Path, h)
	}
}
