package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kunstcollectie/internal/domain"
	"kunstcollectie/internal/service"
	"kunstcollectie/internal/transport/http/ez"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

type loginIn struct {
	Email    string `json:"email"`
	Password string `json:"wachtwoord"`
}

// MountPublic /auth/login（无需登录）
func (h *AuthHandler) MountPublic(e ez.EZ, limit ...gin.HandlerFunc) {
	ez.RegisterAction(e.Group("/auth", limit...), ez.Action[loginIn, *service.Session]{
		Method: http.MethodPost,
		Path:   "/login",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *loginIn) (*service.Session, error) {
			return h.svc.Authenticate(c.Request.Context(), in.Email, in.Password)
		},
	})
}

// Mount /auth/logout + /auth/me（已登录分组）
func (h *AuthHandler) Mount(e ez.EZ) {
	g := e.Group("/auth")
	ez.RegisterAction(g, ez.Action[none, none]{
		Method: http.MethodPost,
		Path:   "/logout",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *none) (none, error) {
			return none{}, h.svc.Logout(c.Request.Context(), ez.Claims(c))
		},
	})
	ez.RegisterAction(g, ez.Action[none, *service.UserView]{
		Method: http.MethodGet,
		Path:   "/me",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *none) (*service.UserView, error) {
			cl := ez.Claims(c)
			if cl == nil {
				return nil, domain.ErrUnauthenticated
			}
			return h.svc.Me(c.Request.Context(), cl.UID)
		},
	})
}
