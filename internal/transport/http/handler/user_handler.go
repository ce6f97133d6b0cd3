package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kunstcollectie/internal/domain"
	"kunstcollectie/internal/service"
	"kunstcollectie/internal/transport/http/ez"
)

// UserHandler /admin/gebruikers（分组已要求 admin）
type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler { return &UserHandler{svc: svc} }

type userIn struct {
	Email    string      `json:"email"`
	Name     string      `json:"naam"`
	Password string      `json:"wachtwoord"`
	Role     domain.Role `json:"rol"`
}

func (in *userIn) input() service.UserInput {
	return service.UserInput{Email: in.Email, Name: in.Name, Password: in.Password, Role: in.Role}
}

func (h *UserHandler) Mount(e ez.EZ) {
	g := e.Group("/gebruikers")

	ez.RegisterAction(g, ez.Action[none, domain.Paged[service.UserView]]{
		Method: http.MethodGet,
		Path:   "",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *none) (domain.Paged[service.UserView], error) {
			p, err := ez.PageOf(c)
			if err != nil {
				return domain.Paged[service.UserView]{}, err
			}
			return h.svc.List(c.Request.Context(), domain.UserFilter{Q: c.Query("q")}, p)
		},
	})
	ez.RegisterAction(g, ez.Action[none, *service.UserView]{
		Method: http.MethodGet,
		Path:   "/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *none) (*service.UserView, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			return h.svc.Get(c.Request.Context(), id)
		},
	})
	ez.RegisterAction(g, ez.Action[userIn, *service.UserView]{
		Method: http.MethodPost,
		Path:   "",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *userIn) (*service.UserView, error) {
			return h.svc.Create(c.Request.Context(), in.input())
		},
	})
	ez.RegisterAction(g, ez.Action[userIn, *service.UserView]{
		Method: http.MethodPut,
		Path:   "/:id",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *userIn) (*service.UserView, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			return h.svc.Update(c.Request.Context(), id, in.input())
		},
	})
	ez.RegisterAction(g, ez.Action[none, none]{
		Method: http.MethodDelete,
		Path:   "/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *none) (none, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return none{}, err
			}
			return none{}, h.svc.Delete(c.Request.Context(), id)
		},
	})
}
