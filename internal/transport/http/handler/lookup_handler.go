package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kunstcollectie/internal/domain"
	"kunstcollectie/internal/service"
	"kunstcollectie/internal/transport/http/ez"
)

// LookupHandler /types/kunstwerk 与 /types/locatie 共用
type LookupHandler struct {
	svc *service.LookupService
}

func NewLookupHandler(svc *service.LookupService) *LookupHandler { return &LookupHandler{svc: svc} }

func kindOf(c *gin.Context) domain.LookupKind { return domain.LookupKind(c.Param("kind")) }

func (h *LookupHandler) Mount(e ez.EZ) {
	g := e.Group("/types/:kind")

	ez.RegisterAction(g, ez.Action[none, []domain.Lookup]{
		Method: http.MethodGet,
		Path:   "",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *none) ([]domain.Lookup, error) {
			return h.svc.List(c.Request.Context(), kindOf(c))
		},
	})
	ez.RegisterAction(g, ez.Action[none, *domain.Lookup]{
		Method: http.MethodGet,
		Path:   "/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *none) (*domain.Lookup, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			return h.svc.Get(c.Request.Context(), kindOf(c), id)
		},
	})
	ez.RegisterAction(g, ez.Action[none, *domain.Lookup]{
		Method: http.MethodPost,
		Path:   "",
		Binder: ez.BindNone,
		Role:   domain.RoleAdmin,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, _ *none) (*domain.Lookup, error) {
			v, err := values(c)
			if err != nil {
				return nil, err
			}
			return h.svc.Create(c.Request.Context(), kindOf(c), v.Lookup())
		},
	})
	ez.RegisterAction(g, ez.Action[none, *domain.Lookup]{
		Method: http.MethodPut,
		Path:   "/:id",
		Binder: ez.BindNone,
		Role:   domain.RoleAdmin,
		Handler: func(c *gin.Context, _ *none) (*domain.Lookup, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			v, err := values(c)
			if err != nil {
				return nil, err
			}
			return h.svc.Update(c.Request.Context(), kindOf(c), id, v.Lookup())
		},
	})
	ez.RegisterAction(g, ez.Action[none, none]{
		Method: http.MethodDelete,
		Path:   "/:id",
		Binder: ez.BindNone,
		Role:   domain.RoleAdmin,
		Handler: func(c *gin.Context, _ *none) (none, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return none{}, err
			}
			return none{}, h.svc.Delete(c.Request.Context(), kindOf(c), id)
		},
	})
}
