package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kunstcollectie/internal/domain"
	"kunstcollectie/internal/service"
	"kunstcollectie/internal/transport/http/ez"
)

type SupplierHandler struct {
	svc *service.SupplierService
}

func NewSupplierHandler(svc *service.SupplierService) *SupplierHandler {
	return &SupplierHandler{svc: svc}
}

func (h *SupplierHandler) Mount(e ez.EZ) {
	g := e.Group("/leveranciers")

	ez.RegisterAction(g, ez.Action[none, domain.Paged[domain.Supplier]]{
		Method: http.MethodGet,
		Path:   "",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *none) (domain.Paged[domain.Supplier], error) {
			p, err := ez.PageOf(c)
			if err != nil {
				return domain.Paged[domain.Supplier]{}, err
			}
			return h.svc.List(c.Request.Context(), domain.SupplierFilter{Name: c.Query("naam")}, p)
		},
	})
	ez.RegisterAction(g, ez.Action[none, *domain.Supplier]{
		Method: http.MethodGet,
		Path:   "/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *none) (*domain.Supplier, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			return h.svc.Get(c.Request.Context(), id)
		},
	})
	ez.RegisterAction(g, ez.Action[none, *domain.Supplier]{
		Method: http.MethodPost,
		Path:   "",
		Binder: ez.BindNone,
		Role:   domain.RoleAdmin,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, _ *none) (*domain.Supplier, error) {
			v, err := values(c)
			if err != nil {
				return nil, err
			}
			return h.svc.Create(c.Request.Context(), v.Supplier())
		},
	})
	ez.RegisterAction(g, ez.Action[none, *domain.Supplier]{
		Method: http.MethodPut,
		Path:   "/:id",
		Binder: ez.BindNone,
		Role:   domain.RoleAdmin,
		Handler: func(c *gin.Context, _ *none) (*domain.Supplier, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			v, err := values(c)
			if err != nil {
				return nil, err
			}
			return h.svc.Update(c.Request.Context(), id, v.Supplier())
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
			return none{}, h.svc.Delete(c.Request.Context(), id)
		},
	})
}
