package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kunstcollectie/internal/domain"
	"kunstcollectie/internal/service"
	"kunstcollectie/internal/transport/http/ez"
)

type LocationHandler struct {
	svc *service.LocationService
}

func NewLocationHandler(svc *service.LocationService) *LocationHandler {
	return &LocationHandler{svc: svc}
}

func (h *LocationHandler) Mount(e ez.EZ) {
	g := e.Group("/locaties")

	ez.RegisterAction(g, ez.Action[none, domain.Paged[domain.LocationSummary]]{
		Method: http.MethodGet,
		Path:   "",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *none) (domain.Paged[domain.LocationSummary], error) {
			p, ids, err := pageAnd(c, "type_id")
			if err != nil {
				return domain.Paged[domain.LocationSummary]{}, err
			}
			f := domain.LocationFilter{Name: c.Query("naam"), TypeID: ids[0]}
			return h.svc.List(c.Request.Context(), f, p)
		},
	})
	ez.RegisterAction(g, ez.Action[none, *domain.LocationSummary]{
		Method: http.MethodGet,
		Path:   "/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *none) (*domain.LocationSummary, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			return h.svc.Get(c.Request.Context(), id)
		},
	})
	ez.RegisterAction(g, ez.Action[none, domain.Paged[domain.Artwork]]{
		Method: http.MethodGet,
		Path:   "/:id/kunstwerken",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *none) (domain.Paged[domain.Artwork], error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return domain.Paged[domain.Artwork]{}, err
			}
			p, err := ez.PageOf(c)
			if err != nil {
				return domain.Paged[domain.Artwork]{}, err
			}
			return h.svc.Artworks(c.Request.Context(), id, p)
		},
	})
	ez.RegisterAction(g, ez.Action[none, *domain.LocationSummary]{
		Method: http.MethodPost,
		Path:   "",
		Binder: ez.BindNone,
		Role:   domain.RoleAdmin,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, _ *none) (*domain.LocationSummary, error) {
			v, err := values(c)
			if err != nil {
				return nil, err
			}
			in, err := v.Location()
			if err != nil {
				return nil, err
			}
			return h.svc.Create(c.Request.Context(), in)
		},
	})
	ez.RegisterAction(g, ez.Action[none, *domain.LocationSummary]{
		Method: http.MethodPut,
		Path:   "/:id",
		Binder: ez.BindNone,
		Role:   domain.RoleAdmin,
		Handler: func(c *gin.Context, _ *none) (*domain.LocationSummary, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			v, err := values(c)
			if err != nil {
				return nil, err
			}
			in, err := v.Location()
			if err != nil {
				return nil, err
			}
			return h.svc.Update(c.Request.Context(), id, in)
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
