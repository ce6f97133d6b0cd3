package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kunstcollectie/internal/domain"
	"kunstcollectie/internal/service"
	"kunstcollectie/internal/transport/http/ez"
)

type ArtistHandler struct {
	svc *service.ArtistService
}

func NewArtistHandler(svc *service.ArtistService) *ArtistHandler { return &ArtistHandler{svc: svc} }

func (h *ArtistHandler) Mount(e ez.EZ) {
	g := e.Group("/kunstenaars")

	ez.RegisterAction(g, ez.Action[none, domain.Paged[domain.ArtistSummary]]{
		Method: http.MethodGet,
		Path:   "",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *none) (domain.Paged[domain.ArtistSummary], error) {
			p, err := ez.PageOf(c)
			if err != nil {
				return domain.Paged[domain.ArtistSummary]{}, err
			}
			f := domain.ArtistFilter{Name: c.Query("naam"), Country: c.Query("land")}
			return h.svc.List(c.Request.Context(), f, p)
		},
	})
	ez.RegisterAction(g, ez.Action[none, *domain.ArtistSummary]{
		Method: http.MethodGet,
		Path:   "/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *none) (*domain.ArtistSummary, error) {
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
	ez.RegisterAction(g, ez.Action[none, *domain.ArtistSummary]{
		Method: http.MethodPost,
		Path:   "",
		Binder: ez.BindNone,
		Role:   domain.RoleAdmin,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, _ *none) (*domain.ArtistSummary, error) {
			v, err := values(c)
			if err != nil {
				return nil, err
			}
			in, err := v.Artist()
			if err != nil {
				return nil, err
			}
			return h.svc.Create(c.Request.Context(), in)
		},
	})
	ez.RegisterAction(g, ez.Action[none, *domain.ArtistSummary]{
		Method: http.MethodPut,
		Path:   "/:id",
		Binder: ez.BindNone,
		Role:   domain.RoleAdmin,
		Handler: func(c *gin.Context, _ *none) (*domain.ArtistSummary, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			v, err := values(c)
			if err != nil {
				return nil, err
			}
			in, err := v.Artist()
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
	ez.RegisterAction(g, ez.Action[none, *domain.ArtistSummary]{
		Method: http.MethodPost,
		Path:   "/:id/portret",
		Binder: ez.BindNone,
		Role:   domain.RoleAdmin,
		Handler: func(c *gin.Context, _ *none) (*domain.ArtistSummary, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			up, closer, err := upload(c, "portret")
			if err != nil {
				return nil, err
			}
			defer closer.Close()
			return h.svc.SetPortrait(c.Request.Context(), id, up)
		},
	})
}
