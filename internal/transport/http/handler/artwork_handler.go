package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kunstcollectie/internal/domain"
	"kunstcollectie/internal/service"
	"kunstcollectie/internal/transport/http/ez"
	"kunstcollectie/pkg/utils"
)

type ArtworkHandler struct {
	artworks *service.ArtworkService
	media    *service.MediaService
}

func NewArtworkHandler(artworks *service.ArtworkService, media *service.MediaService) *ArtworkHandler {
	return &ArtworkHandler{artworks: artworks, media: media}
}

func (h *ArtworkHandler) Mount(e ez.EZ) {
	g := e.Group("/kunstwerken")

	ez.RegisterAction(g, ez.Action[none, domain.Paged[domain.Artwork]]{
		Method: http.MethodGet,
		Path:   "",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *none) (domain.Paged[domain.Artwork], error) {
			p, ids, err := pageAnd(c, "kunstenaar_id", "type_id", "locatie_id", "leverancier_id")
			if err != nil {
				return domain.Paged[domain.Artwork]{}, err
			}
			f := domain.ArtworkFilter{
				Title:      c.Query("titel"),
				ArtistID:   ids[0],
				TypeID:     ids[1],
				LocationID: ids[2],
				SupplierID: ids[3],
				Status:     domain.ArtworkStatus(c.Query("status")),
			}
			return h.artworks.List(c.Request.Context(), f, p)
		},
	})
	ez.RegisterAction(g, ez.Action[none, *domain.Artwork]{
		Method: http.MethodGet,
		Path:   "/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *none) (*domain.Artwork, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			return h.artworks.Get(c.Request.Context(), id)
		},
	})
	ez.RegisterAction(g, ez.Action[none, *domain.Artwork]{
		Method: http.MethodPost,
		Path:   "",
		Binder: ez.BindNone,
		Role:   domain.RoleAdmin,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, _ *none) (*domain.Artwork, error) {
			v, err := values(c)
			if err != nil {
				return nil, err
			}
			in, err := v.Artwork()
			if err != nil {
				return nil, err
			}
			return h.artworks.Create(c.Request.Context(), in)
		},
	})
	ez.RegisterAction(g, ez.Action[none, *domain.Artwork]{
		Method: http.MethodPut,
		Path:   "/:id",
		Binder: ez.BindNone,
		Role:   domain.RoleAdmin,
		Handler: func(c *gin.Context, _ *none) (*domain.Artwork, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			v, err := values(c)
			if err != nil {
				return nil, err
			}
			in, err := v.Artwork()
			if err != nil {
				return nil, err
			}
			return h.artworks.Update(c.Request.Context(), id, in)
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
			return none{}, h.artworks.Delete(c.Request.Context(), id)
		},
	})

	h.mountMedia(g)
}

func (h *ArtworkHandler) mountMedia(g ez.EZ) {
	ez.RegisterAction(g, ez.Action[none, *domain.Image]{
		Method: http.MethodPost,
		Path:   "/:id/afbeeldingen",
		Binder: ez.BindNone,
		Role:   domain.RoleAdmin,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, _ *none) (*domain.Image, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			up, closer, err := upload(c, "afbeelding")
			if err != nil {
				return nil, err
			}
			defer closer.Close()
			primary, err := utils.ParseBool(c.PostForm("is_hoofdafbeelding"))
			if err != nil {
				return nil, domain.Invalid("not a boolean", "is_hoofdafbeelding")
			}
			return h.media.AddImage(c.Request.Context(), id, up, primary)
		},
	})
	ez.RegisterAction(g, ez.Action[none, none]{
		Method: http.MethodPut,
		Path:   "/:id/afbeeldingen/:afbeeldingId/hoofdafbeelding",
		Binder: ez.BindNone,
		Role:   domain.RoleAdmin,
		Handler: func(c *gin.Context, _ *none) (none, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return none{}, err
			}
			imgID, err := ez.ParamID(c, "afbeeldingId")
			if err != nil {
				return none{}, err
			}
			return none{}, h.media.SetPrimaryImage(c.Request.Context(), id, imgID)
		},
	})
	ez.RegisterAction(g, ez.Action[none, none]{
		Method: http.MethodDelete,
		Path:   "/:id/afbeeldingen/:afbeeldingId",
		Binder: ez.BindNone,
		Role:   domain.RoleAdmin,
		Handler: func(c *gin.Context, _ *none) (none, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return none{}, err
			}
			imgID, err := ez.ParamID(c, "afbeeldingId")
			if err != nil {
				return none{}, err
			}
			return none{}, h.media.DeleteImage(c.Request.Context(), id, imgID)
		},
	})
	ez.RegisterAction(g, ez.Action[none, *domain.Attachment]{
		Method: http.MethodPost,
		Path:   "/:id/bijlagen",
		Binder: ez.BindNone,
		Role:   domain.RoleAdmin,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, _ *none) (*domain.Attachment, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			up, closer, err := upload(c, "bijlage")
			if err != nil {
				return nil, err
			}
			defer closer.Close()
			return h.media.AddAttachment(c.Request.Context(), id, up, c.PostForm("beschrijving"))
		},
	})
	ez.RegisterAction(g, ez.Action[none, none]{
		Method: http.MethodDelete,
		Path:   "/:id/bijlagen/:bijlageId",
		Binder: ez.BindNone,
		Role:   domain.RoleAdmin,
		Handler: func(c *gin.Context, _ *none) (none, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return none{}, err
			}
			attID, err := ez.ParamID(c, "bijlageId")
			if err != nil {
				return none{}, err
			}
			return none{}, h.media.DeleteAttachment(c.Request.Context(), id, attID)
		},
	})
}
