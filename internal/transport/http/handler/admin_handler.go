package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kunstcollectie/internal/service"
	"kunstcollectie/internal/transport/http/ez"
)

// AdminHandler /admin/import 与 /admin/backup（分组已要求 admin）
type AdminHandler struct {
	imports *service.ImportService
	backups *service.BackupService
}

func NewAdminHandler(imports *service.ImportService, backups *service.BackupService) *AdminHandler {
	return &AdminHandler{imports: imports, backups: backups}
}

func (h *AdminHandler) Mount(e ez.EZ) {
	ez.RegisterAction(e, ez.Action[none, *service.ImportResult]{
		Method: http.MethodPost,
		Path:   "/import",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *none) (*service.ImportResult, error) {
			up, closer, err := upload(c, "bestand")
			if err != nil {
				return nil, err
			}
			defer closer.Close()
			return h.imports.Import(c.Request.Context(), service.ImportKind(c.PostForm("type")), up)
		},
	})
	ez.RegisterAction(e, ez.Action[none, *service.BackupResult]{
		Method: http.MethodGet,
		Path:   "/backup",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *none) (*service.BackupResult, error) {
			return h.backups.Create(c.Request.Context())
		},
	})
}
