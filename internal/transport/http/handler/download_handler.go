package handler

import (
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"kunstcollectie/internal/core/storage"
	"kunstcollectie/internal/domain"
	"kunstcollectie/internal/transport/http/ez"
)

// DownloadHandler 报表 / 备份 / 附件下载；文件名经过校验，防止目录穿越
type DownloadHandler struct {
	store *storage.Store
}

func NewDownloadHandler(store *storage.Store) *DownloadHandler { return &DownloadHandler{store: store} }

// 公开的图片目录（<img> 无法带 token）；附件走 /api/downloads
var mediaDirs = map[string]struct{}{
	storage.DirImages:    {},
	storage.DirPortraits: {},
}

// serve fixed 为空时目录取自路径参数，且必须在 mediaDirs 中
func (h *DownloadHandler) serve(fixed string) func(c *gin.Context, _ *none) (none, error) {
	return func(c *gin.Context, _ *none) (none, error) {
		dir := fixed
		if dir == "" {
			dir = c.Param("dir")
			if _, ok := mediaDirs[dir]; !ok {
				return none{}, domain.NotFoundf("bestand")
			}
		}
		name := c.Param("file")
		f, info, err := h.store.Open(dir, name)
		if err != nil {
			return none{}, err
		}
		defer f.Close()
		ct := mime.TypeByExtension(filepath.Ext(name))
		if ct == "" {
			ct = "application/octet-stream"
		}
		c.Header("Content-Type", ct)
		disp := "attachment"
		if strings.HasPrefix(ct, "image/") {
			disp = "inline"
		}
		c.Header("Content-Disposition", mime.FormatMediaType(disp, map[string]string{"filename": name}))
		http.ServeContent(c.Writer, c.Request, name, info.ModTime(), f)
		return none{}, nil
	}
}

func (h *DownloadHandler) Mount(e ez.EZ) {
	g := e.Group("/downloads")
	ez.RegisterAction(g, ez.Action[none, none]{
		Method:  http.MethodGet,
		Path:    "/" + storage.DirReports + "/:file",
		Binder:  ez.BindNone,
		Handler: h.serve(storage.DirReports),
	})
	ez.RegisterAction(g, ez.Action[none, none]{
		Method:  http.MethodGet,
		Path:    "/" + storage.DirAttachments + "/:file",
		Binder:  ez.BindNone,
		Handler: h.serve(storage.DirAttachments),
	})
	ez.RegisterAction(g, ez.Action[none, none]{
		Method:  http.MethodGet,
		Path:    "/" + storage.DirBackups + "/:file",
		Binder:  ez.BindNone,
		Role:    domain.RoleAdmin,
		Handler: h.serve(storage.DirBackups),
	})
}

// MountMedia /uploads/{kunstwerken,kunstenaars}/:file（无需登录）
func (h *DownloadHandler) MountMedia(e ez.EZ) {
	ez.RegisterAction(e, ez.Action[none, none]{
		Method:  http.MethodGet,
		Path:    "/uploads/:dir/:file",
		Binder:  ez.BindNone,
		Handler: h.serve(""),
	})
}
