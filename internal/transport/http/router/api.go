package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"kunstcollectie/internal/core/auth"
	"kunstcollectie/internal/core/cache"
	"kunstcollectie/internal/core/database"
	"kunstcollectie/internal/core/server"
	"kunstcollectie/internal/domain"
	"kunstcollectie/internal/transport/http/ez"
	"kunstcollectie/internal/transport/http/handler"
	mdw "kunstcollectie/internal/transport/http/middleware"
	resp "kunstcollectie/internal/transport/http/response"
)

// Limits 全局中间件参数
type Limits struct {
	RPS            float64
	Burst          int
	LoginRPS       float64
	LoginBurst     int
	MaxConcurrent  int64
	MaxBodyBytes   int64
	RequestTimeout time.Duration
}

// Handlers 各业务模块
type Handlers struct {
	Auth      *handler.AuthHandler
	Artworks  *handler.ArtworkHandler
	Artists   *handler.ArtistHandler
	Locations *handler.LocationHandler
	Suppliers *handler.SupplierHandler
	Lookups   *handler.LookupHandler
	Reports   *handler.ReportHandler
	Downloads *handler.DownloadHandler
	Users     *handler.UserHandler
	Admin     *handler.AdminHandler
}

type Deps struct {
	Log         *zap.Logger
	DB          *gorm.DB
	Cache       *cache.Cache
	JWT         *auth.JWTer
	CORSOrigins []string
	Limits      Limits
	Handlers    Handlers
}

func NewAPIEngine(d Deps) *gin.Engine {
	r := server.NewRouter(d.Log, d.CORSOrigins)
	lim := d.Limits

	// 中间件
	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(rate.Limit(lim.RPS), lim.Burst),
		mdw.ConcurrencyLimit(lim.MaxConcurrent),
		mdw.MaxBodyBytes(lim.MaxBodyBytes),
		mdw.Timeout(lim.RequestTimeout, handler.ExportPath),
		mdw.Recovery(d.Log),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
		mdw.SanitizeJSON(),
	)

	// 健康检查
	r.GET("/health", health(d))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h := d.Handlers

	// 媒体文件（<img src> 无 token）
	if h.Downloads != nil {
		h.Downloads.MountMedia(ez.New(&r.RouterGroup, d.Log))
	}

	api := r.Group("/api")

	// 公共：登录（按 IP 限流）
	public := ez.New(api, d.Log)
	if h.Auth != nil {
		h.Auth.MountPublic(public, mdw.RateLimitPerIP(rate.Limit(lim.LoginRPS), lim.LoginBurst))
	}

	// 登录用户（读；写操作在 Action 上要求 admin）
	reader := ez.New(api, d.Log).Group("", mdw.AuthJWT(d.JWT, "", d.Log))
	mountAll(reader,
		moduleOf(h.Auth),
		moduleOf(h.Artworks),
		moduleOf(h.Artists),
		moduleOf(h.Locations),
		moduleOf(h.Suppliers),
		moduleOf(h.Lookups),
		moduleOf(h.Reports),
		moduleOf(h.Downloads),
	)

	// 管理端（分组统一要求 admin）
	admin := ez.New(api, d.Log).Group("/admin", mdw.AuthJWT(d.JWT, domain.RoleAdmin, d.Log))
	mountAll(admin, moduleOf(h.Users), moduleOf(h.Admin))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, resp.Error(resp.CodeNotFound, "route not found"))
	})
	return r
}

// moduleOf 把 nil 指针转成 nil 接口，便于测试时只装配部分模块
func moduleOf[T any, P interface {
	*T
	Module
}](p P) Module {
	if p == nil {
		return nil
	}
	return p
}

func health(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		checks := gin.H{"db": "ok"}
		status := http.StatusOK
		if err := database.Ping(ctx, d.DB); err != nil {
			checks["db"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		if d.Cache.Enabled() {
			checks["redis"] = "ok"
			if err := d.Cache.Ping(ctx); err != nil {
				checks["redis"] = err.Error()
				status = http.StatusServiceUnavailable
			}
		}
		if status != http.StatusOK {
			c.JSON(status, resp.Resp{Success: false, Code: resp.CodeUnavailable, Message: "unhealthy", Data: checks})
			return
		}
		c.JSON(status, resp.OK(checks))
	}
}
