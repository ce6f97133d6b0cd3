package app

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"kunstcollectie/internal/core/auth"
	"kunstcollectie/internal/core/cache"
	"kunstcollectie/internal/core/config"
	"kunstcollectie/internal/core/database"
	"kunstcollectie/internal/core/events"
	"kunstcollectie/internal/core/logger"
	"kunstcollectie/internal/core/storage"
	"kunstcollectie/internal/repo"
	"kunstcollectie/internal/service"
	"kunstcollectie/internal/transport/http/handler"
	"kunstcollectie/internal/transport/http/router"
)

// Repos 数据访问层
type Repos struct {
	Users     *repo.UserRepo
	Artworks  *repo.ArtworkRepo
	Artists   *repo.ArtistRepo
	Locations *repo.LocationRepo
	Suppliers *repo.SupplierRepo
	Lookups   *repo.LookupRepo
	Media     *repo.MediaRepo
	Exports   *repo.ExportRepo
}

// Services 业务层
type Services struct {
	Auth      *service.AuthService
	Users     *service.UserService
	Artworks  *service.ArtworkService
	Media     *service.MediaService
	Artists   *service.ArtistService
	Locations *service.LocationService
	Suppliers *service.SupplierService
	Lookups   *service.LookupService
	Reports   *service.ReportService
	Exports   *service.ExportService
	Imports   *service.ImportService
	Backups   *service.BackupService
	Seed      *service.SeedService
}

// App 进程内共享的依赖
type App struct {
	Cfg      *config.Config
	Log      *zap.Logger
	DB       *gorm.DB
	Cache    *cache.Cache
	JWT      *auth.JWTer
	Store    *storage.Store
	Events   events.Publisher
	Repos    Repos
	Services Services

	closers []func() error
}

// New 打开 DB / redis / amqp 并装配各层；失败时已打开的资源会被关闭
func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	a := &App{Cfg: cfg, Log: log}

	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		LogWriter:          logger.ToWriter(log.Named("gorm"), zapcore.WarnLevel),
	})
	if err != nil {
		return nil, err
	}
	a.DB = db
	a.closers = append(a.closers, func() error { return database.Close(db) })
	log.Info("database connected",
		zap.String("driver", cfg.DB.Driver),
		zap.String("dsn", database.MaskDSN(cfg.DB.DSN)))

	if cfg.DB.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			_ = a.Close()
			return nil, err
		}
		log.Info("automigrate done")
	}

	// 缓存 + token 注销表
	a.Cache = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	var deny auth.Denylist
	if a.Cache.Enabled() {
		a.closers = append(a.closers, a.Cache.Close)
		deny = auth.NewRedisDenylist(a.Cache.RDB)
		log.Info("redis enabled", zap.String("addr", cfg.Redis.Addr))
	} else {
		deny = auth.NewMemoryDenylist()
	}
	a.JWT = &auth.JWTer{
		Secret:   []byte(cfg.JWT.Secret),
		Issuer:   cfg.JWT.Issuer,
		TTL:      time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
		Denylist: deny,
	}

	// 事件
	a.Events = events.Nop{}
	if cfg.AMQP.URL != "" {
		pub, err := events.DialAMQP(cfg.AMQP.URL, cfg.AMQP.Exchange, log.Named("amqp"))
		if err != nil {
			// 通知是可选的，连不上只告警
			log.Warn("amqp unavailable, events disabled", zap.Error(err))
		} else {
			a.Events = pub
			a.closers = append(a.closers, pub.Close)
		}
	}

	a.Store = storage.NewOS(cfg.Storage.Root)
	a.wire()
	return a, nil
}

func (a *App) wire() {
	cfg, log, db := a.Cfg, a.Log, a.DB
	r := Repos{
		Users:     repo.NewUserRepo(db),
		Artworks:  repo.NewArtworkRepo(db),
		Artists:   repo.NewArtistRepo(db),
		Locations: repo.NewLocationRepo(db),
		Suppliers: repo.NewSupplierRepo(db),
		Lookups:   repo.NewLookupRepo(db),
		Media:     repo.NewMediaRepo(db),
		Exports:   repo.NewExportRepo(db),
	}
	a.Repos = r

	images := service.ImagePolicy(config.MB(cfg.Storage.MaxImageMB))
	attachments := service.AttachmentPolicy(config.MB(cfg.Storage.MaxAttachmentMB))
	sheets := service.SpreadsheetPolicy(config.MB(cfg.Storage.MaxImportMB))
	cost := cfg.Security.BcryptCost

	s := Services{
		Auth:      service.NewAuthService(r.Users, a.JWT, log.Named("auth")),
		Users:     service.NewUserService(r.Users, cost, log.Named("users")),
		Artworks:  service.NewArtworkService(r.Artworks, r.Artists, r.Locations, r.Suppliers, r.Lookups, a.Store, a.Events, log.Named("artworks")),
		Media:     service.NewMediaService(r.Artworks, r.Media, a.Store, images, attachments, log.Named("media")),
		Artists:   service.NewArtistService(r.Artists, r.Artworks, a.Store, images, log.Named("artists")),
		Locations: service.NewLocationService(r.Locations, r.Artworks, r.Lookups),
		Suppliers: service.NewSupplierService(r.Suppliers),
		Lookups:   service.NewLookupService(r.Lookups, a.Cache, log.Named("lookups")),
		Reports:   service.NewReportService(r.Artworks, r.Artists, r.Locations),
		Backups:   service.NewBackupService(r.Artworks, r.Artists, r.Locations, r.Suppliers, r.Lookups, a.Store, a.Events, log.Named("backup")),
		Seed:      service.NewSeedService(r.Lookups, r.Suppliers, r.Users, cost, log.Named("seed")),
	}
	s.Exports = service.NewExportService(s.Reports, r.Exports, a.Store, a.Events,
		time.Duration(cfg.Security.ExportTimeoutSec)*time.Second, log.Named("export"))
	s.Imports = service.NewImportService(s.Artworks, s.Artists, s.Locations, sheets, log.Named("import"))
	a.Services = s
}

// RouterDeps HTTP 引擎依赖
func (a *App) RouterDeps() router.Deps {
	cfg, s := a.Cfg, a.Services
	sec := cfg.Security
	return router.Deps{
		Log:         a.Log,
		DB:          a.DB,
		Cache:       a.Cache,
		JWT:         a.JWT,
		CORSOrigins: cfg.App.HTTP.CORSOrigins,
		Limits: router.Limits{
			RPS:            sec.RateLimitRPS,
			Burst:          sec.RateLimitBurst,
			LoginRPS:       sec.LoginRPS,
			LoginBurst:     sec.LoginBurst,
			MaxConcurrent:  sec.MaxConcurrent,
			MaxBodyBytes:   config.MB(sec.MaxBodyMB),
			RequestTimeout: time.Duration(sec.RequestTimeoutS) * time.Second,
		},
		Handlers: router.Handlers{
			Auth:      handler.NewAuthHandler(s.Auth),
			Artworks:  handler.NewArtworkHandler(s.Artworks, s.Media),
			Artists:   handler.NewArtistHandler(s.Artists),
			Locations: handler.NewLocationHandler(s.Locations),
			Suppliers: handler.NewSupplierHandler(s.Suppliers),
			Lookups:   handler.NewLookupHandler(s.Lookups),
			Reports:   handler.NewReportHandler(s.Reports, s.Exports),
			Downloads: handler.NewDownloadHandler(a.Store),
			Users:     handler.NewUserHandler(s.Users),
			Admin:     handler.NewAdminHandler(s.Imports, s.Backups),
		},
	}
}

// SeedAdmin 配置里的初始管理员
func (a *App) SeedAdmin() service.SeedAdmin {
	return service.SeedAdmin{
		Email:    a.Cfg.Seed.AdminEmail,
		Password: a.Cfg.Seed.AdminPassword,
		Name:     a.Cfg.Seed.AdminName,
	}
}

// Ping DB 可用性
func (a *App) Ping(ctx context.Context) error { return database.Ping(ctx, a.DB) }

// Close 逆序关闭
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
