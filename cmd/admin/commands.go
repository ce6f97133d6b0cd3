package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"kunstcollectie/internal/app"
	"kunstcollectie/internal/core/config"
	"kunstcollectie/internal/core/logger"
	"kunstcollectie/internal/domain"
	"kunstcollectie/internal/service"
)

type globals struct {
	configPath string
	logLevel   string
}

var g globals

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "kunstcollectie-admin",
		Short:         "Beheertaken voor de kunstcollectie",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load()
		},
	}
	cmd.PersistentFlags().StringVar(&g.configPath, "config", "", "config file (default $CONFIG_PATH or ./configs/config.local.yaml)")
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "override log.level")
	return cmd
}

// withApp 装配依赖后执行 fn，结束时关闭资源
func withApp(migrate bool, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return err
	}
	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
	}
	if migrate {
		cfg.DB.AutoMigrate = true
	}
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	a, err := app.New(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Warn("close", zap.Error(err))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	return fn(ctx, a)
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Database schema bijwerken",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(true, func(ctx context.Context, a *app.App) error {
				fmt.Fprintln(cmd.OutOrStdout(), "migrate: ok")
				return nil
			})
		},
	}
}

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Standaardtypes, leveranciers en beheerder aanmaken",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(true, func(ctx context.Context, a *app.App) error {
				if err := a.Services.Seed.Seed(ctx, a.SeedAdmin()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "seed: ok")
				return nil
			})
		},
	}
}

func newCreateUserCommand() *cobra.Command {
	var in service.UserInput
	var role string
	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Gebruiker aanmaken",
		RunE: func(cmd *cobra.Command, args []string) error {
			if in.Password == "" {
				in.Password = os.Getenv("KC_PASSWORD")
			}
			in.Role = domain.Role(role)
			return withApp(false, func(ctx context.Context, a *app.App) error {
				u, err := a.Services.Users.Create(ctx, in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created user %d <%s> (%s)\n", u.ID, u.Email, u.Role)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&in.Email, "email", "", "email address")
	cmd.Flags().StringVar(&in.Name, "naam", "", "display name")
	cmd.Flags().StringVar(&in.Password, "wachtwoord", "", "password (or $KC_PASSWORD)")
	cmd.Flags().StringVar(&role, "rol", string(domain.RoleReadonly), "admin | readonly")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("naam")
	return cmd
}

func newBackupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "JSON-backup schrijven naar de opslagmap",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(false, func(ctx context.Context, a *app.App) error {
				res, err := a.Services.Backups.Create(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "backup: %s\n", res.FileName)
				return nil
			})
		},
	}
}
