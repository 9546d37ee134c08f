package main

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gorm.io/gorm"

	"templatesvc/internal/config"
	"templatesvc/internal/db"
	"templatesvc/internal/logging"
)

// app carries the state shared by every subcommand.
type app struct {
	v          *viper.Viper
	configFile string
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:           "templatesvc",
		Short:         "HTTP service for storing and editing templates",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "path to a config file (default ./templatesvc.yaml if present)")
	flags.String("database.driver", "", "database driver: sqlite or mysql")
	flags.String("database.dsn", "", "database location (file path for sqlite)")
	flags.String("log.level", "", "log level")
	for _, name := range []string{"database.driver", "database.dsn", "log.level"} {
		_ = a.v.BindPFlag(name, flags.Lookup(name))
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Apply migrations and serve the HTTP API",
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.serve(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply pending schema migrations and exit",
			RunE: func(cmd *cobra.Command, args []string) error {
				_, gormDB, err := a.bootstrap(cmd.Context())
				if err != nil {
					return err
				}
				return closeDB(gormDB)
			},
		},
		newSeedCmd(a),
	)
	return root
}

// bootstrap loads config, configures logging, opens the pool and applies
// migrations. The service must not start when it fails.
func (a *app) bootstrap(ctx context.Context) (*config.Config, *gorm.DB, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return nil, nil, err
	}
	if err := logging.Setup(cfg.Log); err != nil {
		return nil, nil, err
	}

	gormDB, err := db.Open(db.Options{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("database init: %w", err)
	}
	log.WithFields(log.Fields{
		"driver": cfg.Database.Driver,
		"dsn":    cfg.Database.DSN,
	}).Info("database opened")

	if _, err := db.Migrate(ctx, gormDB, cfg.Database.Driver); err != nil {
		_ = closeDB(gormDB)
		return nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
	}
	return cfg, gormDB, nil
}

func closeDB(gormDB *gorm.DB) error {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
