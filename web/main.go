package main

import (
	"context"
	"flag"
	"os"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"cardtime.app/cardtime/core"
	"cardtime.app/cardtime/infrastructure/communication"
	"cardtime.app/cardtime/infrastructure/devops"
	"cardtime.app/cardtime/infrastructure/filesystem"
	"cardtime.app/cardtime/infrastructure/push"
	"cardtime.app/cardtime/logger"
	"cardtime.app/cardtime/security"
	"cardtime.app/cardtime/web/i18n"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	localeDir := flag.String("locales", "web/i18n/locales", "path to the locale catalogs")
	baseURL := flag.String("base-url", "http://localhost:8080", "public URL used in emails")
	flag.Parse()

	ctx := context.Background()

	cfg, err := devops.Load(ctx, *configPath)
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(cfg.Server.Environment); err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer zap.L().Sync()

	gin.SetMode(cfg.Server.Mode)

	dm, err := core.New(cfg.Database.DSN, cfg.Database.MaxConnection, core.LogLevelWarn)
	if err != nil {
		zap.L().Fatal("failed to open database", zap.Error(err))
	}
	defer dm.Close()

	if err := dm.Migrate(); err != nil {
		zap.L().Fatal("failed to migrate schema", zap.Error(err))
	}
	// Connection rows from a previous process are stale by definition.
	if err := dm.ResetConnections(); err != nil {
		zap.L().Fatal("failed to reset connections", zap.Error(err))
	}

	catalog, err := i18n.Load(*localeDir)
	if err != nil {
		zap.L().Fatal("failed to load locales", zap.Error(err))
	}

	var store filesystem.BlobStore
	if cfg.Storage.Bucket != "" {
		store, err = filesystem.NewS3Store(ctx, cfg.Storage.Bucket)
	} else {
		store, err = filesystem.NewLocalStore(cfg.Storage.LocalDir)
	}
	if err != nil {
		zap.L().Fatal("failed to open blob store", zap.Error(err))
	}

	mailer, err := communication.NewSESMailer(ctx)
	if err != nil {
		zap.L().Fatal("failed to create mailer", zap.Error(err))
	}

	var notifier *communication.Slack
	if os.Getenv("SLACK_BOT_TOKEN") != "" {
		notifier = communication.ConnectSlack()
	}

	deps := &serverDeps{
		cfg:      cfg,
		dm:       dm,
		hub:      push.NewHub(dm.DB),
		catalog:  catalog,
		store:    store,
		mailer:   mailer,
		notifier: notifier,
		tokens: security.TokenSettings{
			Issuer:   cfg.JWT.Issuer,
			Audience: cfg.JWT.Audience,
			SignKey:  cfg.JWTSignKey,
			Timeout:  cfg.JWTTimeout(),
		},
		baseURL: *baseURL,
	}

	r := buildRouter(deps)

	zap.L().Info("listening", zap.String("port", cfg.Server.Port))
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		zap.L().Fatal("server stopped", zap.Error(err))
	}
}
