package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/config"
	"storefront/internal/infra/db"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/logger"
	repo "storefront/internal/repository"
	"storefront/internal/server"
	"storefront/internal/usecase"

	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Service: "storefront",
		Env:     cfg.GoEnv,
		Level:   cfg.LogLevel,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//カタログの取得元
	source, closeSource, err := newCatalogSource(cfg)
	if err != nil {
		return err
	}
	defer closeSource()

	//Repository（メモリ）
	sessions := infraRepo.NewSessionMemoryRepository(cfg.SessionTTL, time.Now)

	//Usecase生成
	catalogUC := usecase.NewCatalogUsecase(source, log, time.Now)
	cartUC := usecase.NewCartUsecase(sessions, catalogUC)
	checkoutUC := usecase.NewCheckoutUsecase(sessions, time.Now)
	sessionUC := usecase.NewSessionUsecase(sessions, log, time.Now)

	// 失敗しても起動する（画面から再試行）
	_ = catalogUC.Load(ctx)

	e, err := server.New(cfg, log, server.Deps{
		Catalog:  catalogUC,
		Cart:     cartUC,
		Checkout: checkoutUC,
		Sessions: sessionUC,
	})
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(gctx, e, cfg.Addr(), log)
	})
	g.Go(func() error {
		return sessionUC.RunSweeper(gctx, cfg.SessionSweepInterval)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}

func newCatalogSource(cfg config.Config) (repo.CatalogSource, func(), error) {
	switch cfg.CatalogSource {
	case config.CatalogSourceHTTP:
		return infraRepo.NewCatalogHTTPSource(cfg.CatalogURL, http.DefaultClient), func() {}, nil
	case config.CatalogSourcePostgres:
		gormDB, err := db.Connect(cfg)
		if err != nil {
			return nil, nil, err
		}
		if cfg.DBAutoMigrate {
			if err := db.Migrate(gormDB); err != nil {
				_ = db.Close(gormDB)
				return nil, nil, fmt.Errorf("migrate: %w", err)
			}
		}
		return infraRepo.NewCatalogGormSource(gormDB), func() {
			if err := db.Close(gormDB); err != nil {
				slog.Warn("close db failed", slog.String("error", err.Error()))
			}
		}, nil
	default:
		return infraRepo.NewCatalogFileSource(cfg.CatalogPath), func() {}, nil
	}
}
