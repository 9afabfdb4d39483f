package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/middleware"
	"storefront/internal/usecase"
	"storefront/internal/view"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

const shutdownTimeout = 10 * time.Second

// Deps はサーバーに渡す usecase 一式
type Deps struct {
	Catalog  *usecase.CatalogUsecase
	Cart     *usecase.CartUsecase
	Checkout *usecase.CheckoutUsecase
	Sessions *usecase.SessionUsecase
}

// New は echo を組み立てる（ミドルウェア・テンプレート・ルート）。
func New(cfg config.Config, log *slog.Logger, deps Deps) (*echo.Echo, error) {
	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.HTTPErrorHandler = errorHandler(log)

	e.Use(echomw.Recover())
	e.Use(requestLogger(log))
	e.Use(echomw.BodyLimit("1M"))
	e.Use(middleware.SessionJWT(middleware.SessionOptions{
		Secret: []byte(cfg.SessionSecret),
		TTL:    cfg.SessionTTL,
		Secure: cfg.IsProd(),
	}))

	RegisterRoutes(e, cfg, Handlers{
		Catalog:  handler.NewCatalogHandler(deps.Catalog),
		Cart:     handler.NewCartHandler(deps.Cart),
		Checkout: handler.NewCheckoutHandler(deps.Checkout),
		Session:  handler.NewSessionHandler(deps.Sessions),
		Page: handler.NewPageHandler(deps.Catalog, deps.Cart, deps.Checkout, deps.Sessions, log, handler.PageOptions{
			Title:           cfg.SiteTitle,
			AckDismissDelay: cfg.AckDismissDelay,
		}),
	})
	return e, nil
}

func requestLogger(log *slog.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
				log.LogAttrs(c.Request().Context(), slog.LevelError, "request", attrs...)
				return nil
			}
			log.LogAttrs(c.Request().Context(), slog.LevelInfo, "request", attrs...)
			return nil
		},
	})
}

// usecase.HTTPError は /api ならJSON、画面ならテキストで返す。
func errorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		msg := "internal error"
		var ee *echo.HTTPError
		if he, ok := usecase.AsHTTPError(err); ok {
			status, msg = he.Status, he.Message
		} else if errors.As(err, &ee) {
			status = ee.Code
			msg = http.StatusText(ee.Code)
		} else {
			log.ErrorContext(c.Request().Context(), "unhandled error", slog.String("error", err.Error()))
		}

		var werr error
		if strings.HasPrefix(c.Request().URL.Path, "/api/") {
			werr = c.JSON(status, handler.ErrorResponse{Error: msg})
		} else {
			werr = c.String(status, msg)
		}
		if werr != nil {
			log.WarnContext(c.Request().Context(), "write error response failed", slog.String("error", werr.Error()))
		}
	}
}

// Run は ctx が終わるまで待ち、終わったら graceful shutdown する。
func Run(ctx context.Context, e *echo.Echo, addr string, log *slog.Logger) error {
	serveErr := make(chan error, 1)
	log.InfoContext(ctx, "server listening", slog.String("addr", addr))
	go func() {
		serveErr <- e.Start(addr)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}
