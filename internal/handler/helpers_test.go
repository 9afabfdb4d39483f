package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/handler"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/middleware"
	"storefront/internal/usecase"
	"storefront/internal/view"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const sid = "session-1"

type catalogSourceFunc func(ctx context.Context) (model.Catalog, error)

func (f catalogSourceFunc) Load(ctx context.Context) (model.Catalog, error) { return f(ctx) }

func testCatalog() model.Catalog {
	return model.Catalog{
		Products: []model.Product{
			{ID: "a", Name: "Alpha", Price: decimal.RequireFromString("10.00"), Category: "x"},
			{ID: "b", Name: "Beta", Price: decimal.RequireFromString("5.50"), Category: "y"},
			{ID: "c", Name: "Gamma", Price: decimal.RequireFromString("1.25"), Category: "x"},
		},
		Categories: []model.Category{
			{ID: "x", Name: "X"},
			{ID: "y", Name: "Y"},
		},
	}
}

func fixedNow() time.Time {
	return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
}

// 固定のセッションIDを入れる（cookie署名は middleware 側でテスト）
func fixedSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Set(middleware.CtxSessionIDKey, sid)
		return next(c)
	}
}

func newTestServer(t *testing.T, src catalogSourceFunc) *echo.Echo {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	sessions := infraRepo.NewSessionMemoryRepository(time.Hour, fixedNow)
	catalogUC := usecase.NewCatalogUsecase(src, log, fixedNow)
	_ = catalogUC.Load(context.Background())

	cartUC := usecase.NewCartUsecase(sessions, catalogUC)
	checkoutUC := usecase.NewCheckoutUsecase(sessions, fixedNow)
	sessionUC := usecase.NewSessionUsecase(sessions, log, fixedNow)

	r, err := view.NewRenderer()
	require.NoError(t, err)

	e := echo.New()
	e.Renderer = r
	e.Use(fixedSession)

	handler.NewCatalogHandler(catalogUC).RegisterRoutes(e)
	handler.NewCartHandler(cartUC).RegisterRoutes(e)
	handler.NewCheckoutHandler(checkoutUC).RegisterRoutes(e)
	handler.NewSessionHandler(sessionUC).RegisterRoutes(e)
	handler.NewPageHandler(catalogUC, cartUC, checkoutUC, sessionUC, log, handler.PageOptions{
		Title:           "Shop",
		AckDismissDelay: time.Second,
	}).RegisterRoutes(e)
	return e
}

func newReadyServer(t *testing.T) *echo.Echo {
	return newTestServer(t, func(context.Context) (model.Catalog, error) {
		return testCatalog(), nil
	})
}

func newFailingServer(t *testing.T) *echo.Echo {
	return newTestServer(t, func(context.Context) (model.Catalog, error) {
		return model.Catalog{}, errors.New("connection refused")
	})
}

func doJSON(e *echo.Echo, method, path string, body any) *httptest.ResponseRecorder {
	var r io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		r = strings.NewReader(string(b))
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func doForm(e *echo.Echo, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func doGet(e *echo.Echo, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}
