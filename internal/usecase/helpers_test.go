package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"storefront/internal/domain/model"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =====================
// Mocks
// =====================

type CatalogSourceMock struct{ mock.Mock }

func (m *CatalogSourceMock) Load(ctx context.Context) (model.Catalog, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).(model.Catalog)
	return c, args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixedNow() time.Time {
	return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
}

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

// カタログ読み込み済みの usecase 一式
type fixture struct {
	source   *CatalogSourceMock
	sessions *infraRepo.SessionMemoryRepository
	catalog  *usecase.CatalogUsecase
	cart     *usecase.CartUsecase
	checkout *usecase.CheckoutUsecase
	session  *usecase.SessionUsecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	src := new(CatalogSourceMock)
	src.On("Load", mock.Anything).Return(testCatalog(), nil).Once()

	sessions := infraRepo.NewSessionMemoryRepository(time.Hour, fixedNow)
	cat := usecase.NewCatalogUsecase(src, discardLogger(), fixedNow)
	require.NoError(t, cat.Load(context.Background()))

	return &fixture{
		source:   src,
		sessions: sessions,
		catalog:  cat,
		cart:     usecase.NewCartUsecase(sessions, cat),
		checkout: usecase.NewCheckoutUsecase(sessions, fixedNow),
		session:  usecase.NewSessionUsecase(sessions, discardLogger(), fixedNow),
	}
}

func assertHTTPError(t *testing.T, err error, status int, msg string) *usecase.HTTPError {
	t.Helper()
	require.Error(t, err)
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok, "expected HTTPError, got %v", err)
	assert.Equal(t, status, he.Status)
	assert.Equal(t, msg, he.Message)
	return he
}
