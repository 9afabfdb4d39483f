package handler

import (
	"net/http"

	"storefront/internal/domain/model"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/catalog, /api/products の公開API
type CatalogHandler struct {
	uc *usecase.CatalogUsecase
}

// DI
func NewCatalogHandler(uc *usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

type CatalogResponse struct {
	usecase.CatalogState
	Categories []model.Category `json:"categories"`
}

func (h *CatalogHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/catalog", h.state)
	e.POST("/api/catalog/reload", h.reload)
	e.GET("/api/products", h.list)
	e.GET("/api/products/:id", h.detail)
}

func (h *CatalogHandler) state(c echo.Context) error {
	res := CatalogResponse{CatalogState: h.uc.State(), Categories: []model.Category{}}
	if cat, err := h.uc.Snapshot(); err == nil {
		res.Categories = cat.Categories
	}
	return c.JSON(http.StatusOK, res)
}

// 失敗しても前のカタログには戻らない（リトライは呼び出し側）
func (h *CatalogHandler) reload(c echo.Context) error {
	if err := h.uc.Load(c.Request().Context()); err != nil {
		return writeError(c, err)
	}
	return h.state(c)
}

func (h *CatalogHandler) list(c echo.Context) error {
	out, err := h.uc.ListProducts(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) detail(c echo.Context) error {
	p, err := h.uc.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}
