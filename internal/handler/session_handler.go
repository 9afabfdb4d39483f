package handler

import (
	"net/http"

	"storefront/internal/domain/model"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/session のHTTP
type SessionHandler struct {
	uc *usecase.SessionUsecase
}

// DI
func NewSessionHandler(uc *usecase.SessionUsecase) *SessionHandler {
	return &SessionHandler{uc: uc}
}

func (h *SessionHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/session/notices", h.notices)
	e.DELETE("/api/session", h.end)
}

type NoticesResponse struct {
	Items []model.Notice `json:"items"`
}

// 画面用に積まれた通知を取り出す（取り出したら消える）
func (h *SessionHandler) notices(c echo.Context) error {
	sessionID, ok := getSessionIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "no session"})
	}

	items, err := h.uc.TakeNotices(c.Request().Context(), sessionID)
	if err != nil {
		return writeError(c, err)
	}
	if items == nil {
		items = []model.Notice{}
	}
	return c.JSON(http.StatusOK, NoticesResponse{Items: items})
}

func (h *SessionHandler) end(c echo.Context) error {
	sessionID, ok := getSessionIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "no session"})
	}

	if err := h.uc.End(c.Request().Context(), sessionID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
