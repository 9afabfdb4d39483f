package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/usecase"
	"storefront/internal/validator"
	"storefront/internal/view"

	"github.com/labstack/echo/v4"
)

const catalogErrorMessage = "Failed to load products. Check your connection and try again."

// PageHandler はHTML画面。操作のあとは "/" にリダイレクトし、
// 通知はセッションに積んで次の表示で出す。
type PageHandler struct {
	catalog  *usecase.CatalogUsecase
	cart     *usecase.CartUsecase
	checkout *usecase.CheckoutUsecase
	sessions *usecase.SessionUsecase
	log      *slog.Logger

	title      string
	ackDismiss time.Duration
}

type PageOptions struct {
	Title           string
	AckDismissDelay time.Duration
}

// DI
func NewPageHandler(
	catalog *usecase.CatalogUsecase,
	cart *usecase.CartUsecase,
	checkout *usecase.CheckoutUsecase,
	sessions *usecase.SessionUsecase,
	log *slog.Logger,
	opts PageOptions,
) *PageHandler {
	if log == nil {
		log = slog.Default()
	}
	if opts.Title == "" {
		opts.Title = "Storefront"
	}
	if opts.AckDismissDelay <= 0 {
		opts.AckDismissDelay = 5 * time.Second
	}
	return &PageHandler{
		catalog:    catalog,
		cart:       cart,
		checkout:   checkout,
		sessions:   sessions,
		log:        log,
		title:      opts.Title,
		ackDismiss: opts.AckDismissDelay,
	}
}

func (h *PageHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.index)
	e.GET("/products/:id", h.detail)
	e.POST("/products/:id/cart", h.addFromDetail)

	e.POST("/cart", h.quickAdd)
	e.POST("/cart/lines/:index/remove", h.removeOneUnit)
	e.GET("/cart/clear", h.confirmClear)
	e.POST("/cart/clear", h.clear)

	e.GET("/checkout", h.openCheckout)
	e.POST("/checkout/cancel", h.cancelCheckout)
	e.POST("/checkout/confirm", h.confirmCheckout)
	e.POST("/checkout/dismiss", h.dismiss)

	e.POST("/catalog/reload", h.reloadCatalog)
}

// 1画面分の状態（フォームのエラー表示など）
type pageState struct {
	category string

	detailID       string
	detailQuantity string
	detailInvalid  bool

	form         *validator.AddToCartForm
	confirmClear bool
}

func (h *PageHandler) sessionID(c echo.Context) string {
	id, _ := getSessionIDFromContext(c)
	return id
}

func (h *PageHandler) redirectHome(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *PageHandler) flash(c echo.Context, n *model.Notice) {
	if err := h.sessions.PushNotice(c.Request().Context(), h.sessionID(c), n); err != nil {
		h.log.WarnContext(c.Request().Context(), "push notice failed", slog.String("error", err.Error()))
	}
}

// flashError は通知つきのエラーなら警告として積む。それ以外は返す。
func (h *PageHandler) flashError(c echo.Context, err error) error {
	he, ok := usecase.AsHTTPError(err)
	if !ok {
		return err
	}
	if he.Notice == "" {
		h.log.DebugContext(c.Request().Context(), "page action rejected",
			slog.Int("status", he.Status),
			slog.String("error", he.Message),
		)
		return nil
	}
	h.flash(c, &model.Notice{Kind: model.NoticeWarning, Message: he.Notice})
	return nil
}

func (h *PageHandler) render(c echo.Context, status int, st pageState) error {
	ctx := c.Request().Context()
	sid := h.sessionID(c)

	notices, err := h.sessions.TakeNotices(ctx, sid)
	if err != nil {
		return err
	}
	cartOut, err := h.cart.GetCart(ctx, sid)
	if err != nil {
		return err
	}

	catalog, err := h.catalog.Snapshot()
	if err != nil {
		return c.Render(http.StatusServiceUnavailable, "catalog_error", view.CatalogErrorPage{
			Title:   h.title,
			Message: catalogErrorMessage,
			Notices: notices,
			Cart:    view.NewCartView(cartOut),
		})
	}

	page := view.IndexPage{
		Title:        h.title,
		Notices:      notices,
		Category:     st.category,
		Categories:   view.CategoryOptions(catalog, st.category),
		Products:     view.ProductCards(catalog, catalog.Filter(categoryOrAll(st.category))),
		QuickAdd:     quickAddForm(catalog, st.form),
		Cart:         view.NewCartView(cartOut),
		ConfirmClear: st.confirmClear,
	}

	if st.detailID != "" {
		if d, ok := view.NewDetailView(catalog, st.detailID); ok {
			if st.detailQuantity != "" {
				d.Quantity = st.detailQuantity
			}
			d.QuantityInvalid = st.detailInvalid
			page.Detail = &d
		}
	}

	state, err := h.checkout.State(ctx, sid)
	if err != nil {
		return err
	}
	switch state {
	case model.CheckoutSummarizing:
		page.Checkout = view.NewCheckoutView(usecase.CheckoutSummaryOutput{State: string(state), Cart: cartOut})
	case model.CheckoutConfirmed:
		r, err := h.checkout.Receipt(ctx, sid)
		if err != nil {
			return err
		}
		page.Receipt = view.NewReceiptView(r, h.ackDismiss)
	}

	return c.Render(status, "index", page)
}

func categoryOrAll(category string) string {
	if category == "" {
		return model.AllCategories
	}
	return category
}

func quickAddForm(catalog model.Catalog, f *validator.AddToCartForm) view.QuickAddForm {
	if f == nil {
		return view.QuickAddForm{
			Options:  view.ProductOptions(catalog.Products, ""),
			Quantity: "1",
		}
	}
	return view.QuickAddForm{
		Options:         view.ProductOptions(catalog.Products, f.ProductID),
		Quantity:        f.RawQuantity,
		ProductInvalid:  f.ProductInvalid,
		QuantityInvalid: f.QuantityInvalid,
		WasValidated:    true,
	}
}

func (h *PageHandler) index(c echo.Context) error {
	return h.render(c, http.StatusOK, pageState{category: c.QueryParam("category")})
}

// 未知のIDは何も開かない
func (h *PageHandler) detail(c echo.Context) error {
	id := c.Param("id")
	if catalog, err := h.catalog.Snapshot(); err == nil {
		if _, ok := catalog.FindProduct(id); !ok {
			return h.redirectHome(c)
		}
	}
	return h.render(c, http.StatusOK, pageState{detailID: id})
}

func (h *PageHandler) addFromDetail(c echo.Context) error {
	id := c.Param("id")
	raw := c.FormValue("quantity")

	qty, err := validator.ParseQuantity(raw)
	if err != nil {
		return h.render(c, http.StatusUnprocessableEntity, pageState{
			detailID:       id,
			detailQuantity: raw,
			detailInvalid:  true,
		})
	}

	res, err := h.cart.AddToCart(c.Request().Context(), h.sessionID(c), usecase.AddCartInput{
		ProductID: id,
		Quantity:  qty,
	})
	if err != nil {
		if err := h.flashError(c, err); err != nil {
			return err
		}
		return h.redirectHome(c)
	}
	h.flash(c, res.Notice)
	return h.redirectHome(c)
}

func (h *PageHandler) quickAdd(c echo.Context) error {
	form, err := validator.ValidateAddToCart(c.FormValue("product_id"), c.FormValue("quantity"))
	if err != nil {
		return h.render(c, http.StatusUnprocessableEntity, pageState{form: &form})
	}

	res, err := h.cart.AddToCart(c.Request().Context(), h.sessionID(c), usecase.AddCartInput{
		ProductID: form.ProductID,
		Quantity:  form.Quantity,
	})
	if err != nil {
		// 一覧にない商品は選択エラー扱い
		if he, ok := usecase.AsHTTPError(err); ok && he.Status == http.StatusNotFound {
			form.ProductInvalid = true
			return h.render(c, http.StatusUnprocessableEntity, pageState{form: &form})
		}
		if err := h.flashError(c, err); err != nil {
			return err
		}
		return h.redirectHome(c)
	}
	h.flash(c, res.Notice)
	return h.redirectHome(c)
}

// 範囲外の index は何もしない
func (h *PageHandler) removeOneUnit(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return h.redirectHome(c)
	}

	res, err := h.cart.RemoveOneUnit(c.Request().Context(), h.sessionID(c), index)
	if err != nil {
		return err
	}
	h.flash(c, res.Notice)
	return h.redirectHome(c)
}

func (h *PageHandler) confirmClear(c echo.Context) error {
	out, err := h.cart.GetCart(c.Request().Context(), h.sessionID(c))
	if err != nil {
		return err
	}
	if out.Empty {
		h.flash(c, &model.Notice{Kind: model.NoticeWarning, Message: "The cart is already empty!"})
		return h.redirectHome(c)
	}
	return h.render(c, http.StatusOK, pageState{confirmClear: true})
}

func (h *PageHandler) clear(c echo.Context) error {
	res, err := h.cart.ClearCart(c.Request().Context(), h.sessionID(c))
	if err != nil {
		return err
	}
	h.flash(c, res.Notice)
	return h.redirectHome(c)
}

func (h *PageHandler) openCheckout(c echo.Context) error {
	if _, err := h.checkout.Open(c.Request().Context(), h.sessionID(c)); err != nil {
		if err := h.flashError(c, err); err != nil {
			return err
		}
	}
	return h.redirectHome(c)
}

func (h *PageHandler) cancelCheckout(c echo.Context) error {
	if err := h.checkout.Cancel(c.Request().Context(), h.sessionID(c)); err != nil {
		return err
	}
	return h.redirectHome(c)
}

func (h *PageHandler) confirmCheckout(c echo.Context) error {
	if _, err := h.checkout.Confirm(c.Request().Context(), h.sessionID(c)); err != nil {
		if err := h.flashError(c, err); err != nil {
			return err
		}
	}
	return h.redirectHome(c)
}

// 閉じたらページ先頭から（再読み込みと同じ初期状態）
func (h *PageHandler) dismiss(c echo.Context) error {
	if err := h.checkout.Dismiss(c.Request().Context(), h.sessionID(c)); err != nil {
		if err := h.flashError(c, err); err != nil {
			return err
		}
		return h.redirectHome(c)
	}
	return c.Redirect(http.StatusSeeOther, "/#top")
}

func (h *PageHandler) reloadCatalog(c echo.Context) error {
	if err := h.catalog.Load(c.Request().Context()); err != nil {
		if err := h.flashError(c, err); err != nil {
			return err
		}
	}
	return h.redirectHome(c)
}
