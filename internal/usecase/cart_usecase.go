package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
)

// カート追加時に商品を引く
type ProductFinder interface {
	GetProduct(ctx context.Context, productID string) (model.Product, error)
}

// CartUsecase はセッションごとのカート操作。
type CartUsecase struct {
	sessions repo.SessionRepository
	products ProductFinder
}

func NewCartUsecase(sessions repo.SessionRepository, products ProductFinder) *CartUsecase {
	return &CartUsecase{
		sessions: sessions,
		products: products,
	}
}

// price は unit price snapshot（追加時点の価格）。
type CartLineOutput struct {
	Index     int    `json:"index"`
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
}

type CartOutput struct {
	Lines         []CartLineOutput `json:"lines"`
	DistinctLines int              `json:"distinct_lines"`
	TotalUnits    int              `json:"total_units"`
	TotalValue    string           `json:"total_value"`
	Empty         bool             `json:"empty"`
}

// 操作結果（通知つき）
type CartResult struct {
	Cart   CartOutput    `json:"cart"`
	Notice *model.Notice `json:"notice,omitempty"`
}

type AddCartInput struct {
	ProductID string
	Quantity  int
}

func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func toLineOutputs(lines []model.CartLine) []CartLineOutput {
	out := make([]CartLineOutput, 0, len(lines))
	for i, l := range lines {
		out = append(out, CartLineOutput{
			Index:     i,
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: formatMoney(l.UnitPrice),
			Quantity:  l.Quantity,
			LineTotal: formatMoney(l.Total()),
		})
	}
	return out
}

func toCartOutput(cart *model.Cart) CartOutput {
	out := CartOutput{Lines: toLineOutputs(cart.Lines())}

	t := cart.Totals()
	out.DistinctLines = t.DistinctLines
	out.TotalUnits = t.TotalUnits
	out.TotalValue = formatMoney(t.TotalValue)
	out.Empty = cart.IsEmpty()
	return out
}

func success(format string, args ...any) *model.Notice {
	return &model.Notice{Kind: model.NoticeSuccess, Message: fmt.Sprintf(format, args...)}
}

func warning(format string, args ...any) *model.Notice {
	return &model.Notice{Kind: model.NoticeWarning, Message: fmt.Sprintf(format, args...)}
}

func validSession(sessionID string) error {
	if sessionID == "" {
		return NewHTTPError(http.StatusUnauthorized, "no session")
	}
	return nil
}

func (u *CartUsecase) GetCart(ctx context.Context, sessionID string) (CartOutput, error) {
	if err := validSession(sessionID); err != nil {
		return CartOutput{}, err
	}

	var out CartOutput
	err := u.sessions.WithinSession(ctx, sessionID, func(s *model.Session) error {
		out = toCartOutput(&s.Cart)
		return nil
	})
	if err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "session error")
	}
	return out, nil
}

// AddToCart はカートに追加（同一商品は数量加算、上限100）。
func (u *CartUsecase) AddToCart(ctx context.Context, sessionID string, in AddCartInput) (CartResult, error) {
	if err := validSession(sessionID); err != nil {
		return CartResult{}, err
	}
	if in.ProductID == "" {
		return CartResult{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity < model.MinLineQuantity || in.Quantity > model.MaxLineQuantity {
		return CartResult{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	p, err := u.products.GetProduct(ctx, in.ProductID)
	if err != nil {
		return CartResult{}, err
	}

	var res CartResult
	err = u.sessions.WithinSession(ctx, sessionID, func(s *model.Session) error {
		if _, err := s.Cart.Add(p, in.Quantity); err != nil {
			return err
		}
		res.Cart = toCartOutput(&s.Cart)
		res.Notice = success("%dx %s added to cart!", in.Quantity, p.Name)
		return nil
	})

	var ce *model.CeilingError
	switch {
	case err == nil:
		return res, nil
	case errors.As(err, &ce):
		return CartResult{}, newHTTPErrorWithNotice(http.StatusConflict, "quantity ceiling reached",
			fmt.Sprintf("Maximum of %d units per product! You already have %d units in the cart.", model.MaxLineQuantity, ce.Current))
	case errors.Is(err, model.ErrInvalidQuantity):
		return CartResult{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	default:
		return CartResult{}, NewHTTPError(http.StatusInternalServerError, "session error")
	}
}

// RemoveOneUnit は明細を1つ減らす。範囲外の index は何もしない。
func (u *CartUsecase) RemoveOneUnit(ctx context.Context, sessionID string, index int) (CartResult, error) {
	if err := validSession(sessionID); err != nil {
		return CartResult{}, err
	}

	var res CartResult
	err := u.sessions.WithinSession(ctx, sessionID, func(s *model.Session) error {
		line, removed, ok := s.Cart.RemoveOneUnit(index)
		switch {
		case !ok:
		case removed:
			res.Notice = success("%s removed from cart!", line.Name)
		default:
			res.Notice = success("Removed 1 unit of %s. %d left.", line.Name, line.Quantity)
		}
		res.Cart = toCartOutput(&s.Cart)
		return nil
	})
	if err != nil {
		return CartResult{}, NewHTTPError(http.StatusInternalServerError, "session error")
	}
	return res, nil
}

// ClearCart は無条件に空にする（確認は呼び出し側）。
func (u *CartUsecase) ClearCart(ctx context.Context, sessionID string) (CartResult, error) {
	if err := validSession(sessionID); err != nil {
		return CartResult{}, err
	}

	var res CartResult
	err := u.sessions.WithinSession(ctx, sessionID, func(s *model.Session) error {
		if s.Cart.IsEmpty() {
			res.Notice = warning("The cart is already empty!")
		} else {
			s.Cart.Clear()
			res.Notice = success("Cart cleared!")
		}
		res.Cart = toCartOutput(&s.Cart)
		return nil
	})
	if err != nil {
		return CartResult{}, NewHTTPError(http.StatusInternalServerError, "session error")
	}
	return res, nil
}
