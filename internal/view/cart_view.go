package view

import (
	"fmt"
	"time"

	"storefront/internal/usecase"
)

type CartLineView struct {
	Index     int
	Name      string
	Quantity  int
	UnitPrice string
	LineTotal string
	RemoveURL string
}

// CartView はカート表示。状態は持たず毎回 CartOutput から作る。
type CartView struct {
	Lines      []CartLineView
	Empty      bool
	ShowTotals bool
	Summary    string
	TotalUnits int
	TotalValue string
}

func lineViews(lines []usecase.CartLineOutput) []CartLineView {
	out := make([]CartLineView, 0, len(lines))
	for _, l := range lines {
		out = append(out, CartLineView{
			Index:     l.Index,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			LineTotal: l.LineTotal,
			RemoveURL: fmt.Sprintf("/cart/lines/%d/remove", l.Index),
		})
	}
	return out
}

func NewCartView(out usecase.CartOutput) CartView {
	v := CartView{
		Lines:      lineViews(out.Lines),
		Empty:      out.Empty || len(out.Lines) == 0,
		TotalUnits: out.TotalUnits,
		TotalValue: out.TotalValue,
	}
	// 空なら合計は出さない
	v.ShowTotals = !v.Empty
	if v.ShowTotals {
		v.Summary = fmt.Sprintf("%d distinct products (%d units)", out.DistinctLines, out.TotalUnits)
	}
	return v
}

// 注文確認モーダル
type CheckoutView struct {
	Lines      []CartLineView
	TotalUnits int
	TotalValue string
}

func NewCheckoutView(out usecase.CheckoutSummaryOutput) *CheckoutView {
	return &CheckoutView{
		Lines:      lineViews(out.Cart.Lines),
		TotalUnits: out.Cart.TotalUnits,
		TotalValue: out.Cart.TotalValue,
	}
}

// 注文完了メッセージ（一定時間で自動的に閉じる）
type ReceiptView struct {
	TotalUnits     int
	TotalValue     string
	DismissAfterMS int64
}

func NewReceiptView(out usecase.ReceiptOutput, dismissAfter time.Duration) *ReceiptView {
	return &ReceiptView{
		TotalUnits:     out.TotalUnits,
		TotalValue:     out.TotalValue,
		DismissAfterMS: dismissAfter.Milliseconds(),
	}
}
