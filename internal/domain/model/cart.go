package model

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	MinLineQuantity = 1
	MaxLineQuantity = 100 // 1商品あたりの上限
)

var (
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrCeilingReached  = errors.New("quantity ceiling reached")
)

// CeilingError は上限超過で追加を拒否したときのエラー。
type CeilingError struct {
	ProductID string
	Current   int
	Requested int
}

func (e *CeilingError) Error() string {
	return fmt.Sprintf("quantity ceiling reached for %s: %d in cart, %d requested", e.ProductID, e.Current, e.Requested)
}

func (e *CeilingError) Unwrap() error {
	return ErrCeilingReached
}

// カートの明細
// 追加時点の名前と価格を保存する。
type CartLine struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

func (l CartLine) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Totals struct {
	DistinctLines int
	TotalUnits    int
	TotalValue    decimal.Decimal
}

// Cart は表示順＝追加順の明細リスト。
// 同じ商品の明細は1つだけ、数量は常に [1,100]。
type Cart struct {
	lines []CartLine
}

func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) indexOf(productID string) int {
	for i, l := range c.lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

// Add は商品を追加する。既存の明細があれば数量を加算。
// エラー時は状態を変えない。
func (c *Cart) Add(p Product, qty int) (CartLine, error) {
	if qty < MinLineQuantity || qty > MaxLineQuantity {
		return CartLine{}, ErrInvalidQuantity
	}

	if i := c.indexOf(p.ID); i >= 0 {
		current := c.lines[i].Quantity
		if current+qty > MaxLineQuantity {
			return CartLine{}, &CeilingError{ProductID: p.ID, Current: current, Requested: qty}
		}
		c.lines[i].Quantity = current + qty
		return c.lines[i], nil
	}

	line := CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Quantity:  qty,
	}
	c.lines = append(c.lines, line)
	return line, nil
}

// RemoveOneUnit は index の明細を1つ減らす。
// 数量1なら明細ごと削除（後ろの明細は前に詰める）。
// 範囲外は何もしない（ok=false）。
func (c *Cart) RemoveOneUnit(index int) (line CartLine, removed bool, ok bool) {
	if index < 0 || index >= len(c.lines) {
		return CartLine{}, false, false
	}

	if c.lines[index].Quantity > 1 {
		c.lines[index].Quantity--
		return c.lines[index], false, true
	}

	line = c.lines[index]
	line.Quantity = 0
	c.lines = append(c.lines[:index], c.lines[index+1:]...)
	return line, true, true
}

func (c *Cart) Clear() {
	c.lines = nil
}

// Totals は毎回現在の明細から計算する。
func (c *Cart) Totals() Totals {
	t := Totals{
		DistinctLines: len(c.lines),
		TotalValue:    decimal.Zero,
	}
	for _, l := range c.lines {
		t.TotalUnits += l.Quantity
		t.TotalValue = t.TotalValue.Add(l.Total())
	}
	return t
}
