package model

import (
	"errors"
	"time"
)

type CheckoutState string

const (
	CheckoutIdle        CheckoutState = "IDLE"
	CheckoutSummarizing CheckoutState = "SUMMARIZING"
	CheckoutConfirmed   CheckoutState = "CONFIRMED"
)

var (
	ErrEmptyCart       = errors.New("cart empty")
	ErrCheckoutNotOpen = errors.New("checkout not open")
	ErrNotConfirmed    = errors.New("order not confirmed")
)

// 注文確定時のスナップショット
type Receipt struct {
	Totals      Totals
	Lines       []CartLine
	ConfirmedAt time.Time
}

// Checkout は IDLE → SUMMARIZING → CONFIRMED → IDLE の状態機械。
type Checkout struct {
	State   CheckoutState
	Receipt *Receipt
}

func (c *Checkout) state() CheckoutState {
	if c.State == "" {
		return CheckoutIdle
	}
	return c.State
}

// Open は確認画面を開く。空カートなら状態を変えずに拒否。
func (c *Checkout) Open(cart *Cart) (Totals, error) {
	if cart.IsEmpty() {
		return Totals{}, ErrEmptyCart
	}
	c.State = CheckoutSummarizing
	c.Receipt = nil
	return cart.Totals(), nil
}

func (c *Checkout) Cancel() {
	if c.state() == CheckoutSummarizing {
		c.State = CheckoutIdle
	}
}

// Confirm は合計を先に確保してからカートを空にする。
func (c *Checkout) Confirm(cart *Cart, now time.Time) (Receipt, error) {
	if c.state() != CheckoutSummarizing {
		return Receipt{}, ErrCheckoutNotOpen
	}
	if cart.IsEmpty() {
		c.State = CheckoutIdle
		return Receipt{}, ErrEmptyCart
	}

	r := Receipt{
		Totals:      cart.Totals(),
		Lines:       cart.Lines(),
		ConfirmedAt: now,
	}
	cart.Clear()

	c.State = CheckoutConfirmed
	c.Receipt = &r
	return r, nil
}

// Dismiss は確認メッセージを閉じて IDLE に戻す。
func (c *Checkout) Dismiss() error {
	if c.state() != CheckoutConfirmed {
		return ErrNotConfirmed
	}
	c.State = CheckoutIdle
	c.Receipt = nil
	return nil
}
