package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// CheckoutUsecase は 確認 → 確定 → 完了表示 の流れ。
type CheckoutUsecase struct {
	sessions repo.SessionRepository
	now      func() time.Time
}

func NewCheckoutUsecase(sessions repo.SessionRepository, now func() time.Time) *CheckoutUsecase {
	if now == nil {
		now = time.Now
	}
	return &CheckoutUsecase{sessions: sessions, now: now}
}

type CheckoutSummaryOutput struct {
	State string     `json:"state"`
	Cart  CartOutput `json:"cart"`
}

type ReceiptOutput struct {
	Lines         []CartLineOutput `json:"lines"`
	DistinctLines int              `json:"distinct_lines"`
	TotalUnits    int              `json:"total_units"`
	TotalValue    string           `json:"total_value"`
	ConfirmedAt   time.Time        `json:"confirmed_at"`
}

func toReceiptOutput(r model.Receipt) ReceiptOutput {
	return ReceiptOutput{
		Lines:         toLineOutputs(r.Lines),
		DistinctLines: r.Totals.DistinctLines,
		TotalUnits:    r.Totals.TotalUnits,
		TotalValue:    formatMoney(r.Totals.TotalValue),
		ConfirmedAt:   r.ConfirmedAt,
	}
}

func (u *CheckoutUsecase) State(ctx context.Context, sessionID string) (model.CheckoutState, error) {
	if err := validSession(sessionID); err != nil {
		return "", err
	}

	state := model.CheckoutIdle
	err := u.sessions.WithinSession(ctx, sessionID, func(s *model.Session) error {
		if s.Checkout.State != "" {
			state = s.Checkout.State
		}
		return nil
	})
	if err != nil {
		return "", NewHTTPError(http.StatusInternalServerError, "session error")
	}
	return state, nil
}

// Open は注文確認を開く。空カートなら警告して状態は変えない。
func (u *CheckoutUsecase) Open(ctx context.Context, sessionID string) (CheckoutSummaryOutput, error) {
	if err := validSession(sessionID); err != nil {
		return CheckoutSummaryOutput{}, err
	}

	var out CheckoutSummaryOutput
	err := u.sessions.WithinSession(ctx, sessionID, func(s *model.Session) error {
		if _, err := s.Checkout.Open(&s.Cart); err != nil {
			return err
		}
		out = CheckoutSummaryOutput{State: string(s.Checkout.State), Cart: toCartOutput(&s.Cart)}
		return nil
	})
	switch {
	case err == nil:
		return out, nil
	case errors.Is(err, model.ErrEmptyCart):
		return CheckoutSummaryOutput{}, newHTTPErrorWithNotice(http.StatusConflict, "cart empty", "Your cart is empty!")
	default:
		return CheckoutSummaryOutput{}, NewHTTPError(http.StatusInternalServerError, "session error")
	}
}

func (u *CheckoutUsecase) Cancel(ctx context.Context, sessionID string) error {
	if err := validSession(sessionID); err != nil {
		return err
	}

	err := u.sessions.WithinSession(ctx, sessionID, func(s *model.Session) error {
		s.Checkout.Cancel()
		return nil
	})
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "session error")
	}
	return nil
}

// Confirm は合計を確保してからカートを空にする。
func (u *CheckoutUsecase) Confirm(ctx context.Context, sessionID string) (ReceiptOutput, error) {
	if err := validSession(sessionID); err != nil {
		return ReceiptOutput{}, err
	}

	var out ReceiptOutput
	err := u.sessions.WithinSession(ctx, sessionID, func(s *model.Session) error {
		r, err := s.Checkout.Confirm(&s.Cart, u.now())
		if err != nil {
			return err
		}
		out = toReceiptOutput(r)
		return nil
	})
	switch {
	case err == nil:
		return out, nil
	case errors.Is(err, model.ErrEmptyCart):
		return ReceiptOutput{}, newHTTPErrorWithNotice(http.StatusConflict, "cart empty", "Your cart is empty!")
	case errors.Is(err, model.ErrCheckoutNotOpen):
		return ReceiptOutput{}, NewHTTPError(http.StatusConflict, "checkout not open")
	default:
		return ReceiptOutput{}, NewHTTPError(http.StatusInternalServerError, "session error")
	}
}

// Receipt は確定済みの注文を返す（完了表示用）。
func (u *CheckoutUsecase) Receipt(ctx context.Context, sessionID string) (ReceiptOutput, error) {
	if err := validSession(sessionID); err != nil {
		return ReceiptOutput{}, err
	}

	var out ReceiptOutput
	err := u.sessions.WithinSession(ctx, sessionID, func(s *model.Session) error {
		if s.Checkout.State != model.CheckoutConfirmed || s.Checkout.Receipt == nil {
			return model.ErrNotConfirmed
		}
		out = toReceiptOutput(*s.Checkout.Receipt)
		return nil
	})
	switch {
	case err == nil:
		return out, nil
	case errors.Is(err, model.ErrNotConfirmed):
		return ReceiptOutput{}, NewHTTPError(http.StatusNotFound, "no confirmed order")
	default:
		return ReceiptOutput{}, NewHTTPError(http.StatusInternalServerError, "session error")
	}
}

// Dismiss は完了表示を閉じてセッションを初期化する（ページ再読み込みの代わり）。
func (u *CheckoutUsecase) Dismiss(ctx context.Context, sessionID string) error {
	if err := validSession(sessionID); err != nil {
		return err
	}

	err := u.sessions.WithinSession(ctx, sessionID, func(s *model.Session) error {
		if err := s.Checkout.Dismiss(); err != nil {
			return err
		}
		s.Reset()
		return nil
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, model.ErrNotConfirmed):
		return NewHTTPError(http.StatusConflict, "no confirmed order")
	default:
		return NewHTTPError(http.StatusInternalServerError, "session error")
	}
}
