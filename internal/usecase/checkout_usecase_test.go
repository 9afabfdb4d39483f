package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"storefront/internal/domain/model"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test: 空カートでは注文確認を開かない
func TestCheckoutUsecase_Open_EmptyCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.checkout.Open(ctx, sid)
	he := assertHTTPError(t, err, http.StatusConflict, "cart empty")
	assert.Equal(t, "Your cart is empty!", he.Notice)

	state, err := f.checkout.State(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, model.CheckoutIdle, state)
}

func TestCheckoutUsecase_FullFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, _ = f.cart.AddToCart(ctx, sid, usecase.AddCartInput{ProductID: "a", Quantity: 2})
	_, _ = f.cart.AddToCart(ctx, sid, usecase.AddCartInput{ProductID: "b", Quantity: 1})

	sum, err := f.checkout.Open(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, string(model.CheckoutSummarizing), sum.State)
	assert.Equal(t, "25.50", sum.Cart.TotalValue)

	r, err := f.checkout.Confirm(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, 3, r.TotalUnits)
	assert.Equal(t, "25.50", r.TotalValue)
	assert.Equal(t, 2, r.DistinctLines)
	assert.Len(t, r.Lines, 2)
	assert.Equal(t, fixedNow(), r.ConfirmedAt)

	// 確定後はカートが空
	cart, err := f.cart.GetCart(ctx, sid)
	require.NoError(t, err)
	assert.True(t, cart.Empty)

	again, err := f.checkout.Receipt(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, r, again)

	require.NoError(t, f.checkout.Dismiss(ctx, sid))
	state, err := f.checkout.State(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, model.CheckoutIdle, state)

	_, err = f.checkout.Receipt(ctx, sid)
	assertHTTPError(t, err, http.StatusNotFound, "no confirmed order")
}

func TestCheckoutUsecase_Confirm_WithoutOpen(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, _ = f.cart.AddToCart(ctx, sid, usecase.AddCartInput{ProductID: "a", Quantity: 1})

	_, err := f.checkout.Confirm(ctx, sid)
	assertHTTPError(t, err, http.StatusConflict, "checkout not open")

	cart, err := f.cart.GetCart(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, 1, cart.TotalUnits)
}

func TestCheckoutUsecase_Cancel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, _ = f.cart.AddToCart(ctx, sid, usecase.AddCartInput{ProductID: "a", Quantity: 1})

	_, err := f.checkout.Open(ctx, sid)
	require.NoError(t, err)
	require.NoError(t, f.checkout.Cancel(ctx, sid))

	state, err := f.checkout.State(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, model.CheckoutIdle, state)

	_, err = f.checkout.Confirm(ctx, sid)
	assertHTTPError(t, err, http.StatusConflict, "checkout not open")
}

func TestCheckoutUsecase_Dismiss_NotConfirmed(t *testing.T) {
	f := newFixture(t)

	err := f.checkout.Dismiss(context.Background(), sid)
	assertHTTPError(t, err, http.StatusConflict, "no confirmed order")
}

// Test: 完了表示を閉じると通知も含めて初期化
func TestCheckoutUsecase_Dismiss_ResetsSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, _ = f.cart.AddToCart(ctx, sid, usecase.AddCartInput{ProductID: "a", Quantity: 1})
	_, _ = f.checkout.Open(ctx, sid)
	_, err := f.checkout.Confirm(ctx, sid)
	require.NoError(t, err)
	require.NoError(t, f.session.PushNotice(ctx, sid, &model.Notice{Kind: model.NoticeSuccess, Message: "x"}))

	require.NoError(t, f.checkout.Dismiss(ctx, sid))

	notices, err := f.session.TakeNotices(ctx, sid)
	require.NoError(t, err)
	assert.Empty(t, notices)
}

func TestSessionUsecase_Notices(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.session.PushNotice(ctx, sid, nil))
	require.NoError(t, f.session.PushNotice(ctx, sid, &model.Notice{Kind: model.NoticeWarning, Message: "careful"}))

	got, err := f.session.TakeNotices(ctx, sid)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "careful", got[0].Message)

	got, err = f.session.TakeNotices(ctx, sid)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSessionUsecase_RunSweeper_StopsOnCancel(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, f.session.RunSweeper(ctx, 1))
}

func TestSessionUsecase_End(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.cart.AddToCart(ctx, sid, usecase.AddCartInput{ProductID: "a", Quantity: 1})
	require.NoError(t, err)
	require.Equal(t, 1, f.sessions.Len())

	require.NoError(t, f.session.End(ctx, sid))
	assert.Equal(t, 0, f.sessions.Len())

	assertHTTPError(t, f.session.End(ctx, ""), http.StatusUnauthorized, "no session")
}
