package view

import "storefront/internal/domain/model"

type QuickAddForm struct {
	Options         []SelectOption
	Quantity        string
	ProductInvalid  bool
	QuantityInvalid bool
	WasValidated    bool
}

// IndexPage は一覧＋カート。ライトボックスやモーダルは上に重ねる。
type IndexPage struct {
	Title      string
	Notices    []model.Notice
	Category   string
	Categories []SelectOption
	Products   []ProductCard
	QuickAdd   QuickAddForm
	Cart       CartView

	Detail       *DetailView
	Checkout     *CheckoutView
	Receipt      *ReceiptView
	ConfirmClear bool
}

// カタログ読み込み失敗（リトライボタンつき）
type CatalogErrorPage struct {
	Title   string
	Message string
	Notices []model.Notice
	Cart    CartView
}
