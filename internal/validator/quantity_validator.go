package validator

import (
	"errors"
	"strconv"
	"strings"

	"storefront/internal/domain/model"
)

var (
	// 数量が整数でない / 範囲外
	ErrInvalidQuantity = errors.New("invalid quantity")

	// 商品が未選択
	ErrProductRequired = errors.New("product required")
)

// ParseQuantity はフォームの数量を [1,100] の整数として読む。
func ParseQuantity(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrInvalidQuantity
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, ErrInvalidQuantity
	}
	if err := ValidateQuantity(n); err != nil {
		return 0, err
	}
	return n, nil
}

func ValidateQuantity(n int) error {
	if n < model.MinLineQuantity || n > model.MaxLineQuantity {
		return ErrInvalidQuantity
	}
	return nil
}

// AddToCartForm はクイック追加/詳細画面のフォーム検証結果。
type AddToCartForm struct {
	ProductID       string
	Quantity        int
	RawQuantity     string
	ProductInvalid  bool
	QuantityInvalid bool
}

func (f AddToCartForm) Valid() bool {
	return !f.ProductInvalid && !f.QuantityInvalid
}

// ValidateAddToCart は送信をブロックすべきフィールドに印をつける。
func ValidateAddToCart(productID string, rawQuantity string) (AddToCartForm, error) {
	f := AddToCartForm{
		ProductID:   strings.TrimSpace(productID),
		RawQuantity: rawQuantity,
	}

	var errs []error
	if f.ProductID == "" {
		f.ProductInvalid = true
		errs = append(errs, ErrProductRequired)
	}
	q, err := ParseQuantity(rawQuantity)
	if err != nil {
		f.QuantityInvalid = true
		errs = append(errs, err)
	}
	f.Quantity = q

	return f, errors.Join(errs...)
}
