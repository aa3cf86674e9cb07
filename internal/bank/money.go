// internal/bank/money.go

package bank

import (
	"math"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Scale 為最小貨幣單位的小數位數（分）。
const Scale = 2

// MaxAmount 為可表示的最大金額（以分計）。
const MaxAmount = Amount(math.MaxInt64)

var maxMinorUnits = decimal.NewFromInt(math.MaxInt64)

// 可接受的十進位指數範圍；超出範圍的輸入在重新縮放前就拒絕。
const (
	minExponent = -Scale - 18
	maxExponent = 19
)

// Amount 以 int64 的最小貨幣單位（分）儲存金額，避免浮點誤差。
type Amount int64

// ParseAmount 將十進位字串（如 "150"、"150.5"、"150.50"）轉為 Amount。
// 超過兩位小數不會四捨五入，而是回傳 ErrInvalidAmount。
// 本函式不檢查正負，正負規則由各操作自行判斷。
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidAmount, "parse %q", s)
	}
	if exp := d.Exponent(); exp < minExponent || exp > maxExponent {
		return 0, errors.Wrapf(ErrInvalidAmount, "%q out of range", s)
	}
	minor := d.Shift(Scale)
	if !minor.Equal(minor.Truncate(0)) {
		return 0, errors.Wrapf(ErrInvalidAmount, "%q has more than %d decimal places", s, Scale)
	}
	if minor.Abs().GreaterThan(maxMinorUnits) {
		return 0, errors.Wrapf(ErrInvalidAmount, "%q out of range", s)
	}
	return Amount(minor.IntPart()), nil
}

// Decimal 回傳金額的十進位表示（單位：元）。
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -Scale)
}

// String 固定輸出兩位小數，例如 "150.00"。
func (a Amount) String() string {
	return a.Decimal().StringFixed(Scale)
}
