package models

import "time"

// MinimumAmount is the smallest purchase amount a voucher discount applies to.
const MinimumAmount = 100.0

// Discount is a whole percentage.
const (
	MinDiscount = 0
	MaxDiscount = 100
)

type Voucher struct {
	ID        string    `json:"id" db:"id"`
	Code      string    `json:"code" db:"code"`
	Discount  int       `json:"discount" db:"discount"`
	Used      bool      `json:"used" db:"used"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// ApplyResult is the outcome of applying a voucher to a purchase amount.
// FinalAmount equals Amount whenever Applied is false.
type ApplyResult struct {
	Amount      float64 `json:"amount"`
	Discount    int     `json:"discount"`
	FinalAmount float64 `json:"finalAmount"`
	Applied     bool    `json:"applied"`
}

// Eligible reports whether the voucher grants its discount on amount.
func (v *Voucher) Eligible(amount float64) bool {
	return !v.Used && amount >= MinimumAmount
}

// DiscountedAmount returns amount reduced by the voucher percentage.
func (v *Voucher) DiscountedAmount(amount float64) float64 {
	return amount * (1 - float64(v.Discount)/100)
}
