package models

import (
	"math"
	"strings"
)

const maxCodeLength = 64

type CreateVoucherRequest struct {
	Code     string `json:"code"`
	Discount int    `json:"discount"`
}

type ApplyVoucherRequest struct {
	Code   string  `json:"code"`
	Amount float64 `json:"amount"`
}

// Validate trims the code in place and checks field bounds.
func (r *CreateVoucherRequest) Validate() error {
	r.Code = strings.TrimSpace(r.Code)
	if err := validateCode(r.Code); err != nil {
		return err
	}
	if r.Discount < 1 || r.Discount > 100 {
		return UnprocessableError("discount must be between 1 and 100")
	}
	return nil
}

func (r *ApplyVoucherRequest) Validate() error {
	r.Code = strings.TrimSpace(r.Code)
	if err := validateCode(r.Code); err != nil {
		return err
	}
	if math.IsNaN(r.Amount) || math.IsInf(r.Amount, 0) || r.Amount <= 0 {
		return UnprocessableError("amount must be a positive number")
	}
	return nil
}

func validateCode(code string) error {
	if code == "" {
		return UnprocessableError("code is required")
	}
	if len(code) > maxCodeLength {
		return UnprocessableError("code must be at most 64 characters")
	}
	return nil
}
