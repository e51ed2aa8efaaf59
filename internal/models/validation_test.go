package models_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cheertaboi/voucher-service/internal/models"
)

func Test_CreateVoucherRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     models.CreateVoucherRequest
		wantErr string
	}{
		{name: "valid", req: models.CreateVoucherRequest{Code: "ABC", Discount: 15}},
		{name: "full_discount", req: models.CreateVoucherRequest{Code: "ABC", Discount: 100}},
		{name: "empty_code", req: models.CreateVoucherRequest{Code: "  ", Discount: 15}, wantErr: "code is required"},
		{name: "long_code", req: models.CreateVoucherRequest{Code: strings.Repeat("x", 65), Discount: 15}, wantErr: "code must be at most 64 characters"},
		{name: "zero_discount", req: models.CreateVoucherRequest{Code: "ABC", Discount: 0}, wantErr: "discount must be between 1 and 100"},
		{name: "discount_over_100", req: models.CreateVoucherRequest{Code: "ABC", Discount: 101}, wantErr: "discount must be between 1 and 100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			appErr, ok := models.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, models.ErrorTypeUnprocessable, appErr.Type)
			assert.Equal(t, tt.wantErr, appErr.Message)
		})
	}
}

func Test_CreateVoucherRequest_Validate_TrimsCode(t *testing.T) {
	req := models.CreateVoucherRequest{Code: "  XXXX ", Discount: 30}

	require.NoError(t, req.Validate())
	assert.Equal(t, "XXXX", req.Code)
}

func Test_ApplyVoucherRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     models.ApplyVoucherRequest
		wantErr bool
	}{
		{name: "valid", req: models.ApplyVoucherRequest{Code: "ABC", Amount: 101}},
		{name: "below_minimum_is_still_valid", req: models.ApplyVoucherRequest{Code: "ABC", Amount: 99}},
		{name: "empty_code", req: models.ApplyVoucherRequest{Amount: 101}, wantErr: true},
		{name: "zero_amount", req: models.ApplyVoucherRequest{Code: "ABC"}, wantErr: true},
		{name: "negative_amount", req: models.ApplyVoucherRequest{Code: "ABC", Amount: -5}, wantErr: true},
		{name: "infinite_amount", req: models.ApplyVoucherRequest{Code: "ABC", Amount: math.Inf(1)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func Test_Voucher_Eligible(t *testing.T) {
	unused := models.Voucher{Code: "ABC", Discount: 15}
	used := models.Voucher{Code: "ABC", Discount: 15, Used: true}

	assert.True(t, unused.Eligible(100))
	assert.True(t, unused.Eligible(101))
	assert.False(t, unused.Eligible(99.99))
	assert.False(t, used.Eligible(1000))
}

func Test_AppError_IsConflict(t *testing.T) {
	assert.True(t, models.IsConflict(models.ConflictError(models.MsgVoucherExists)))
	assert.False(t, models.IsConflict(models.NotFoundError(models.MsgVoucherNotFound)))
	assert.False(t, models.IsConflict(models.ErrDuplicateCode))
}
