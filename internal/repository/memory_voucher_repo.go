package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Cheertaboi/voucher-service/internal/models"
)

// MemoryVoucherRepo keeps vouchers in process memory, keyed by code.
type MemoryVoucherRepo struct {
	mu    sync.RWMutex
	store map[string]models.Voucher
	now   func() time.Time
}

func NewMemoryVoucherRepo() *MemoryVoucherRepo {
	return &MemoryVoucherRepo{
		store: make(map[string]models.Voucher),
		now:   time.Now,
	}
}

func (r *MemoryVoucherRepo) GetVoucherByCode(_ context.Context, code string) (*models.Voucher, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.store[code]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (r *MemoryVoucherRepo) CreateVoucher(_ context.Context, code string, discount int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.store[code]; ok {
		return models.ErrDuplicateCode
	}
	now := r.now().UTC()
	r.store[code] = models.Voucher{
		ID:        uuid.NewString(),
		Code:      code,
		Discount:  discount,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return nil
}

func (r *MemoryVoucherRepo) UseVoucher(_ context.Context, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.store[code]
	if !ok || v.Used {
		return false, nil
	}
	v.Used = true
	v.UpdatedAt = r.now().UTC()
	r.store[code] = v
	return true, nil
}
