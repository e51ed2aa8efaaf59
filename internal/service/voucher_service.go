package service

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/Cheertaboi/voucher-service/internal/metrics"
	"github.com/Cheertaboi/voucher-service/internal/models"
)

// VoucherRepository is the store contract (use interface to allow mocking).
type VoucherRepository interface {
	// GetVoucherByCode returns (nil, nil) when no voucher has the code.
	GetVoucherByCode(ctx context.Context, code string) (*models.Voucher, error)
	// CreateVoucher inserts an unused voucher. Returns models.ErrDuplicateCode
	// if the code is already taken.
	CreateVoucher(ctx context.Context, code string, discount int) error
	// UseVoucher marks the voucher used only if it is currently unused and
	// reports whether this call performed the transition.
	UseVoucher(ctx context.Context, code string) (bool, error)
}

type VoucherService struct {
	repo    VoucherRepository
	metrics *metrics.Metrics
}

func NewVoucherService(repo VoucherRepository, m *metrics.Metrics) *VoucherService {
	return &VoucherService{
		repo:    repo,
		metrics: m,
	}
}

// CreateVoucher stores a new unused voucher. Fails with a conflict if the code exists.
func (s *VoucherService) CreateVoucher(ctx context.Context, code string, discount int) error {
	if discount < models.MinDiscount || discount > models.MaxDiscount {
		return models.UnprocessableError("discount must be between 0 and 100")
	}

	existing, err := s.repo.GetVoucherByCode(ctx, code)
	if err != nil {
		return errors.Wrap(err, "get voucher by code")
	}
	if existing != nil {
		return models.ConflictError(models.MsgVoucherExists)
	}

	if err := s.repo.CreateVoucher(ctx, code, discount); err != nil {
		// lost a race with a concurrent create of the same code
		if errors.Is(err, models.ErrDuplicateCode) {
			return models.ConflictError(models.MsgVoucherExists)
		}
		return errors.Wrap(err, "create voucher")
	}

	s.metrics.VouchersCreated.Inc()
	zerolog.Ctx(ctx).Info().Str("code", code).Int("discount", discount).Msg("voucher created")
	return nil
}

// ApplyVoucher computes the discounted amount and consumes the voucher when it qualifies.
// Already used vouchers and amounts below models.MinimumAmount are not errors.
func (s *VoucherService) ApplyVoucher(ctx context.Context, code string, amount float64) (models.ApplyResult, error) {
	voucher, err := s.repo.GetVoucherByCode(ctx, code)
	if err != nil {
		return models.ApplyResult{}, errors.Wrap(err, "get voucher by code")
	}
	if voucher == nil {
		s.metrics.VoucherApplies.WithLabelValues(metrics.ResultConflict).Inc()
		return models.ApplyResult{}, models.ConflictError(models.MsgVoucherNotFound)
	}

	result := models.ApplyResult{
		Amount:      amount,
		Discount:    voucher.Discount,
		FinalAmount: amount,
	}

	if voucher.Eligible(amount) {
		consumed, err := s.repo.UseVoucher(ctx, code)
		if err != nil {
			return models.ApplyResult{}, errors.Wrap(err, "use voucher")
		}
		if consumed {
			result.FinalAmount = voucher.DiscountedAmount(amount)
			result.Applied = true
		}
	}

	logger := zerolog.Ctx(ctx)
	if result.Applied {
		s.metrics.VoucherApplies.WithLabelValues(metrics.ResultApplied).Inc()
		logger.Info().Str("code", code).Float64("amount", amount).Float64("final_amount", result.FinalAmount).Msg("voucher applied")
	} else {
		s.metrics.VoucherApplies.WithLabelValues(metrics.ResultNotApplied).Inc()
		logger.Debug().Str("code", code).Float64("amount", amount).Bool("used", voucher.Used).Msg("voucher not applied")
	}
	return result, nil
}

func (s *VoucherService) GetVoucher(ctx context.Context, code string) (*models.Voucher, error) {
	voucher, err := s.repo.GetVoucherByCode(ctx, code)
	if err != nil {
		return nil, errors.Wrap(err, "get voucher by code")
	}
	if voucher == nil {
		return nil, models.NotFoundError(models.MsgVoucherNotFound)
	}
	return voucher, nil
}
