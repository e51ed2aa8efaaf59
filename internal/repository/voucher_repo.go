package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/Cheertaboi/voucher-service/internal/models"
)

const pqUniqueViolation = "23505"

// VoucherRepo is the Postgres voucher store.
type VoucherRepo struct {
	db *sqlx.DB
}

func NewVoucherRepo(db *sqlx.DB) *VoucherRepo {
	return &VoucherRepo{db: db}
}

func (r *VoucherRepo) GetVoucherByCode(ctx context.Context, code string) (*models.Voucher, error) {
	var v models.Voucher

	query := `
		SELECT id, code, discount, used, created_at, updated_at
		FROM vouchers
		WHERE code = $1
	`

	err := r.db.GetContext(ctx, &v, query, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "select voucher")
	}
	return &v, nil
}

func (r *VoucherRepo) CreateVoucher(ctx context.Context, code string, discount int) error {
	insert := `
		INSERT INTO vouchers (id, code, discount, used, created_at, updated_at)
		VALUES ($1, $2, $3, FALSE, NOW(), NOW())
	`

	_, err := r.db.ExecContext(ctx, insert, uuid.NewString(), code, discount)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return models.ErrDuplicateCode
		}
		return errors.Wrap(err, "insert voucher")
	}
	return nil
}

// UseVoucher flips used in a single conditional UPDATE, so only one caller wins.
func (r *VoucherRepo) UseVoucher(ctx context.Context, code string) (bool, error) {
	query := `
		UPDATE vouchers
		SET used = TRUE,
		    updated_at = NOW()
		WHERE code = $1 AND used = FALSE
	`

	res, err := r.db.ExecContext(ctx, query, code)
	if err != nil {
		return false, errors.Wrap(err, "update voucher")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "rows affected")
	}
	return n == 1, nil
}
