package repository

import (
	"context"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Cheertaboi/voucher-service/internal/models"
)

const mysqlDuplicateEntry = 1062

// VoucherModel maps the vouchers table for gorm.
type VoucherModel struct {
	ID        string `gorm:"type:char(36);primaryKey"`
	Code      string `gorm:"type:varchar(64);uniqueIndex;not null"`
	Discount  int    `gorm:"not null;check:chk_vouchers_discount,discount BETWEEN 0 AND 100"`
	Used      bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (VoucherModel) TableName() string {
	return "vouchers"
}

func (m *VoucherModel) toDomain() *models.Voucher {
	return &models.Voucher{
		ID:        m.ID,
		Code:      m.Code,
		Discount:  m.Discount,
		Used:      m.Used,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// MySQLVoucherRepo is the gorm/MySQL voucher store.
type MySQLVoucherRepo struct {
	db *gorm.DB
}

func NewMySQLVoucherRepo(db *gorm.DB) *MySQLVoucherRepo {
	return &MySQLVoucherRepo{db: db}
}

// Migrate creates or updates the vouchers table.
func (r *MySQLVoucherRepo) Migrate(ctx context.Context) error {
	return errors.Wrap(r.db.WithContext(ctx).AutoMigrate(&VoucherModel{}), "automigrate vouchers")
}

func (r *MySQLVoucherRepo) GetVoucherByCode(ctx context.Context, code string) (*models.Voucher, error) {
	var m VoucherModel
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "select voucher")
	}
	return m.toDomain(), nil
}

func (r *MySQLVoucherRepo) CreateVoucher(ctx context.Context, code string, discount int) error {
	m := VoucherModel{
		ID:       uuid.NewString(),
		Code:     code,
		Discount: discount,
	}
	err := r.db.WithContext(ctx).Create(&m).Error
	if err != nil {
		if isDuplicateEntry(err) {
			return models.ErrDuplicateCode
		}
		return errors.Wrap(err, "insert voucher")
	}
	return nil
}

func (r *MySQLVoucherRepo) UseVoucher(ctx context.Context, code string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&VoucherModel{}).
		Where("code = ? AND used = ?", code, false).
		Updates(map[string]interface{}{
			"used":       true,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "update voucher")
	}
	return res.RowsAffected == 1, nil
}

func isDuplicateEntry(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *gomysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry
}
