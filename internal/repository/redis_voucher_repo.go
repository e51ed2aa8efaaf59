package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/Cheertaboi/voucher-service/internal/models"
)

const voucherKeyPrefix = "voucher:"

// KEYS[1] voucher hash; ARGV id, code, discount, timestamp.
var createVoucherScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 1 then
	return 0
end
redis.call("HSET", KEYS[1],
	"id", ARGV[1],
	"code", ARGV[2],
	"discount", ARGV[3],
	"used", "0",
	"created_at", ARGV[4],
	"updated_at", ARGV[4])
return 1
`)

// KEYS[1] voucher hash; ARGV timestamp.
var useVoucherScript = redis.NewScript(`
local used = redis.call("HGET", KEYS[1], "used")
if used ~= "0" then
	return 0
end
redis.call("HSET", KEYS[1], "used", "1", "updated_at", ARGV[1])
return 1
`)

// RedisVoucherRepo stores each voucher as a hash; writes go through Lua scripts so
// check-and-set runs atomically on the server.
type RedisVoucherRepo struct {
	rdb redis.UniversalClient
	now func() time.Time
}

func NewRedisVoucherRepo(rdb redis.UniversalClient) *RedisVoucherRepo {
	return &RedisVoucherRepo{rdb: rdb, now: time.Now}
}

func voucherKey(code string) string {
	return voucherKeyPrefix + code
}

func (r *RedisVoucherRepo) GetVoucherByCode(ctx context.Context, code string) (*models.Voucher, error) {
	fields, err := r.rdb.HGetAll(ctx, voucherKey(code)).Result()
	if err != nil {
		return nil, errors.Wrap(err, "hgetall voucher")
	}
	if len(fields) == 0 {
		return nil, nil
	}
	return decodeVoucher(fields)
}

func (r *RedisVoucherRepo) CreateVoucher(ctx context.Context, code string, discount int) error {
	ts := r.now().UTC().Format(time.RFC3339Nano)
	created, err := createVoucherScript.Run(ctx, r.rdb, []string{voucherKey(code)},
		uuid.NewString(), code, discount, ts).Int()
	if err != nil {
		return errors.Wrap(err, "create voucher script")
	}
	if created == 0 {
		return models.ErrDuplicateCode
	}
	return nil
}

func (r *RedisVoucherRepo) UseVoucher(ctx context.Context, code string) (bool, error) {
	ts := r.now().UTC().Format(time.RFC3339Nano)
	consumed, err := useVoucherScript.Run(ctx, r.rdb, []string{voucherKey(code)}, ts).Int()
	if err != nil {
		return false, errors.Wrap(err, "use voucher script")
	}
	return consumed == 1, nil
}

func decodeVoucher(fields map[string]string) (*models.Voucher, error) {
	discount, err := strconv.Atoi(fields["discount"])
	if err != nil {
		return nil, errors.Wrapf(err, "decode discount of voucher %q", fields["code"])
	}
	createdAt, err := time.Parse(time.RFC3339Nano, fields["created_at"])
	if err != nil {
		return nil, errors.Wrap(err, "decode created_at")
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, fields["updated_at"])
	if err != nil {
		return nil, errors.Wrap(err, "decode updated_at")
	}
	return &models.Voucher{
		ID:        fields["id"],
		Code:      fields["code"],
		Discount:  discount,
		Used:      fields["used"] == "1",
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}
