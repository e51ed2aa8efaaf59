package repository

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/Cheertaboi/voucher-service/internal/config"
	"github.com/Cheertaboi/voucher-service/internal/service"
	"github.com/Cheertaboi/voucher-service/migrations"
	"github.com/Cheertaboi/voucher-service/pkg/db"
)

// Open connects the store selected by cfg.Store.Driver and prepares its schema.
// The returned close func releases the underlying connection.
func Open(ctx context.Context, cfg *config.Config) (service.VoucherRepository, func() error, error) {
	logger := zerolog.Ctx(ctx).With().Str("driver", cfg.Store.Driver).Logger()

	switch cfg.Store.Driver {
	case config.DriverMemory:
		logger.Warn().Msg("using in-memory voucher store; data is lost on restart")
		return NewMemoryVoucherRepo(), func() error { return nil }, nil

	case config.DriverPostgres:
		conn, err := db.NewPostgresConnection(cfg.Postgres)
		if err != nil {
			return nil, nil, errors.Wrap(err, "postgres connect")
		}
		if err := migrations.Apply(ctx, conn); err != nil {
			_ = conn.Close()
			return nil, nil, errors.Wrap(err, "postgres migrate")
		}
		logger.Info().Str("host", cfg.Postgres.Host).Str("db", cfg.Postgres.DBName).Msg("voucher store ready")
		return NewVoucherRepo(conn), conn.Close, nil

	case config.DriverMySQL:
		gdb, err := db.NewMySQLConnection(cfg.MySQL)
		if err != nil {
			return nil, nil, errors.Wrap(err, "mysql connect")
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, nil, errors.Wrap(err, "mysql handle")
		}
		repo := NewMySQLVoucherRepo(gdb)
		if err := repo.Migrate(ctx); err != nil {
			_ = sqlDB.Close()
			return nil, nil, err
		}
		logger.Info().Msg("voucher store ready")
		return repo, sqlDB.Close, nil

	case config.DriverRedis:
		rdb, err := db.NewRedisClient(cfg.Redis)
		if err != nil {
			return nil, nil, errors.Wrap(err, "redis connect")
		}
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("voucher store ready")
		return NewRedisVoucherRepo(rdb), rdb.Close, nil
	}
	return nil, nil, errors.Errorf("unknown store driver %q", cfg.Store.Driver)
}
