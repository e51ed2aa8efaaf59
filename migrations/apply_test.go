package migrations_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cheertaboi/voucher-service/internal/testutil"
	"github.com/Cheertaboi/voucher-service/migrations"
)

func TestApply_RecordsEachMigrationOnce(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	require.NoError(t, migrations.Apply(ctx, db))

	var count int
	require.NoError(t, db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM schema_migrations WHERE name = '0001_create_vouchers.sql'`))
	assert.Equal(t, 1, count)
}
