package migrations

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationNamesSorted(t *testing.T) {
	names, err := migrationNames()
	require.NoError(t, err)

	require.NotEmpty(t, names)
	assert.Equal(t, "0001_create_vouchers.sql", names[0])
	assert.IsIncreasing(t, names)
}

func TestReadMigrationTrimmed(t *testing.T) {
	stmt, err := readMigration("0001_create_vouchers.sql")
	require.NoError(t, err)
	assert.Contains(t, stmt, "CREATE TABLE")
	assert.Equal(t, strings.TrimSpace(stmt), stmt)

	_, err = readMigration("9999_missing.sql")
	assert.Error(t, err)
}
