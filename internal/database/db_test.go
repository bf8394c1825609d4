package walletstatedb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := InitSQLiteDB(filepath.Join(t.TempDir(), "state", "wallet.db"))
	require.NoError(t, err)
	t.Cleanup(func() { Close(db) })
	return db
}

func TestMetadataUpsert(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, SetMetadata(db, "wallet_address", "0x1"))
	require.NoError(t, SetMetadata(db, "wallet_address", "0x2"))

	v, err := GetMetadata(db, "wallet_address")
	require.NoError(t, err)
	assert.Equal(t, "0x2", v)

	var count int64
	require.NoError(t, db.Model(&SQLiteMetadata{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestMetadataMissingKey(t *testing.T) {
	db := openTestDB(t)

	_, err := GetMetadata(db, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteMetadata(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, SetMetadata(db, "a", "1"))
	require.NoError(t, SetMetadata(db, "b", "2"))
	require.NoError(t, DeleteMetadata(db, "a", "b", "c"))

	_, err := GetMetadata(db, "a")
	assert.ErrorIs(t, err, ErrNotFound)

	// a deleted key can be written again without hitting the unique index
	require.NoError(t, SetMetadata(db, "a", "3"))
	v, err := GetMetadata(db, "a")
	require.NoError(t, err)
	assert.Equal(t, "3", v)
}
