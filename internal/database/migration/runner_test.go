package migration

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMigrations_Embedded(t *testing.T) {
	migs, err := loadMigrations(Runner{}.source())
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(migs), 3)
	assert.Equal(t, int64(1), migs[0].Version)
	assert.Equal(t, "job_ads", migs[0].Name)
	for i := 1; i < len(migs); i++ {
		assert.Less(t, migs[i-1].Version, migs[i].Version)
	}
}

func TestLoadMigrations_OrderAndChecksum(t *testing.T) {
	fsys := fstest.MapFS{
		"V10__later.sql":  {Data: []byte("SELECT 10;")},
		"V2__second.sql":  {Data: []byte("  SELECT 2;\n")},
		"README.md":       {Data: []byte("ignored")},
		"V3_bad_name.sql": {Data: []byte("SELECT 3;")},
	}
	migs, err := loadMigrations(fsys)
	require.NoError(t, err)
	require.Len(t, migs, 2)
	assert.Equal(t, int64(2), migs[0].Version)
	assert.Equal(t, "SELECT 2;", migs[0].SQL)
	assert.Len(t, migs[0].Checksum, 64)
	assert.Equal(t, int64(10), migs[1].Version)
}

func TestLoadMigrations_Errors(t *testing.T) {
	_, err := loadMigrations(fstest.MapFS{
		"V1__a.sql": {Data: []byte("SELECT 1;")},
		"V1__b.sql": {Data: []byte("SELECT 1;")},
	})
	assert.ErrorContains(t, err, "duplicate migration version")

	_, err = loadMigrations(fstest.MapFS{"V1__empty.sql": {Data: []byte("  ")}})
	assert.ErrorContains(t, err, "empty migration file")
}

func TestRunner_DirOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "V7__custom.sql"), []byte("SELECT 7;"), 0o600))

	migs, err := loadMigrations(Runner{Dir: dir}.source())
	require.NoError(t, err)
	require.Len(t, migs, 1)
	assert.Equal(t, "custom", migs[0].Name)
}
