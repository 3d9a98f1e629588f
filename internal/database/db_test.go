package database_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobad-insights/internal/database"
	"jobad-insights/internal/database/dbtest"
)

func TestWithTx(t *testing.T) {
	db := dbtest.New()
	require.NoError(t, database.WithTx(context.Background(), db, func(tx database.Tx) error {
		_, err := tx.Exec(context.Background(), `DELETE FROM job_ads_long`)
		return err
	}))
	assert.Equal(t, 1, db.Committed)
	assert.Equal(t, 0, db.RolledBack)

	boom := errors.New("boom")
	err := database.WithTx(context.Background(), db, func(database.Tx) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, db.Committed)
	assert.Equal(t, 1, db.RolledBack)

	assert.Error(t, database.WithTx(context.Background(), nil, func(database.Tx) error { return nil }))
}
