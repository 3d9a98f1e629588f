package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobad-insights/internal/config"
	"jobad-insights/internal/database"
)

var _ database.DB = (*Pool)(nil)
var _ database.Copier = (*Pool)(nil)

func TestDSN(t *testing.T) {
	got := DSN(config.DatabaseConfig{
		DBHost:     " localhost ",
		DBPort:     "5432",
		DBUser:     "jobs",
		DBPassword: "it's secret",
		DBName:     "jobads",
		DBSSLMode:  "disable",
	})
	assert.Equal(t, `host=localhost port=5432 user=jobs password='it\'s secret' dbname=jobads sslmode=disable`, got)
}

func TestDSN_EmptyValuesQuoted(t *testing.T) {
	got := DSN(config.DatabaseConfig{DBHost: "db", DBName: "x"})
	assert.Contains(t, got, "password=''")
}

func TestNilPool(t *testing.T) {
	var p *Pool
	assert.ErrorIs(t, p.Ping(context.Background()), ErrNilPool)
	assert.NoError(t, p.Close())
	assert.Nil(t, p.SQLDB())
	_, err := p.Exec(context.Background(), "SELECT 1")
	assert.ErrorIs(t, err, ErrNilPool)
	_, err = p.Begin(context.Background())
	assert.ErrorIs(t, err, ErrNilPool)
	_, err = p.CopyFrom(context.Background(), "job_ads_long", []string{"link"}, nil)
	assert.ErrorIs(t, err, ErrNilPool)
	assert.ErrorIs(t, p.QueryRow(context.Background(), "SELECT 1").Scan(), ErrNilPool)
}

func TestConnect_Integration(t *testing.T) {
	host := os.Getenv("DB_HOST")
	if host == "" {
		t.Skip("DB_HOST not set")
	}
	cfg := config.DatabaseConfig{
		DBHost:     host,
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSSLMode:  "disable",
	}
	p, err := Connect(context.Background(), cfg)
	require.NoError(t, err)
	defer p.Close()

	var one int
	require.NoError(t, p.QueryRow(context.Background(), "SELECT 1").Scan(&one))
	assert.Equal(t, 1, one)
}
