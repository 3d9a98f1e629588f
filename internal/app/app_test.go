package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"jobad-insights/internal/config"
	"jobad-insights/internal/dataset"
	"jobad-insights/internal/domain/jobad"
	"jobad-insights/internal/usecase"
)

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func testConfig(t *testing.T, dir string) config.Config {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	var cfg config.Config
	cfg.App.AppName = "jobad-insights-test"
	cfg.Data.Directory = dir
	cfg.Auth.AdminUsername = "admin"
	cfg.Auth.AdminPasswordHash = string(hash)
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.AccessTTL = time.Minute
	return cfg
}

func writeRaw(t *testing.T, dir string) {
	t.Helper()
	f, err := os.Create(filepath.Join(dir, dataset.RawFile))
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, dataset.WriteRaw(f, []jobad.Raw{{
		Link:         "https://example.org/job/1",
		Title:        "Data Scientist",
		Company:      "Acme GmbH",
		Location:     "Berlin",
		ContractType: "Feste Anstellung",
		WorkType:     "Vollzeit",
		Salary:       "50.000 - 70.000 €",
		Content:      "Python und SQL",
		CompanySize:  "51-250",
	}}))
}

func call(t *testing.T, a *App, method, target string, body any, token string) (int, envelope) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := a.Fiber.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestServerRunsPipelineFromFiles(t *testing.T) {
	dir := t.TempDir()
	writeRaw(t, dir)

	c, err := NewContainer(context.Background(), testConfig(t, dir), log.New(io.Discard, "", 0), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	assert.Nil(t, c.DB)
	assert.Nil(t, c.Cache)

	a := New(c)

	status, _ := call(t, a, "GET", "/api/v1/requirements", nil, "")
	assert.Equal(t, http.StatusNotFound, status, "no outputs before the first run")

	status, env := call(t, a, "POST", "/api/v1/auth/login", map[string]string{"username": "admin", "password": "s3cret"}, "")
	require.Equal(t, http.StatusOK, status)
	var tokens struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &tokens))

	status, _ = call(t, a, "POST", "/api/v1/pipeline/run", nil, tokens.AccessToken)
	require.Equal(t, http.StatusAccepted, status)

	require.Eventually(t, func() bool {
		st, err := c.Pipeline.GetStatus(context.Background())
		return err == nil && !st.Running && st.LastRun != nil
	}, 5*time.Second, 10*time.Millisecond)

	status, env = call(t, a, "GET", "/api/v1/requirements?title_category=Data%20Scientist", nil, "")
	require.Equal(t, http.StatusOK, status)
	var shares usecase.RequirementAnalysis
	require.NoError(t, json.Unmarshal(env.Data, &shares))
	assert.Equal(t, 1, shares.Total)
	require.NotEmpty(t, shares.Items)
	assert.Equal(t, 100.0, shares.Items[0].Percentage)

	status, env = call(t, a, "GET", "/api/v1/salaries", nil, "")
	require.Equal(t, http.StatusOK, status)
	var salaries []usecase.SalaryStat
	require.NoError(t, json.Unmarshal(env.Data, &salaries))
	require.Len(t, salaries, 1)
	assert.Equal(t, 60000.0, salaries[0].Mean)
}

func TestNewContainerRequiresGeocodingKey(t *testing.T) {
	cfg := testConfig(t, t.TempDir())
	cfg.Data.GeoEnabled = true

	_, err := NewContainer(context.Background(), cfg, log.New(io.Discard, "", 0), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POSITIONSTACK_ACCESS_KEY")
}

func TestListenAddr(t *testing.T) {
	addr, err := ListenAddr("8080")
	require.NoError(t, err)
	assert.Equal(t, ":8080", addr)

	addr, err = ListenAddr(":9090")
	require.NoError(t, err)
	assert.Equal(t, ":9090", addr)

	_, err = ListenAddr(" ")
	assert.Error(t, err)
}
