package adapter

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imposter-project/jsonmock/internal/config"
)

func writeDB(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestInitialiseServer(t *testing.T) {
	dbFile := writeDB(t, `{"sessions":[{"id":1,"technology":"WebRTC"}]}`)

	tests := []struct {
		name      string
		dbFileArg string
		env       map[string]string
		wantErr   bool
		wantPort  string
	}{
		{
			name:      "db file from argument",
			dbFileArg: dbFile,
			wantPort:  "3000",
		},
		{
			name:     "db file and port from environment",
			env:      map[string]string{"JSONMOCK_DB_FILE": dbFile, "PORT": "8081"},
			wantPort: "8081",
		},
		{
			name:      "missing db file",
			dbFileArg: filepath.Join(t.TempDir(), "missing.json"),
			wantErr:   true,
		},
		{
			name:      "unsupported store driver",
			dbFileArg: dbFile,
			env:       map[string]string{"JSONMOCK_STORE_DRIVER": "store-unknown"},
			wantErr:   true,
		},
		{
			name:      "invalid port",
			dbFileArg: dbFile,
			env:       map[string]string{"PORT": "-1"},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, env := range []string{"PORT", "JSONMOCK_DB_FILE", "JSONMOCK_STORE_DRIVER"} {
				t.Setenv(env, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			srv, err := InitialiseServer(tt.dbFileArg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPort, srv.Config.ServerPort)
			assert.Equal(t, []string{"sessions"}, srv.Router.Collections())
			assert.Equal(t, 3*time.Second, srv.Config.Interceptor.Delay)
		})
	}
}

func TestNewServer_ServesThroughChain(t *testing.T) {
	cfg := &config.ServerConfig{
		ServerPort: "0",
		DBFile:     writeDB(t, `{"sessions":[{"id":1,"technology":"WebRTC"}]}`),
		Store:      config.StoreConfig{Driver: config.StoreDriverInMemory},
		Interceptor: config.InterceptorConfig{
			Delay:              10 * time.Millisecond,
			RejectedTechnology: config.RejectedTechnology,
		},
	}
	srv, err := NewServer(cfg)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/sessions", strings.NewReader(`{"technology":"AnyOther"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, `{"error":"Invalid screen sharing technology error!"}`, rec.Body.String())
}

func TestModeFromEnv(t *testing.T) {
	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "")
	assert.Equal(t, ModeHTTPServer, modeFromEnv())

	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "jsonmock")
	assert.Equal(t, ModeLambda, modeFromEnv())
	assert.Equal(t, "lambda", ModeLambda.String())
}
