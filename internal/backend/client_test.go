package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tims-dev/tims-admin-bff/internal/models"
	"github.com/tims-dev/tims-admin-bff/pkg/config"
)

func newTestClient(t *testing.T, server *httptest.Server, tokenFile string) *Client {
	t.Helper()
	var tokens *TokenStore
	if tokenFile != "" {
		tokens = NewTokenStore(tokenFile)
	}
	return NewClient(config.BackendConfig{
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
	}, tokens, nil)
}

func TestFetchDecodesBareArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Department/GetDepartments", r.URL.Path)
		json.NewEncoder(w).Encode([]models.Department{{ID: 1, Name: "Admissions"}}) //nolint:errcheck
	}))
	defer server.Close()

	client := newTestClient(t, server, "")
	departments, err := Fetch[[]models.Department](context.Background(), client, "Department/GetDepartments")

	require.NoError(t, err)
	require.Len(t, departments, 1)
	assert.Equal(t, "Admissions", departments[0].Name)
}

func TestFetchUnwrapsEnvelopePayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"isSuccess":true,"message":"","data":{"id":3,"name":"Web Design"}}`)) //nolint:errcheck
	}))
	defer server.Close()

	client := newTestClient(t, server, "")
	course, err := Fetch[models.Course](context.Background(), client, "Course/GetCourse/3")

	require.NoError(t, err)
	assert.Equal(t, "Web Design", course.Name)
}

func TestFetchNon2xxReturnsStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"course not found"}`)) //nolint:errcheck
	}))
	defer server.Close()

	client := newTestClient(t, server, "")
	_, err := Fetch[models.Course](context.Background(), client, "Course/GetCourse/99")

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.Status)
	assert.Equal(t, "course not found", statusErr.Message)
}

func TestCallTransportFailureSynthesizesEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := newTestClient(t, server, "")
	result := Call[models.Department](context.Background(), client, http.MethodPost, "Department/InsertDepartment", models.Department{Name: "X"})

	assert.False(t, result.IsSuccess)
	assert.NotEmpty(t, result.Message)
}

func TestClientAttachesBearerOnWritesOnly(t *testing.T) {
	tokenFile := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(tokenFile, []byte("opaque-token\n"), 0o600))

	var readAuth, writeAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			readAuth = r.Header.Get("Authorization")
			w.Write([]byte(`[]`)) //nolint:errcheck
		default:
			writeAuth = r.Header.Get("Authorization")
			w.Write([]byte(`{"isSuccess":true,"message":"ok"}`)) //nolint:errcheck
		}
	}))
	defer server.Close()

	client := newTestClient(t, server, tokenFile)

	_, err := Fetch[[]models.Department](context.Background(), client, "Department/GetDepartments")
	require.NoError(t, err)
	result := Call[models.Department](context.Background(), client, http.MethodPost, "Department/InsertDepartment", models.Department{Name: "X"})
	require.True(t, result.IsSuccess)

	assert.Empty(t, readAuth)
	assert.Equal(t, "Bearer opaque-token", writeAuth)
}

func TestResourceRoutes(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		w.Write([]byte(`{"isSuccess":true,"message":"ok"}`)) //nolint:errcheck
	}))
	defer server.Close()

	client := newTestClient(t, server, "")
	resource := NewResource[models.Department](client, "Department", "Departments")
	ctx := context.Background()

	_, _ = resource.GetAll(ctx)
	_, _ = resource.GetByID(ctx, 4)
	_ = resource.Insert(ctx, models.Department{Name: "X"})
	_ = resource.Update(ctx, 4, models.Department{Name: "X"})
	_ = resource.Delete(ctx, 4)

	assert.Equal(t, []string{
		"GET /Department/GetDepartments",
		"GET /Department/GetDepartment/4",
		"POST /Department/InsertDepartment",
		"PUT /Department/UpdateDepartment/4",
		"DELETE /Department/DeleteDepartment/4",
	}, paths)
}

func TestTokenStoreSkipsExpiredJWT(t *testing.T) {
	// Expired token: header/payload are unsigned JSON, exp far in the past.
	expired := "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9." +
		"eyJleHAiOjE1MTYyMzkwMjJ9." +
		"sig"
	tokenFile := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(tokenFile, []byte(expired), 0o600))

	store := NewTokenStore(tokenFile)
	assert.Empty(t, store.Token())
}

func TestTokenStoreMissingFileYieldsEmpty(t *testing.T) {
	store := NewTokenStore(filepath.Join(t.TempDir(), "missing"))
	assert.Empty(t, store.Token())
}
