package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tims-dev/tims-admin-bff/internal/backend"
	"github.com/tims-dev/tims-admin-bff/internal/models"
	"github.com/tims-dev/tims-admin-bff/pkg/config"
	appErrors "github.com/tims-dev/tims-admin-bff/pkg/errors"
)

// memoryCache is an in-process stand-in for the Redis option cache.
type memoryCache struct {
	mu    sync.Mutex
	store map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{store: map[string][]byte{}}
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.store[key] = raw
	c.mu.Unlock()
	return nil
}

func newOptionsService(t *testing.T, hits *int, cacheOn bool) (*OptionsService, func()) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/Course/GetCourses", func(w http.ResponseWriter, r *http.Request) {
		*hits++
		json.NewEncoder(w).Encode([]models.Course{{ID: 1, Name: "Web Design"}}) //nolint:errcheck
	})
	mux.HandleFunc("/Schedule/GetSchedules", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.Schedule{{ID: 11, Day: "Sunday", SlotID: 2}}) //nolint:errcheck
	})
	mux.HandleFunc("/Slot/GetSlots", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.Slot{{ID: 2, Name: "Morning", StartTime: "09:00", EndTime: "11:00"}}) //nolint:errcheck
	})
	server := httptest.NewServer(mux)

	client := backend.NewClient(config.BackendConfig{BaseURL: server.URL, Timeout: 5 * time.Second}, nil, nil)
	api := backend.NewAPI(client)
	var cache OptionCache
	if cacheOn {
		cache = newMemoryCache()
	}
	return NewOptionsService(api, cache, nil, time.Minute, nil, cacheOn), server.Close
}

func TestOptionsServiceCachesCourses(t *testing.T) {
	hits := 0
	options, cleanup := newOptionsService(t, &hits, true)
	defer cleanup()

	first, err := options.Courses(context.Background())
	require.NoError(t, err)
	second, err := options.Courses(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, hits)
}

func TestOptionsServiceCacheDisabledFetchesEveryTime(t *testing.T) {
	hits := 0
	options, cleanup := newOptionsService(t, &hits, false)
	defer cleanup()

	_, err := options.Courses(context.Background())
	require.NoError(t, err)
	_, err = options.Courses(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, hits)
}

func TestOptionsServiceSchedulesJoinSlots(t *testing.T) {
	hits := 0
	options, cleanup := newOptionsService(t, &hits, false)
	defer cleanup()

	schedules, err := options.Schedules(context.Background())

	require.NoError(t, err)
	require.Len(t, schedules, 1)
	require.NotNil(t, schedules[0].Slot)
	assert.Equal(t, "Morning", schedules[0].Slot.Name)
}
