package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/tims-dev/tims-admin-bff/internal/backend"
	"github.com/tims-dev/tims-admin-bff/internal/models"
	appErrors "github.com/tims-dev/tims-admin-bff/pkg/errors"
)

// OptionCache abstracts the Redis-backed cache of option sets.
type OptionCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// OptionsService serves the read-only option sets the form dropdowns bind
// to. Each set is fetched once per form session from the backend and kept in
// a short-lived cache so four concurrent form loads don't fan out into four
// identical backend sweeps.
type OptionsService struct {
	api     *backend.API
	cache   OptionCache
	metrics *MetricsService
	ttl     time.Duration
	logger  *zap.Logger
	enabled bool
}

// NewOptionsService constructs the options service.
func NewOptionsService(api *backend.API, cache OptionCache, metrics *MetricsService, ttl time.Duration, logger *zap.Logger, enabled bool) *OptionsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &OptionsService{api: api, cache: cache, metrics: metrics, ttl: ttl, logger: logger, enabled: enabled}
}

// Courses returns the course option set.
func (s *OptionsService) Courses(ctx context.Context) ([]models.Course, error) {
	return cachedOptions(ctx, s, "options:courses", s.api.Courses.GetAll)
}

// Instructors returns the instructor option set.
func (s *OptionsService) Instructors(ctx context.Context) ([]models.Instructor, error) {
	return cachedOptions(ctx, s, "options:instructors", s.api.Instructors.GetAll)
}

// Classrooms returns the classroom option set.
func (s *OptionsService) Classrooms(ctx context.Context) ([]models.Classroom, error) {
	return cachedOptions(ctx, s, "options:classrooms", s.api.Classrooms.GetAll)
}

// Slots returns the time-slot option set.
func (s *OptionsService) Slots(ctx context.Context) ([]models.Slot, error) {
	return cachedOptions(ctx, s, "options:slots", s.api.Slots.GetAll)
}

// Schedules returns the recurring-schedule option set with slots joined in
// for display.
func (s *OptionsService) Schedules(ctx context.Context) ([]models.Schedule, error) {
	schedules, err := cachedOptions(ctx, s, "options:schedules", s.api.Schedules.GetAll)
	if err != nil {
		return nil, err
	}
	slots, err := s.Slots(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]models.Slot, len(slots))
	for _, slot := range slots {
		byID[slot.ID] = slot
	}
	for i := range schedules {
		if schedules[i].Slot == nil {
			if slot, ok := byID[schedules[i].SlotID]; ok {
				joined := slot
				schedules[i].Slot = &joined
			}
		}
	}
	return schedules, nil
}

// Departments returns the department option set.
func (s *OptionsService) Departments(ctx context.Context) ([]models.Department, error) {
	return cachedOptions(ctx, s, "options:departments", s.api.Departments.GetAll)
}

// Designations returns the designation option set.
func (s *OptionsService) Designations(ctx context.Context) ([]models.Designation, error) {
	return cachedOptions(ctx, s, "options:designations", s.api.Designations.GetAll)
}

func cachedOptions[T any](ctx context.Context, s *OptionsService, key string, fetch func(context.Context) ([]T, error)) ([]T, error) {
	if s.enabled && s.cache != nil {
		var cached []T
		start := time.Now()
		err := s.cache.Get(ctx, key, &cached)
		duration := time.Since(start)
		if err == nil {
			if s.metrics != nil {
				s.metrics.RecordCacheOperation(true, duration)
			}
			return cached, nil
		}
		if s.metrics != nil {
			s.metrics.RecordCacheOperation(false, duration)
		}
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("option cache get failed", zap.String("key", key), zap.Error(err))
		}
	}

	items, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}

	if s.enabled && s.cache != nil {
		if err := s.cache.Set(ctx, key, items, s.ttl); err != nil {
			s.logger.Warn("option cache set failed", zap.String("key", key), zap.Error(err))
		}
	}
	return items, nil
}
