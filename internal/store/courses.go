package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/VitoPython/EduLand-sub000/internal/api"
	"github.com/VitoPython/EduLand-sub000/internal/cache"
	"github.com/VitoPython/EduLand-sub000/internal/model"
)

const coursesCacheKey = "eduland:courses"

type CourseAPI interface {
	ListCourses(ctx context.Context) ([]model.Course, error)
	GetCourse(ctx context.Context, id string) (*model.Course, error)
	CreateCourse(ctx context.Context, in api.CourseInput) (*model.Course, error)
	UpdateCourse(ctx context.Context, id string, in api.CourseInput) (*model.Course, error)
	DeleteCourse(ctx context.Context, id string) error
}

// CourseStore mirrors the course list. The list is persisted through the
// cache for warm reload; the cached copy only bridges the gap until the first
// successful fetch.
type CourseStore struct {
	api      CourseAPI
	cache    cache.Cache
	cacheTTL time.Duration

	state collection[model.Course]
}

func NewCourseStore(apiClient CourseAPI, c cache.Cache, ttl time.Duration) *CourseStore {
	if c == nil {
		c = cache.Noop{}
	}
	return &CourseStore{api: apiClient, cache: c, cacheTTL: ttl}
}

// Load serves the warm cache when present and otherwise refreshes from the
// API. Callers wanting guaranteed-fresh data use Refresh.
func (s *CourseStore) Load(ctx context.Context) error {
	if s.state.isLoaded() {
		return nil
	}
	if data, ok := s.cache.Get(ctx, coursesCacheKey); ok {
		var courses []model.Course
		if err := json.Unmarshal(data, &courses); err == nil {
			s.state.set(courses)
			return nil
		}
		s.cache.Delete(ctx, coursesCacheKey)
	}
	return s.Refresh(ctx)
}

func (s *CourseStore) Refresh(ctx context.Context) error {
	courses, err := s.api.ListCourses(ctx)
	if err != nil {
		s.state.fail(err)
		return err
	}
	s.state.set(courses)
	if data, err := json.Marshal(courses); err == nil {
		s.cache.Set(ctx, coursesCacheKey, data, s.cacheTTL)
	}
	return nil
}

func (s *CourseStore) Courses() []model.Course {
	return s.state.snapshot()
}

func (s *CourseStore) Get(id string) (model.Course, bool) {
	return s.state.find(func(c model.Course) bool { return c.ID == id })
}

func (s *CourseStore) Err() error {
	return s.state.err()
}

func (s *CourseStore) Create(ctx context.Context, in api.CourseInput) (*model.Course, error) {
	course, err := s.api.CreateCourse(ctx, in)
	if err != nil {
		s.state.fail(err)
		return nil, err
	}
	s.state.append(*course)
	s.invalidate(ctx)
	return course, nil
}

func (s *CourseStore) Update(ctx context.Context, id string, in api.CourseInput) (*model.Course, error) {
	course, err := s.api.UpdateCourse(ctx, id, in)
	if err != nil {
		s.state.fail(err)
		return nil, err
	}
	s.state.replace(*course, func(c model.Course) bool { return c.ID == id })
	s.invalidate(ctx)
	return course, nil
}

func (s *CourseStore) Delete(ctx context.Context, id string) error {
	if err := s.api.DeleteCourse(ctx, id); err != nil {
		s.state.fail(err)
		return err
	}
	s.state.remove(func(c model.Course) bool { return c.ID == id })
	s.invalidate(ctx)
	return nil
}

func (s *CourseStore) invalidate(ctx context.Context) {
	if data, err := json.Marshal(s.state.snapshot()); err == nil {
		s.cache.Set(ctx, coursesCacheKey, data, s.cacheTTL)
	}
}
