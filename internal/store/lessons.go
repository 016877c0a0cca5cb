package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/VitoPython/EduLand-sub000/internal/api"
	"github.com/VitoPython/EduLand-sub000/internal/cache"
	"github.com/VitoPython/EduLand-sub000/internal/model"
)

type LessonAPI interface {
	ListLessons(ctx context.Context, courseID string) ([]model.Lesson, error)
	GetLesson(ctx context.Context, id string) (*model.Lesson, error)
	CreateLesson(ctx context.Context, in api.LessonInput) (*model.Lesson, error)
	UpdateLesson(ctx context.Context, id string, in api.LessonInput) (*model.Lesson, error)
	DeleteLesson(ctx context.Context, id string) error
}

// LessonStore mirrors the lessons of one course at a time, warm-cached per
// course.
type LessonStore struct {
	api      LessonAPI
	cache    cache.Cache
	cacheTTL time.Duration

	courseID string
	state    collection[model.Lesson]
}

func NewLessonStore(apiClient LessonAPI, c cache.Cache, ttl time.Duration) *LessonStore {
	if c == nil {
		c = cache.Noop{}
	}
	return &LessonStore{api: apiClient, cache: c, cacheTTL: ttl}
}

func lessonsCacheKey(courseID string) string {
	return "eduland:lessons:" + courseID
}

func (s *LessonStore) Load(ctx context.Context, courseID string) error {
	if s.courseID == courseID && s.state.isLoaded() {
		return nil
	}
	s.courseID = courseID
	if data, ok := s.cache.Get(ctx, lessonsCacheKey(courseID)); ok {
		var lessons []model.Lesson
		if err := json.Unmarshal(data, &lessons); err == nil {
			s.state.set(lessons)
			return nil
		}
		s.cache.Delete(ctx, lessonsCacheKey(courseID))
	}
	return s.Refresh(ctx)
}

func (s *LessonStore) Refresh(ctx context.Context) error {
	lessons, err := s.api.ListLessons(ctx, s.courseID)
	if err != nil {
		s.state.fail(err)
		return err
	}
	s.state.set(lessons)
	s.persist(ctx)
	return nil
}

func (s *LessonStore) Lessons() []model.Lesson {
	return s.state.snapshot()
}

func (s *LessonStore) Get(id string) (model.Lesson, bool) {
	return s.state.find(func(l model.Lesson) bool { return l.ID == id })
}

func (s *LessonStore) Err() error {
	return s.state.err()
}

func (s *LessonStore) Create(ctx context.Context, in api.LessonInput) (*model.Lesson, error) {
	lesson, err := s.api.CreateLesson(ctx, in)
	if err != nil {
		s.state.fail(err)
		return nil, err
	}
	if lesson.CourseID == s.courseID {
		s.state.append(*lesson)
		s.persist(ctx)
	}
	return lesson, nil
}

func (s *LessonStore) Update(ctx context.Context, id string, in api.LessonInput) (*model.Lesson, error) {
	lesson, err := s.api.UpdateLesson(ctx, id, in)
	if err != nil {
		s.state.fail(err)
		return nil, err
	}
	s.state.replace(*lesson, func(l model.Lesson) bool { return l.ID == id })
	s.persist(ctx)
	return lesson, nil
}

func (s *LessonStore) Delete(ctx context.Context, id string) error {
	if err := s.api.DeleteLesson(ctx, id); err != nil {
		s.state.fail(err)
		return err
	}
	s.state.remove(func(l model.Lesson) bool { return l.ID == id })
	s.persist(ctx)
	return nil
}

func (s *LessonStore) persist(ctx context.Context) {
	if s.courseID == "" {
		return
	}
	if data, err := json.Marshal(s.state.snapshot()); err == nil {
		s.cache.Set(ctx, lessonsCacheKey(s.courseID), data, s.cacheTTL)
	}
}
