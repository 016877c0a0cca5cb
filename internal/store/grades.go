package store

import (
	"context"

	"github.com/VitoPython/EduLand-sub000/internal/api"
	"github.com/VitoPython/EduLand-sub000/internal/model"
)

type GradeAPI interface {
	ListGrades(ctx context.Context, filter api.GradeFilter) ([]model.Grade, error)
	CreateGrade(ctx context.Context, in api.GradeInput) (*model.Grade, error)
	UpdateGrade(ctx context.Context, id string, in api.GradeInput) (*model.Grade, error)
	DeleteGrade(ctx context.Context, id string) error
}

type GradeStore struct {
	api GradeAPI

	filter api.GradeFilter
	state  collection[model.Grade]
}

func NewGradeStore(apiClient GradeAPI) *GradeStore {
	return &GradeStore{api: apiClient}
}

func (s *GradeStore) Load(ctx context.Context, filter api.GradeFilter) error {
	if s.filter == filter && s.state.isLoaded() {
		return nil
	}
	s.filter = filter
	return s.Refresh(ctx)
}

func (s *GradeStore) Refresh(ctx context.Context) error {
	grades, err := s.api.ListGrades(ctx, s.filter)
	if err != nil {
		s.state.fail(err)
		return err
	}
	s.state.set(grades)
	return nil
}

func (s *GradeStore) Grades() []model.Grade {
	return s.state.snapshot()
}

func (s *GradeStore) Err() error {
	return s.state.err()
}

// Assign validates the 0-10 range before any request leaves the client.
func (s *GradeStore) Assign(ctx context.Context, in api.GradeInput) (*model.Grade, error) {
	if err := (&model.Grade{Value: in.Value}).ValidateValue(); err != nil {
		s.state.fail(err)
		return nil, err
	}
	grade, err := s.api.CreateGrade(ctx, in)
	if err != nil {
		s.state.fail(err)
		return nil, err
	}
	s.state.replace(*grade, func(g model.Grade) bool {
		return g.StudentID == grade.StudentID && g.AssignmentID == grade.AssignmentID
	})
	return grade, nil
}

func (s *GradeStore) Update(ctx context.Context, id string, in api.GradeInput) (*model.Grade, error) {
	if err := (&model.Grade{Value: in.Value}).ValidateValue(); err != nil {
		s.state.fail(err)
		return nil, err
	}
	grade, err := s.api.UpdateGrade(ctx, id, in)
	if err != nil {
		s.state.fail(err)
		return nil, err
	}
	s.state.replace(*grade, func(g model.Grade) bool { return g.ID == id })
	return grade, nil
}

func (s *GradeStore) Delete(ctx context.Context, id string) error {
	if err := s.api.DeleteGrade(ctx, id); err != nil {
		s.state.fail(err)
		return err
	}
	s.state.remove(func(g model.Grade) bool { return g.ID == id })
	return nil
}
