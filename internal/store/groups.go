package store

import (
	"context"

	"github.com/VitoPython/EduLand-sub000/internal/api"
	"github.com/VitoPython/EduLand-sub000/internal/model"
)

type GroupAPI interface {
	ListGroups(ctx context.Context) ([]model.Group, error)
	CreateGroup(ctx context.Context, in api.GroupInput) (*model.Group, error)
	UpdateGroup(ctx context.Context, id string, in api.GroupInput) (*model.Group, error)
	DeleteGroup(ctx context.Context, id string) error
}

type GroupStore struct {
	api   GroupAPI
	state collection[model.Group]
}

func NewGroupStore(apiClient GroupAPI) *GroupStore {
	return &GroupStore{api: apiClient}
}

func (s *GroupStore) Load(ctx context.Context) error {
	if s.state.isLoaded() {
		return nil
	}
	return s.Refresh(ctx)
}

func (s *GroupStore) Refresh(ctx context.Context) error {
	groups, err := s.api.ListGroups(ctx)
	if err != nil {
		s.state.fail(err)
		return err
	}
	s.state.set(groups)
	return nil
}

func (s *GroupStore) Groups() []model.Group {
	return s.state.snapshot()
}

func (s *GroupStore) Err() error {
	return s.state.err()
}

func (s *GroupStore) Create(ctx context.Context, in api.GroupInput) (*model.Group, error) {
	group, err := s.api.CreateGroup(ctx, in)
	if err != nil {
		s.state.fail(err)
		return nil, err
	}
	s.state.append(*group)
	return group, nil
}

func (s *GroupStore) Update(ctx context.Context, id string, in api.GroupInput) (*model.Group, error) {
	group, err := s.api.UpdateGroup(ctx, id, in)
	if err != nil {
		s.state.fail(err)
		return nil, err
	}
	s.state.replace(*group, func(g model.Group) bool { return g.ID == id })
	return group, nil
}

func (s *GroupStore) Delete(ctx context.Context, id string) error {
	if err := s.api.DeleteGroup(ctx, id); err != nil {
		s.state.fail(err)
		return err
	}
	s.state.remove(func(g model.Group) bool { return g.ID == id })
	return nil
}

type EnrollmentAPI interface {
	ListEnrollments(ctx context.Context, courseID string) ([]model.Enrollment, error)
	CreateEnrollment(ctx context.Context, in api.EnrollmentInput) (*model.Enrollment, error)
	DeleteEnrollment(ctx context.Context, id string) error
}

type EnrollmentStore struct {
	api EnrollmentAPI

	courseID string
	state    collection[model.Enrollment]
}

func NewEnrollmentStore(apiClient EnrollmentAPI) *EnrollmentStore {
	return &EnrollmentStore{api: apiClient}
}

func (s *EnrollmentStore) Load(ctx context.Context, courseID string) error {
	if s.courseID == courseID && s.state.isLoaded() {
		return nil
	}
	s.courseID = courseID
	return s.Refresh(ctx)
}

func (s *EnrollmentStore) Refresh(ctx context.Context) error {
	enrollments, err := s.api.ListEnrollments(ctx, s.courseID)
	if err != nil {
		s.state.fail(err)
		return err
	}
	s.state.set(enrollments)
	return nil
}

func (s *EnrollmentStore) Enrollments() []model.Enrollment {
	return s.state.snapshot()
}

func (s *EnrollmentStore) Err() error {
	return s.state.err()
}

func (s *EnrollmentStore) Enroll(ctx context.Context, in api.EnrollmentInput) (*model.Enrollment, error) {
	enrollment, err := s.api.CreateEnrollment(ctx, in)
	if err != nil {
		s.state.fail(err)
		return nil, err
	}
	if enrollment.CourseID == s.courseID {
		s.state.append(*enrollment)
	}
	return enrollment, nil
}

func (s *EnrollmentStore) Unenroll(ctx context.Context, id string) error {
	if err := s.api.DeleteEnrollment(ctx, id); err != nil {
		s.state.fail(err)
		return err
	}
	s.state.remove(func(e model.Enrollment) bool { return e.ID == id })
	return nil
}
