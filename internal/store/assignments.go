package store

import (
	"context"

	"github.com/VitoPython/EduLand-sub000/internal/api"
	"github.com/VitoPython/EduLand-sub000/internal/model"
)

type AssignmentAPI interface {
	ListAssignments(ctx context.Context, lessonID string) ([]model.Assignment, error)
	GetAssignment(ctx context.Context, id string) (*model.Assignment, error)
	CreateAssignment(ctx context.Context, in api.AssignmentInput) (*model.Assignment, error)
	UpdateAssignment(ctx context.Context, id string, in api.AssignmentInput) (*model.Assignment, error)
	DeleteAssignment(ctx context.Context, id string) error
	AttachFile(ctx context.Context, assignmentID string, att model.Attachment) (*model.Assignment, error)
}

// AssignmentStore mirrors the assignments of one lesson at a time.
type AssignmentStore struct {
	api AssignmentAPI

	lessonID string
	state    collection[model.Assignment]
}

func NewAssignmentStore(apiClient AssignmentAPI) *AssignmentStore {
	return &AssignmentStore{api: apiClient}
}

func (s *AssignmentStore) Load(ctx context.Context, lessonID string) error {
	if s.lessonID == lessonID && s.state.isLoaded() {
		return nil
	}
	s.lessonID = lessonID
	return s.Refresh(ctx)
}

func (s *AssignmentStore) Refresh(ctx context.Context) error {
	assignments, err := s.api.ListAssignments(ctx, s.lessonID)
	if err != nil {
		s.state.fail(err)
		return err
	}
	s.state.set(assignments)
	return nil
}

func (s *AssignmentStore) Assignments() []model.Assignment {
	return s.state.snapshot()
}

func (s *AssignmentStore) Get(id string) (model.Assignment, bool) {
	return s.state.find(func(a model.Assignment) bool { return a.ID == id })
}

func (s *AssignmentStore) Err() error {
	return s.state.err()
}

func (s *AssignmentStore) Create(ctx context.Context, in api.AssignmentInput) (*model.Assignment, error) {
	assignment, err := s.api.CreateAssignment(ctx, in)
	if err != nil {
		s.state.fail(err)
		return nil, err
	}
	if assignment.LessonID == s.lessonID {
		s.state.append(*assignment)
	}
	return assignment, nil
}

func (s *AssignmentStore) Update(ctx context.Context, id string, in api.AssignmentInput) (*model.Assignment, error) {
	assignment, err := s.api.UpdateAssignment(ctx, id, in)
	if err != nil {
		s.state.fail(err)
		return nil, err
	}
	s.state.replace(*assignment, func(a model.Assignment) bool { return a.ID == id })
	return assignment, nil
}

func (s *AssignmentStore) Delete(ctx context.Context, id string) error {
	if err := s.api.DeleteAssignment(ctx, id); err != nil {
		s.state.fail(err)
		return err
	}
	s.state.remove(func(a model.Assignment) bool { return a.ID == id })
	return nil
}

func (s *AssignmentStore) Attach(ctx context.Context, assignmentID string, att model.Attachment) (*model.Assignment, error) {
	assignment, err := s.api.AttachFile(ctx, assignmentID, att)
	if err != nil {
		s.state.fail(err)
		return nil, err
	}
	s.state.replace(*assignment, func(a model.Assignment) bool { return a.ID == assignmentID })
	return assignment, nil
}
