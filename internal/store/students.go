package store

import (
	"context"

	"github.com/VitoPython/EduLand-sub000/internal/api"
	"github.com/VitoPython/EduLand-sub000/internal/model"
)

type StudentAPI interface {
	ListStudents(ctx context.Context, groupID string) ([]model.Student, error)
	GetStudent(ctx context.Context, id string) (*model.Student, error)
	CreateStudent(ctx context.Context, in api.StudentInput) (*model.Student, error)
	UpdateStudent(ctx context.Context, id string, in api.StudentInput) (*model.Student, error)
	DeleteStudent(ctx context.Context, id string) error
}

type StudentStore struct {
	api StudentAPI

	groupID string
	state   collection[model.Student]
}

func NewStudentStore(apiClient StudentAPI) *StudentStore {
	return &StudentStore{api: apiClient}
}

// Load fetches either one group's roster or, with an empty groupID, every
// student.
func (s *StudentStore) Load(ctx context.Context, groupID string) error {
	if s.groupID == groupID && s.state.isLoaded() {
		return nil
	}
	s.groupID = groupID
	return s.Refresh(ctx)
}

func (s *StudentStore) Refresh(ctx context.Context) error {
	students, err := s.api.ListStudents(ctx, s.groupID)
	if err != nil {
		s.state.fail(err)
		return err
	}
	s.state.set(students)
	return nil
}

func (s *StudentStore) Students() []model.Student {
	return s.state.snapshot()
}

func (s *StudentStore) Get(id string) (model.Student, bool) {
	return s.state.find(func(st model.Student) bool { return st.ID == id })
}

func (s *StudentStore) Err() error {
	return s.state.err()
}

func (s *StudentStore) Create(ctx context.Context, in api.StudentInput) (*model.Student, error) {
	student, err := s.api.CreateStudent(ctx, in)
	if err != nil {
		s.state.fail(err)
		return nil, err
	}
	s.state.append(*student)
	return student, nil
}

func (s *StudentStore) Update(ctx context.Context, id string, in api.StudentInput) (*model.Student, error) {
	student, err := s.api.UpdateStudent(ctx, id, in)
	if err != nil {
		s.state.fail(err)
		return nil, err
	}
	s.state.replace(*student, func(st model.Student) bool { return st.ID == id })
	return student, nil
}

func (s *StudentStore) Delete(ctx context.Context, id string) error {
	if err := s.api.DeleteStudent(ctx, id); err != nil {
		s.state.fail(err)
		return err
	}
	s.state.remove(func(st model.Student) bool { return st.ID == id })
	return nil
}
