package store

import (
	"context"
	"fmt"

	"github.com/VitoPython/EduLand-sub000/internal/api"
	"github.com/VitoPython/EduLand-sub000/internal/model"
)

type AttendanceAPI interface {
	ListAttendance(ctx context.Context, lessonID string) ([]model.AttendanceRecord, error)
	RecordAttendance(ctx context.Context, in api.AttendanceInput) (*model.AttendanceRecord, error)
	UpdateAttendance(ctx context.Context, id string, in api.AttendanceInput) (*model.AttendanceRecord, error)
}

type AttendanceStore struct {
	api AttendanceAPI

	lessonID string
	state    collection[model.AttendanceRecord]
}

func NewAttendanceStore(apiClient AttendanceAPI) *AttendanceStore {
	return &AttendanceStore{api: apiClient}
}

func (s *AttendanceStore) Load(ctx context.Context, lessonID string) error {
	if s.lessonID == lessonID && s.state.isLoaded() {
		return nil
	}
	s.lessonID = lessonID
	return s.Refresh(ctx)
}

func (s *AttendanceStore) Refresh(ctx context.Context) error {
	records, err := s.api.ListAttendance(ctx, s.lessonID)
	if err != nil {
		s.state.fail(err)
		return err
	}
	s.state.set(records)
	return nil
}

func (s *AttendanceStore) Records() []model.AttendanceRecord {
	return s.state.snapshot()
}

func (s *AttendanceStore) Err() error {
	return s.state.err()
}

func (s *AttendanceStore) Mark(ctx context.Context, in api.AttendanceInput) (*model.AttendanceRecord, error) {
	if !in.Status.IsValid() {
		err := fmt.Errorf("invalid attendance status %q", in.Status)
		s.state.fail(err)
		return nil, err
	}
	record, err := s.api.RecordAttendance(ctx, in)
	if err != nil {
		s.state.fail(err)
		return nil, err
	}
	s.state.replace(*record, func(r model.AttendanceRecord) bool {
		return r.StudentID == record.StudentID && r.LessonID == record.LessonID && r.Date.Equal(record.Date)
	})
	return record, nil
}

func (s *AttendanceStore) Correct(ctx context.Context, id string, in api.AttendanceInput) (*model.AttendanceRecord, error) {
	if !in.Status.IsValid() {
		err := fmt.Errorf("invalid attendance status %q", in.Status)
		s.state.fail(err)
		return nil, err
	}
	record, err := s.api.UpdateAttendance(ctx, id, in)
	if err != nil {
		s.state.fail(err)
		return nil, err
	}
	s.state.replace(*record, func(r model.AttendanceRecord) bool { return r.ID == id })
	return record, nil
}
