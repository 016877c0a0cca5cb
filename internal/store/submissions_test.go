package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/VitoPython/EduLand-sub000/internal/api"
	"github.com/VitoPython/EduLand-sub000/internal/model"
	"github.com/VitoPython/EduLand-sub000/internal/store"
	"github.com/VitoPython/EduLand-sub000/internal/store/mocks"
)

func TestSubmissionRefreshRepairsMissingTimestamps(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAPI := mocks.NewMockSubmissionAPI(ctrl)

	submittedAt := time.Date(2026, 5, 12, 10, 0, 0, 0, time.UTC)
	healthy := model.SubmissionRecord{
		ID: "sub-1", StudentID: "student-1", LessonID: "lesson-1",
		AssignmentID: "a-1", Submitted: true, SubmittedAt: &submittedAt,
	}
	broken := model.SubmissionRecord{
		ID: "sub-2", StudentID: "student-2", LessonID: "lesson-1",
		AssignmentID: "a-1", Submitted: true,
	}
	repairedAt := time.Now().UTC()
	repaired := broken
	repaired.SubmittedAt = &repairedAt

	mockAPI.EXPECT().
		ListSubmissions(gomock.Any(), "lesson-1").
		Return([]model.SubmissionRecord{healthy, broken}, nil)
	mockAPI.EXPECT().
		PatchSubmission(gomock.Any(), "sub-2", gomock.Cond(func(x any) bool {
			p, ok := x.(api.SubmissionPatch)
			return ok && p.SubmittedAt != nil && p.Submitted == nil
		})).
		Return(&repaired, nil)

	s := store.NewSubmissionStore(mockAPI)
	require.NoError(t, s.Load(context.Background(), "lesson-1"))

	records := s.Submissions()
	require.Len(t, records, 2)
	assert.Equal(t, healthy, records[0])
	require.NotNil(t, records[1].SubmittedAt)
	assert.Equal(t, repairedAt, *records[1].SubmittedAt)
}

func TestSubmissionRefreshToleratesRepairFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAPI := mocks.NewMockSubmissionAPI(ctrl)

	broken := model.SubmissionRecord{
		ID: "sub-1", StudentID: "student-1", LessonID: "lesson-1",
		AssignmentID: "a-1", Submitted: true,
	}

	mockAPI.EXPECT().
		ListSubmissions(gomock.Any(), "lesson-1").
		Return([]model.SubmissionRecord{broken}, nil)
	mockAPI.EXPECT().
		PatchSubmission(gomock.Any(), "sub-1", gomock.Any()).
		Return(nil, errors.New("patch refused"))

	s := store.NewSubmissionStore(mockAPI)
	require.NoError(t, s.Load(context.Background(), "lesson-1"),
		"a failed repair must not fail the load")

	records := s.Submissions()
	require.Len(t, records, 1)
	assert.Nil(t, records[0].SubmittedAt, "the record stays as fetched until repair succeeds")
}

func TestSubmissionLoadIsIdempotentPerLesson(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAPI := mocks.NewMockSubmissionAPI(ctrl)

	mockAPI.EXPECT().
		ListSubmissions(gomock.Any(), "lesson-1").
		Return([]model.SubmissionRecord{}, nil).
		Times(1)
	mockAPI.EXPECT().
		ListSubmissions(gomock.Any(), "lesson-2").
		Return([]model.SubmissionRecord{}, nil).
		Times(1)

	s := store.NewSubmissionStore(mockAPI)
	require.NoError(t, s.Load(context.Background(), "lesson-1"))
	require.NoError(t, s.Load(context.Background(), "lesson-1"))
	require.NoError(t, s.Load(context.Background(), "lesson-2"))
}

func TestSubmissionCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAPI := mocks.NewMockSubmissionAPI(ctrl)

	submittedAt := time.Now().UTC()
	rec := model.SubmissionRecord{
		ID: "sub-1", StudentID: "student-1", LessonID: "lesson-1",
		AssignmentID: "a-1", Submitted: true, SubmittedAt: &submittedAt,
	}
	cancelled := rec
	cancelled.Submitted = false

	mockAPI.EXPECT().
		ListSubmissions(gomock.Any(), "lesson-1").
		Return([]model.SubmissionRecord{rec}, nil)
	mockAPI.EXPECT().
		CancelSubmission(gomock.Any(), "sub-1").
		Return(&cancelled, nil)

	s := store.NewSubmissionStore(mockAPI)
	require.NoError(t, s.Load(context.Background(), "lesson-1"))

	got, err := s.Cancel(context.Background(), "sub-1")
	require.NoError(t, err)
	assert.False(t, got.Submitted)

	records := s.Submissions()
	require.Len(t, records, 1)
	assert.False(t, records[0].Submitted)
}

func TestSubmissionRefreshKeepsLastError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAPI := mocks.NewMockSubmissionAPI(ctrl)

	listErr := errors.New("backend down")
	mockAPI.EXPECT().
		ListSubmissions(gomock.Any(), "lesson-1").
		Return(nil, listErr)

	s := store.NewSubmissionStore(mockAPI)
	require.ErrorIs(t, s.Load(context.Background(), "lesson-1"), listErr)
	assert.ErrorIs(t, s.Err(), listErr)
}
