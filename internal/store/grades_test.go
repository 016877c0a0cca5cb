package store_test

import (
	"context"
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

func TestGradeAssignRejectsOutOfRangeBeforeRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	// No expectations: an out-of-range value must never produce a request.
	mockAPI := mocks.NewMockGradeAPI(ctrl)
	s := store.NewGradeStore(mockAPI)

	for _, value := range []float64{-1, 10.5, 42} {
		_, err := s.Assign(context.Background(), api.GradeInput{
			StudentID:    "student-1",
			AssignmentID: "a-1",
			Value:        value,
		})
		require.Error(t, err, "value %v", value)
		assert.Contains(t, err.Error(), "out of range")
	}
	assert.Error(t, s.Err())
}

func TestGradeAssignReplacesExistingCell(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAPI := mocks.NewMockGradeAPI(ctrl)

	existing := model.Grade{
		ID: "g-1", StudentID: "student-1", AssignmentID: "a-1", Value: 6,
	}
	regraded := model.Grade{
		ID: "g-2", StudentID: "student-1", AssignmentID: "a-1", Value: 9,
		GradedAt: time.Now().UTC(),
	}

	filter := api.GradeFilter{AssignmentID: "a-1"}
	mockAPI.EXPECT().
		ListGrades(gomock.Any(), filter).
		Return([]model.Grade{existing}, nil)
	mockAPI.EXPECT().
		CreateGrade(gomock.Any(), api.GradeInput{StudentID: "student-1", AssignmentID: "a-1", Value: 9}).
		Return(&regraded, nil)

	s := store.NewGradeStore(mockAPI)
	require.NoError(t, s.Load(context.Background(), filter))

	_, err := s.Assign(context.Background(), api.GradeInput{
		StudentID: "student-1", AssignmentID: "a-1", Value: 9,
	})
	require.NoError(t, err)

	grades := s.Grades()
	require.Len(t, grades, 1, "regrading replaces the cell instead of duplicating it")
	assert.Equal(t, float64(9), grades[0].Value)
	assert.Equal(t, "g-2", grades[0].ID)
}

func TestGradeBoundaryValuesAccepted(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAPI := mocks.NewMockGradeAPI(ctrl)
	s := store.NewGradeStore(mockAPI)

	for _, value := range []float64{0, 10} {
		graded := model.Grade{ID: "g", StudentID: "student-1", AssignmentID: "a-1", Value: value}
		mockAPI.EXPECT().
			CreateGrade(gomock.Any(), gomock.Any()).
			Return(&graded, nil)

		grade, err := s.Assign(context.Background(), api.GradeInput{
			StudentID: "student-1", AssignmentID: "a-1", Value: value,
		})
		require.NoError(t, err, "value %v", value)
		assert.Equal(t, value, grade.Value)
	}
}

func TestGradeUpdateValidatesRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAPI := mocks.NewMockGradeAPI(ctrl)
	s := store.NewGradeStore(mockAPI)

	_, err := s.Update(context.Background(), "g-1", api.GradeInput{Value: 11})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestGradeDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAPI := mocks.NewMockGradeAPI(ctrl)

	existing := model.Grade{ID: "g-1", StudentID: "student-1", AssignmentID: "a-1", Value: 7}
	filter := api.GradeFilter{StudentID: "student-1"}
	mockAPI.EXPECT().
		ListGrades(gomock.Any(), filter).
		Return([]model.Grade{existing}, nil)
	mockAPI.EXPECT().
		DeleteGrade(gomock.Any(), "g-1").
		Return(nil)

	s := store.NewGradeStore(mockAPI)
	require.NoError(t, s.Load(context.Background(), filter))
	require.NoError(t, s.Delete(context.Background(), "g-1"))
	assert.Empty(t, s.Grades())
}
