// Package mocks holds gomock doubles for the store API interfaces, used to
// drive error paths the in-memory test server cannot.
package mocks

import (
	"context"
	"reflect"

	"go.uber.org/mock/gomock"

	"github.com/VitoPython/EduLand-sub000/internal/api"
	"github.com/VitoPython/EduLand-sub000/internal/model"
)

type MockSubmissionAPI struct {
	ctrl     *gomock.Controller
	recorder *MockSubmissionAPIMockRecorder
}

type MockSubmissionAPIMockRecorder struct {
	mock *MockSubmissionAPI
}

func NewMockSubmissionAPI(ctrl *gomock.Controller) *MockSubmissionAPI {
	mock := &MockSubmissionAPI{ctrl: ctrl}
	mock.recorder = &MockSubmissionAPIMockRecorder{mock}
	return mock
}

func (m *MockSubmissionAPI) EXPECT() *MockSubmissionAPIMockRecorder {
	return m.recorder
}

func (m *MockSubmissionAPI) ListSubmissions(ctx context.Context, lessonID string) ([]model.SubmissionRecord, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListSubmissions", ctx, lessonID)
	ret0, _ := ret[0].([]model.SubmissionRecord)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockSubmissionAPIMockRecorder) ListSubmissions(ctx, lessonID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListSubmissions", reflect.TypeOf((*MockSubmissionAPI)(nil).ListSubmissions), ctx, lessonID)
}

func (m *MockSubmissionAPI) PatchSubmission(ctx context.Context, id string, patch api.SubmissionPatch) (*model.SubmissionRecord, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PatchSubmission", ctx, id, patch)
	ret0, _ := ret[0].(*model.SubmissionRecord)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockSubmissionAPIMockRecorder) PatchSubmission(ctx, id, patch any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PatchSubmission", reflect.TypeOf((*MockSubmissionAPI)(nil).PatchSubmission), ctx, id, patch)
}

func (m *MockSubmissionAPI) CancelSubmission(ctx context.Context, id string) (*model.SubmissionRecord, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CancelSubmission", ctx, id)
	ret0, _ := ret[0].(*model.SubmissionRecord)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockSubmissionAPIMockRecorder) CancelSubmission(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CancelSubmission", reflect.TypeOf((*MockSubmissionAPI)(nil).CancelSubmission), ctx, id)
}

type MockGradeAPI struct {
	ctrl     *gomock.Controller
	recorder *MockGradeAPIMockRecorder
}

type MockGradeAPIMockRecorder struct {
	mock *MockGradeAPI
}

func NewMockGradeAPI(ctrl *gomock.Controller) *MockGradeAPI {
	mock := &MockGradeAPI{ctrl: ctrl}
	mock.recorder = &MockGradeAPIMockRecorder{mock}
	return mock
}

func (m *MockGradeAPI) EXPECT() *MockGradeAPIMockRecorder {
	return m.recorder
}

func (m *MockGradeAPI) ListGrades(ctx context.Context, filter api.GradeFilter) ([]model.Grade, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListGrades", ctx, filter)
	ret0, _ := ret[0].([]model.Grade)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockGradeAPIMockRecorder) ListGrades(ctx, filter any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListGrades", reflect.TypeOf((*MockGradeAPI)(nil).ListGrades), ctx, filter)
}

func (m *MockGradeAPI) CreateGrade(ctx context.Context, in api.GradeInput) (*model.Grade, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateGrade", ctx, in)
	ret0, _ := ret[0].(*model.Grade)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockGradeAPIMockRecorder) CreateGrade(ctx, in any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateGrade", reflect.TypeOf((*MockGradeAPI)(nil).CreateGrade), ctx, in)
}

func (m *MockGradeAPI) UpdateGrade(ctx context.Context, id string, in api.GradeInput) (*model.Grade, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateGrade", ctx, id, in)
	ret0, _ := ret[0].(*model.Grade)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockGradeAPIMockRecorder) UpdateGrade(ctx, id, in any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateGrade", reflect.TypeOf((*MockGradeAPI)(nil).UpdateGrade), ctx, id, in)
}

func (m *MockGradeAPI) DeleteGrade(ctx context.Context, id string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteGrade", ctx, id)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockGradeAPIMockRecorder) DeleteGrade(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteGrade", reflect.TypeOf((*MockGradeAPI)(nil).DeleteGrade), ctx, id)
}
