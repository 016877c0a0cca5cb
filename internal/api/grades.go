package api

import (
	"context"
	"net/url"

	"github.com/VitoPython/EduLand-sub000/internal/model"
)

type GradeInput struct {
	StudentID    string  `json:"student_id"`
	AssignmentID string  `json:"assignment_id"`
	Value        float64 `json:"value"`
	Comment      string  `json:"comment,omitempty"`
}

type GradeFilter struct {
	StudentID    string
	AssignmentID string
}

func (f GradeFilter) query() url.Values {
	q := url.Values{}
	if f.StudentID != "" {
		q.Set("student_id", f.StudentID)
	}
	if f.AssignmentID != "" {
		q.Set("assignment_id", f.AssignmentID)
	}
	return q
}

func (c *Client) ListGrades(ctx context.Context, filter GradeFilter) ([]model.Grade, error) {
	var out []model.Grade
	if err := c.get(ctx, "/grades", filter.query(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateGrade validates the value range before any request is issued.
func (c *Client) CreateGrade(ctx context.Context, in GradeInput) (*model.Grade, error) {
	if err := (&model.Grade{Value: in.Value}).ValidateValue(); err != nil {
		return nil, err
	}
	var out model.Grade
	if err := c.post(ctx, "/grades", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateGrade(ctx context.Context, id string, in GradeInput) (*model.Grade, error) {
	if err := (&model.Grade{Value: in.Value}).ValidateValue(); err != nil {
		return nil, err
	}
	var out model.Grade
	if err := c.put(ctx, "/grades/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteGrade(ctx context.Context, id string) error {
	return c.delete(ctx, "/grades/"+url.PathEscape(id))
}

type AttendanceInput struct {
	StudentID string                 `json:"student_id"`
	LessonID  string                 `json:"lesson_id"`
	Date      string                 `json:"date"`
	Status    model.AttendanceStatus `json:"status"`
	MarkedBy  string                 `json:"marked_by,omitempty"`
}

func (c *Client) ListAttendance(ctx context.Context, lessonID string) ([]model.AttendanceRecord, error) {
	q := url.Values{}
	if lessonID != "" {
		q.Set("lesson_id", lessonID)
	}
	var out []model.AttendanceRecord
	if err := c.get(ctx, "/attendance", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) RecordAttendance(ctx context.Context, in AttendanceInput) (*model.AttendanceRecord, error) {
	var out model.AttendanceRecord
	if err := c.post(ctx, "/attendance", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateAttendance(ctx context.Context, id string, in AttendanceInput) (*model.AttendanceRecord, error) {
	var out model.AttendanceRecord
	if err := c.put(ctx, "/attendance/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
