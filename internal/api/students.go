package api

import (
	"context"
	"net/url"

	"github.com/VitoPython/EduLand-sub000/internal/model"
)

type StudentInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	GroupID   string `json:"group_id,omitempty"`
}

func (c *Client) ListStudents(ctx context.Context, groupID string) ([]model.Student, error) {
	q := url.Values{}
	if groupID != "" {
		q.Set("group_id", groupID)
	}
	var out []model.Student
	if err := c.get(ctx, "/students", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetStudent(ctx context.Context, id string) (*model.Student, error) {
	var out model.Student
	if err := c.get(ctx, "/students/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateStudent(ctx context.Context, in StudentInput) (*model.Student, error) {
	var out model.Student
	if err := c.post(ctx, "/students", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateStudent(ctx context.Context, id string, in StudentInput) (*model.Student, error) {
	var out model.Student
	if err := c.put(ctx, "/students/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteStudent(ctx context.Context, id string) error {
	return c.delete(ctx, "/students/"+url.PathEscape(id))
}

type GroupInput struct {
	Name     string `json:"name"`
	CourseID string `json:"course_id,omitempty"`
}

func (c *Client) ListGroups(ctx context.Context) ([]model.Group, error) {
	var out []model.Group
	if err := c.get(ctx, "/groups", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateGroup(ctx context.Context, in GroupInput) (*model.Group, error) {
	var out model.Group
	if err := c.post(ctx, "/groups", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateGroup(ctx context.Context, id string, in GroupInput) (*model.Group, error) {
	var out model.Group
	if err := c.put(ctx, "/groups/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteGroup(ctx context.Context, id string) error {
	return c.delete(ctx, "/groups/"+url.PathEscape(id))
}

type EnrollmentInput struct {
	StudentID string `json:"student_id"`
	CourseID  string `json:"course_id"`
}

func (c *Client) ListEnrollments(ctx context.Context, courseID string) ([]model.Enrollment, error) {
	q := url.Values{}
	if courseID != "" {
		q.Set("course_id", courseID)
	}
	var out []model.Enrollment
	if err := c.get(ctx, "/enrollments", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateEnrollment(ctx context.Context, in EnrollmentInput) (*model.Enrollment, error) {
	var out model.Enrollment
	if err := c.post(ctx, "/enrollments", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteEnrollment(ctx context.Context, id string) error {
	return c.delete(ctx, "/enrollments/"+url.PathEscape(id))
}
