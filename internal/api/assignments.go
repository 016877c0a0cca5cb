package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/VitoPython/EduLand-sub000/internal/model"
)

type AssignmentInput struct {
	LessonID    string `json:"lesson_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	StarterCode string `json:"starter_code,omitempty"`
	Position    int    `json:"position"`
}

// ListAssignments returns the assignments of one lesson in server order; the
// student portal derives prev/next navigation from this order.
func (c *Client) ListAssignments(ctx context.Context, lessonID string) ([]model.Assignment, error) {
	q := url.Values{}
	if lessonID != "" {
		q.Set("lesson_id", lessonID)
	}
	var out []model.Assignment
	if err := c.get(ctx, "/assignments", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetAssignment(ctx context.Context, id string) (*model.Assignment, error) {
	var out model.Assignment
	if err := c.get(ctx, "/assignments/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateAssignment(ctx context.Context, in AssignmentInput) (*model.Assignment, error) {
	if in.LessonID == "" {
		return nil, fmt.Errorf("assignment lesson_id is required")
	}
	var out model.Assignment
	if err := c.post(ctx, "/assignments", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateAssignment(ctx context.Context, id string, in AssignmentInput) (*model.Assignment, error) {
	var out model.Assignment
	if err := c.put(ctx, "/assignments/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteAssignment(ctx context.Context, id string) error {
	return c.delete(ctx, "/assignments/"+url.PathEscape(id))
}

func (c *Client) AttachFile(ctx context.Context, assignmentID string, att model.Attachment) (*model.Assignment, error) {
	var out model.Assignment
	path := "/assignments/" + url.PathEscape(assignmentID) + "/attachments"
	if err := c.post(ctx, path, att, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
