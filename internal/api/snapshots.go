package api

import (
	"context"
	"net/url"

	"github.com/VitoPython/EduLand-sub000/internal/model"
)

type CodeSnapshotInput struct {
	StudentID    string `json:"student_id"`
	AssignmentID string `json:"assignment_id"`
	Code         string `json:"code"`
}

// GetCodeSnapshot fetches the student's snapshot for one assignment.
// ErrNotFound means no snapshot has been saved yet.
func (c *Client) GetCodeSnapshot(ctx context.Context, studentID, assignmentID string) (*model.CodeSnapshot, error) {
	var out model.CodeSnapshot
	path := "/code-snapshots/" + url.PathEscape(studentID) + "/" + url.PathEscape(assignmentID)
	if err := c.get(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCodeSnapshot overwrites the snapshot addressed by its (student,
// assignment) identity. ErrNotFound means the snapshot does not exist yet and
// the caller should fall back to CreateCodeSnapshot; there is deliberately no
// existence probe before this call.
func (c *Client) UpdateCodeSnapshot(ctx context.Context, studentID, assignmentID, code string) (*model.CodeSnapshot, error) {
	var out model.CodeSnapshot
	path := "/code-snapshots/" + url.PathEscape(studentID) + "/" + url.PathEscape(assignmentID)
	body := struct {
		Code string `json:"code"`
	}{Code: code}
	if err := c.put(ctx, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCodeSnapshot(ctx context.Context, in CodeSnapshotInput) (*model.CodeSnapshot, error) {
	var out model.CodeSnapshot
	if err := c.post(ctx, "/code-snapshots", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
