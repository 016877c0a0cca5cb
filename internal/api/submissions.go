package api

import (
	"context"
	"net/url"
	"time"

	"github.com/VitoPython/EduLand-sub000/internal/model"
)

type SubmissionInput struct {
	StudentID    string     `json:"student_id"`
	LessonID     string     `json:"lesson_id"`
	AssignmentID string     `json:"assignment_id"`
	Submitted    bool       `json:"submitted"`
	SubmittedAt  *time.Time `json:"submitted_at,omitempty"`
}

type SubmissionPatch struct {
	Submitted   *bool      `json:"submitted,omitempty"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
}

// GetSubmissionForAssignment fetches the student's submission record for one
// assignment. ErrNotFound means no record exists, i.e. never submitted.
func (c *Client) GetSubmissionForAssignment(ctx context.Context, studentID, assignmentID string) (*model.SubmissionRecord, error) {
	var out model.SubmissionRecord
	path := "/submissions/" + url.PathEscape(studentID) + "/" + url.PathEscape(assignmentID)
	if err := c.get(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListSubmissions returns the submission records of one lesson (the admin
// submissions table).
func (c *Client) ListSubmissions(ctx context.Context, lessonID string) ([]model.SubmissionRecord, error) {
	q := url.Values{}
	if lessonID != "" {
		q.Set("lesson_id", lessonID)
	}
	var out []model.SubmissionRecord
	if err := c.get(ctx, "/submissions", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateSubmission(ctx context.Context, in SubmissionInput) (*model.SubmissionRecord, error) {
	var out model.SubmissionRecord
	if err := c.post(ctx, "/submissions", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PatchSubmission partially updates a known record. ErrNotFound means the
// record was deleted out-of-band; callers fall through to CreateSubmission.
func (c *Client) PatchSubmission(ctx context.Context, id string, patch SubmissionPatch) (*model.SubmissionRecord, error) {
	var out model.SubmissionRecord
	if err := c.patch(ctx, "/submissions/"+url.PathEscape(id), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelSubmission flips a record back to not submitted. Only the admin
// surface exposes this; the student portal has no unsubmit flow.
func (c *Client) CancelSubmission(ctx context.Context, id string) (*model.SubmissionRecord, error) {
	submitted := false
	return c.PatchSubmission(ctx, id, SubmissionPatch{Submitted: &submitted})
}
