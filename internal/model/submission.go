package model

import "time"

// SubmissionRecord is the durable "student marked this assignment as
// submitted" signal, distinct from the code snapshot. At most one record
// exists per (student, assignment) pair.
type SubmissionRecord struct {
	ID           string     `json:"id"`
	StudentID    string     `json:"student_id"`
	LessonID     string     `json:"lesson_id"`
	AssignmentID string     `json:"assignment_id"`
	Submitted    bool       `json:"submitted"`
	SubmittedAt  *time.Time `json:"submitted_at,omitempty"`
}

// NeedsTimestampRepair reports a record that violates the invariant that a
// submitted record carries a submission timestamp. The server owns the
// invariant; the client only patches it back when it notices the violation
// on fetch.
func (r *SubmissionRecord) NeedsTimestampRepair() bool {
	return r.Submitted && r.SubmittedAt == nil
}
