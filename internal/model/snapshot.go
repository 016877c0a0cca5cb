package model

import "time"

// CodeSnapshot is the student's persisted current code for one assignment.
// There is at most one per (student, assignment) pair; it is created lazily by
// the first save and mutated only by that student's autosave/submit actions.
type CodeSnapshot struct {
	ID           string    `json:"id"`
	StudentID    string    `json:"student_id"`
	AssignmentID string    `json:"assignment_id"`
	Code         string    `json:"code"`
	SavedAt      time.Time `json:"saved_at"`
}
