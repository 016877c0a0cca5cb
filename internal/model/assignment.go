package model

import "time"

// Assignment is immutable from the student's perspective except for its
// attachment list.
type Assignment struct {
	ID          string       `json:"id"`
	LessonID    string       `json:"lesson_id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	StarterCode string       `json:"starter_code,omitempty"`
	Position    int          `json:"position"`
	Attachments []Attachment `json:"attachments,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

type Attachment struct {
	ID       string `json:"id"`
	FileName string `json:"file_name"`
	Path     string `json:"path"`
}
