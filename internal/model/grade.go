package model

import (
	"fmt"
	"time"
)

const (
	GradeMin = 0
	GradeMax = 10
)

type Grade struct {
	ID           string    `json:"id"`
	StudentID    string    `json:"student_id"`
	AssignmentID string    `json:"assignment_id"`
	Value        float64   `json:"value"`
	Comment      string    `json:"comment,omitempty"`
	GradedAt     time.Time `json:"graded_at"`
}

// ValidateValue is checked client side before any request is issued.
func (g *Grade) ValidateValue() error {
	if g.Value < GradeMin || g.Value > GradeMax {
		return fmt.Errorf("grade value %v out of range [%d, %d]", g.Value, GradeMin, GradeMax)
	}
	return nil
}
