// Package roster loads the admin gradebook overview: the grade and
// submission record for every student x assignment cell of a lesson. The
// fan-out is bounded by a fixed-size worker pool so the number of in-flight
// requests stays constant as rosters grow, and the whole batch shares a
// circuit breaker so a dying backend trips fast instead of being hammered
// once per cell.
package roster

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/VitoPython/EduLand-sub000/internal/api"
	"github.com/VitoPython/EduLand-sub000/internal/model"
	"github.com/VitoPython/EduLand-sub000/internal/retry"
)

type API interface {
	ListGrades(ctx context.Context, filter api.GradeFilter) ([]model.Grade, error)
	GetSubmissionForAssignment(ctx context.Context, studentID, assignmentID string) (*model.SubmissionRecord, error)
}

// Cell is one (student, assignment) intersection. Grade and Submission are
// nil when absent; Err carries a per-cell fetch failure without failing the
// batch.
type Cell struct {
	StudentID    string
	AssignmentID string
	Grade        *model.Grade
	Submission   *model.SubmissionRecord
	Err          error
}

type Overview struct {
	cells map[string]map[string]Cell
}

func (o *Overview) Cell(studentID, assignmentID string) (Cell, bool) {
	row, ok := o.cells[studentID]
	if !ok {
		return Cell{}, false
	}
	cell, ok := row[assignmentID]
	return cell, ok
}

// Failed returns the cells whose fetches erred.
func (o *Overview) Failed() []Cell {
	var failed []Cell
	for _, row := range o.cells {
		for _, cell := range row {
			if cell.Err != nil {
				failed = append(failed, cell)
			}
		}
	}
	return failed
}

type Loader struct {
	api         API
	concurrency int
	maxRetries  int
	baseDelay   time.Duration
	breaker     *retry.CircuitBreaker
}

func NewLoader(apiClient API, concurrency int) *Loader {
	if concurrency <= 0 {
		concurrency = 8
	}
	return &Loader{
		api:         apiClient,
		concurrency: concurrency,
		maxRetries:  3,
		baseDelay:   100 * time.Millisecond,
		breaker:     retry.NewCircuitBreaker(5, 10*time.Second),
	}
}

// Load joins all cells after completion; cell order carries no meaning.
func (l *Loader) Load(ctx context.Context, students []model.Student, assignments []model.Assignment) *Overview {
	type job struct {
		studentID    string
		assignmentID string
	}

	jobs := make(chan job)
	results := make(chan Cell)

	var wg sync.WaitGroup
	for i := 0; i < l.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results <- l.loadCell(ctx, j.studentID, j.assignmentID)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, st := range students {
			for _, a := range assignments {
				select {
				case jobs <- job{studentID: st.ID, assignmentID: a.ID}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	overview := &Overview{cells: make(map[string]map[string]Cell, len(students))}
	for cell := range results {
		row, ok := overview.cells[cell.StudentID]
		if !ok {
			row = make(map[string]Cell, len(assignments))
			overview.cells[cell.StudentID] = row
		}
		row[cell.AssignmentID] = cell
	}
	return overview
}

func (l *Loader) loadCell(ctx context.Context, studentID, assignmentID string) Cell {
	cell := Cell{StudentID: studentID, AssignmentID: assignmentID}

	grades, err := retry.RetryWithCircuitBreaker(ctx, l.breaker, l.maxRetries, l.baseDelay, func() ([]model.Grade, error) {
		return l.api.ListGrades(ctx, api.GradeFilter{StudentID: studentID, AssignmentID: assignmentID})
	})
	if err != nil {
		cell.Err = err
	} else if len(grades) > 0 {
		cell.Grade = &grades[0]
	}

	submission, err := retry.RetryWithCircuitBreaker(ctx, l.breaker, l.maxRetries, l.baseDelay, func() (*model.SubmissionRecord, error) {
		return l.api.GetSubmissionForAssignment(ctx, studentID, assignmentID)
	})
	switch {
	case err == nil:
		cell.Submission = submission
	case errors.Is(err, api.ErrNotFound):
		// Never submitted; not an error.
	case cell.Err == nil:
		cell.Err = err
	}

	return cell
}
