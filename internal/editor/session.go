// Package editor implements the assignment code-editor session of the
// student portal: a fast edit buffer persisted through debounced and periodic
// autosaves, plus the explicit submit flow that records the durable
// "submitted" signal separately from the autosave stream.
package editor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/VitoPython/EduLand-sub000/internal/api"
	"github.com/VitoPython/EduLand-sub000/internal/logging"
	"github.com/VitoPython/EduLand-sub000/internal/model"
)

// ErrSubmitFailed wraps any unrecoverable submit error. The session stays
// usable; Submit can be re-invoked as the manual retry.
var ErrSubmitFailed = errors.New("submit failed")

// SessionAPI is the slice of the API client a session needs.
type SessionAPI interface {
	GetAssignment(ctx context.Context, id string) (*model.Assignment, error)
	ListAssignments(ctx context.Context, lessonID string) ([]model.Assignment, error)
	GetCodeSnapshot(ctx context.Context, studentID, assignmentID string) (*model.CodeSnapshot, error)
	UpdateCodeSnapshot(ctx context.Context, studentID, assignmentID, code string) (*model.CodeSnapshot, error)
	CreateCodeSnapshot(ctx context.Context, in api.CodeSnapshotInput) (*model.CodeSnapshot, error)
	GetSubmissionForAssignment(ctx context.Context, studentID, assignmentID string) (*model.SubmissionRecord, error)
	CreateSubmission(ctx context.Context, in api.SubmissionInput) (*model.SubmissionRecord, error)
	PatchSubmission(ctx context.Context, id string, patch api.SubmissionPatch) (*model.SubmissionRecord, error)
}

type Config struct {
	// DebounceDelay is how long a burst of edits must quiet down before the
	// debounced autosave fires.
	DebounceDelay time.Duration
	// SaveInterval is the periodic fallback save, independent of edits.
	SaveInterval time.Duration
	// SavedStatusDelay is how long "saved" (or "error") stays visible before
	// clearing back to idle.
	SavedStatusDelay time.Duration
}

func (c *Config) applyDefaults() {
	if c.DebounceDelay <= 0 {
		c.DebounceDelay = 1500 * time.Millisecond
	}
	if c.SaveInterval <= 0 {
		c.SaveInterval = 30 * time.Second
	}
	if c.SavedStatusDelay <= 0 {
		c.SavedStatusDelay = 2 * time.Second
	}
}

// Session is one student editing one assignment. The edit path writes only
// the fast buffer; the observable code value is synchronized at checkpoints
// (post-save, pre-submit) via Flush.
type Session struct {
	api          SessionAPI
	cfg          Config
	studentID    string
	assignmentID string

	// ctx is the session's background context; timer and ticker callbacks
	// fire on it after Start.
	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	assignment *model.Assignment
	buffer     string
	flushed    string
	status     AutoSaveStatus
	submission SubmissionStatus
	prevID     string
	nextID     string
	debounce   *time.Timer
	clearTimer *time.Timer
	started    bool
	closed     bool

	// saveMu serializes snapshot saves so a ticker save and a debounced save
	// never interleave.
	saveMu sync.Mutex

	onStatus func(AutoSaveStatus)
}

func NewSession(apiClient SessionAPI, cfg Config, studentID, assignmentID string) *Session {
	cfg.applyDefaults()
	return &Session{
		api:          apiClient,
		cfg:          cfg,
		studentID:    studentID,
		assignmentID: assignmentID,
		status:       AutoSaveIdle,
	}
}

// OnAutoSaveStatus registers the status listener. Must be set before Start;
// the callback fires on timer goroutines.
func (s *Session) OnAutoSaveStatus(fn func(AutoSaveStatus)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onStatus = fn
}

// Start runs the initial load protocol and arms the periodic save. The
// assignment fetch is the only fatal step: a missing snapshot, an unknown
// submission status or a failed sibling fetch all degrade, never abort.
func (s *Session) Start(ctx context.Context) error {
	assignment, err := s.api.GetAssignment(ctx, s.assignmentID)
	if err != nil {
		return fmt.Errorf("load assignment %s: %w", s.assignmentID, err)
	}

	initial := assignment.StarterCode
	snap, err := s.api.GetCodeSnapshot(ctx, s.studentID, s.assignmentID)
	switch {
	case err == nil:
		initial = snap.Code
	case errors.Is(err, api.ErrNotFound):
		// First visit, start from the template.
	default:
		// Treated the same as absent; losing a stale snapshot read is better
		// than refusing to open the editor.
		if logger, ok := logging.GetFromContext(ctx); ok {
			logger.Warn(ctx, "code snapshot fetch failed, using starter code",
				zap.String("assignment_id", s.assignmentID), zap.Error(err))
		}
	}

	var (
		wg         sync.WaitGroup
		submission SubmissionStatus
		prev, next string
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		submission = s.fetchSubmissionStatus(ctx)
	}()
	go func() {
		defer wg.Done()
		prev, next = s.fetchNeighbors(ctx, assignment.LessonID)
	}()
	wg.Wait()

	sessionCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))

	s.mu.Lock()
	s.assignment = assignment
	s.buffer = initial
	s.flushed = initial
	s.submission = submission
	s.prevID, s.nextID = prev, next
	s.ctx = sessionCtx
	s.cancel = cancel
	s.started = true
	s.mu.Unlock()

	go s.periodicSave(sessionCtx)
	return nil
}

func (s *Session) fetchSubmissionStatus(ctx context.Context) SubmissionStatus {
	record, err := s.api.GetSubmissionForAssignment(ctx, s.studentID, s.assignmentID)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return SubmissionStatus{Known: true}
		}
		if logger, ok := logging.GetFromContext(ctx); ok {
			logger.Warn(ctx, "submission status fetch failed",
				zap.String("assignment_id", s.assignmentID), zap.Error(err))
		}
		return SubmissionStatus{}
	}
	return SubmissionStatus{
		Known:       true,
		Submitted:   record.Submitted,
		SubmittedAt: record.SubmittedAt,
		RecordID:    record.ID,
	}
}

// fetchNeighbors computes prev/next navigation targets from the fetch-time
// order of the lesson's assignment list. Navigation later reuses these ids
// without re-fetching; staleness between this fetch and navigation is
// accepted.
func (s *Session) fetchNeighbors(ctx context.Context, lessonID string) (prev, next string) {
	siblings, err := s.api.ListAssignments(ctx, lessonID)
	if err != nil {
		if logger, ok := logging.GetFromContext(ctx); ok {
			logger.Warn(ctx, "sibling assignment fetch failed",
				zap.String("lesson_id", lessonID), zap.Error(err))
		}
		return "", ""
	}
	for i := range siblings {
		if siblings[i].ID != s.assignmentID {
			continue
		}
		if i > 0 {
			prev = siblings[i-1].ID
		}
		if i < len(siblings)-1 {
			next = siblings[i+1].ID
		}
		return prev, next
	}
	return "", ""
}

// Edit replaces the buffer immediately and re-arms the debounce timer; only
// the final edit of a burst triggers a save.
func (s *Session) Edit(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started || s.closed {
		return
	}
	s.buffer = text
	if s.debounce != nil {
		s.debounce.Stop()
	}
	s.debounce = time.AfterFunc(s.cfg.DebounceDelay, func() {
		s.saveNow(s.ctx)
	})
}

// Blur cancels the pending debounced save before saving immediately, so a
// stale timer never fires after the blur-triggered save.
func (s *Session) Blur(ctx context.Context) {
	s.mu.Lock()
	if !s.started || s.closed {
		s.mu.Unlock()
		return
	}
	if s.debounce != nil {
		s.debounce.Stop()
		s.debounce = nil
	}
	s.mu.Unlock()
	s.saveNow(ctx)
}

func (s *Session) periodicSave(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.SaveInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Fires regardless of recent edits; this is the guard against a
			// debounce lost to process suspension.
			s.saveNow(ctx)
		}
	}
}

// saveNow persists the current buffer through the upsert path. Failures are
// surfaced on the status indicator and never retried here; the next edit or
// periodic tick re-attempts naturally.
func (s *Session) saveNow(ctx context.Context) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	code := s.buffer
	s.mu.Unlock()

	s.setStatus(AutoSaveSaving)
	if err := s.upsertSnapshot(ctx, code); err != nil {
		if logger, ok := logging.GetFromContext(ctx); ok {
			logger.Warn(ctx, "autosave failed",
				zap.String("assignment_id", s.assignmentID), zap.Error(err))
		}
		s.settleStatus(AutoSaveError)
		return
	}

	s.mu.Lock()
	s.flushed = code
	s.mu.Unlock()
	s.settleStatus(AutoSaveSaved)
}

// upsertSnapshot updates by (student, assignment) identity and falls back to
// creation when no snapshot exists yet. There is no existence probe before
// the update.
func (s *Session) upsertSnapshot(ctx context.Context, code string) error {
	_, err := s.api.UpdateCodeSnapshot(ctx, s.studentID, s.assignmentID, code)
	if err == nil {
		return nil
	}
	if !errors.Is(err, api.ErrNotFound) {
		return err
	}
	_, err = s.api.CreateCodeSnapshot(ctx, api.CodeSnapshotInput{
		StudentID:    s.studentID,
		AssignmentID: s.assignmentID,
		Code:         code,
	})
	return err
}

func (s *Session) setStatus(status AutoSaveStatus) {
	s.mu.Lock()
	s.status = status
	fn := s.onStatus
	s.mu.Unlock()
	if fn != nil {
		fn(status)
	}
}

// settleStatus shows a terminal save outcome briefly, then clears to idle.
// The clear is skipped when another save has moved the status on already.
func (s *Session) settleStatus(status AutoSaveStatus) {
	s.setStatus(status)
	s.mu.Lock()
	if s.clearTimer != nil {
		s.clearTimer.Stop()
	}
	s.clearTimer = time.AfterFunc(s.cfg.SavedStatusDelay, func() {
		s.mu.Lock()
		stale := s.status != status
		s.mu.Unlock()
		if !stale {
			s.setStatus(AutoSaveIdle)
		}
	})
	s.mu.Unlock()
}

// Flush synchronizes the observable code value from the edit buffer.
func (s *Session) Flush() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushed = s.buffer
	return s.flushed
}

// Submit records the explicit "done" signal. The pre-submit save is best
// effort: a transient snapshot failure must not block the submission record,
// which is the authoritative signal and can be saved against later.
func (s *Session) Submit(ctx context.Context) (SubmissionStatus, error) {
	code := s.Flush()

	if err := s.upsertSnapshot(ctx, code); err != nil {
		if logger, ok := logging.GetFromContext(ctx); ok {
			logger.Warn(ctx, "pre-submit save failed, submitting anyway",
				zap.String("assignment_id", s.assignmentID), zap.Error(err))
		}
	}

	record, err := s.upsertSubmission(ctx)
	if err != nil {
		return s.Submission(), fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}

	status := SubmissionStatus{
		Known:       true,
		Submitted:   record.Submitted,
		SubmittedAt: record.SubmittedAt,
		RecordID:    record.ID,
	}

	// Re-fetch the canonical record rather than trusting the optimistic
	// response, reconciling server-assigned timestamps.
	if canonical := s.fetchSubmissionStatus(ctx); canonical.Known {
		status = canonical
	}

	s.mu.Lock()
	s.submission = status
	s.mu.Unlock()
	return status, nil
}

func (s *Session) upsertSubmission(ctx context.Context) (*model.SubmissionRecord, error) {
	now := time.Now().UTC()
	submitted := true

	s.mu.Lock()
	recordID := s.submission.RecordID
	lessonID := ""
	if s.assignment != nil {
		lessonID = s.assignment.LessonID
	}
	s.mu.Unlock()

	if recordID != "" {
		record, err := s.api.PatchSubmission(ctx, recordID, api.SubmissionPatch{
			Submitted:   &submitted,
			SubmittedAt: &now,
		})
		if err == nil {
			return record, nil
		}
		if !errors.Is(err, api.ErrNotFound) {
			return nil, err
		}
		// Record deleted out-of-band; fall through to creation.
	}

	return s.api.CreateSubmission(ctx, api.SubmissionInput{
		StudentID:    s.studentID,
		LessonID:     lessonID,
		AssignmentID: s.assignmentID,
		Submitted:    true,
		SubmittedAt:  &now,
	})
}

func (s *Session) Assignment() *model.Assignment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.assignment
}

// Buffer returns the live edit buffer.
func (s *Session) Buffer() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buffer
}

// Code returns the observable value as of the last checkpoint.
func (s *Session) Code() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushed
}

func (s *Session) AutoSaveStatus() AutoSaveStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Session) Submission() SubmissionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submission
}

// Prev returns the preceding assignment in the lesson, absent at the first.
func (s *Session) Prev() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prevID, s.prevID != ""
}

// Next returns the following assignment in the lesson, absent at the last.
func (s *Session) Next() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextID, s.nextID != ""
}

// Close stops the timers and the periodic save. It does not flush; callers
// wanting a final save call Blur first.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.debounce != nil {
		s.debounce.Stop()
	}
	if s.clearTimer != nil {
		s.clearTimer.Stop()
	}
	if s.cancel != nil {
		s.cancel()
	}
}
