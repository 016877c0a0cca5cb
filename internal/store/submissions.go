package store

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/VitoPython/EduLand-sub000/internal/api"
	"github.com/VitoPython/EduLand-sub000/internal/logging"
	"github.com/VitoPython/EduLand-sub000/internal/model"
)

type SubmissionAPI interface {
	ListSubmissions(ctx context.Context, lessonID string) ([]model.SubmissionRecord, error)
	PatchSubmission(ctx context.Context, id string, patch api.SubmissionPatch) (*model.SubmissionRecord, error)
	CancelSubmission(ctx context.Context, id string) (*model.SubmissionRecord, error)
}

// SubmissionStore backs the admin submissions table.
type SubmissionStore struct {
	api SubmissionAPI

	lessonID string
	state    collection[model.SubmissionRecord]
}

func NewSubmissionStore(apiClient SubmissionAPI) *SubmissionStore {
	return &SubmissionStore{api: apiClient}
}

func (s *SubmissionStore) Load(ctx context.Context, lessonID string) error {
	if s.lessonID == lessonID && s.state.isLoaded() {
		return nil
	}
	s.lessonID = lessonID
	return s.Refresh(ctx)
}

func (s *SubmissionStore) Refresh(ctx context.Context) error {
	records, err := s.api.ListSubmissions(ctx, s.lessonID)
	if err != nil {
		s.state.fail(err)
		return err
	}
	records = s.repairTimestamps(ctx, records)
	s.state.set(records)
	return nil
}

// repairTimestamps patches back any fetched record that claims submitted but
// carries no timestamp. The server owns the invariant; this is a best-effort
// repair when the client notices a violation, so patch failures only log.
func (s *SubmissionStore) repairTimestamps(ctx context.Context, records []model.SubmissionRecord) []model.SubmissionRecord {
	for i := range records {
		if !records[i].NeedsTimestampRepair() {
			continue
		}
		now := time.Now().UTC()
		patched, err := s.api.PatchSubmission(ctx, records[i].ID, api.SubmissionPatch{SubmittedAt: &now})
		if err != nil {
			if logger, ok := logging.GetFromContext(ctx); ok {
				logger.Warn(ctx, "failed to repair submission timestamp",
					zap.String("submission_id", records[i].ID),
					zap.Error(err),
				)
			}
			continue
		}
		records[i] = *patched
	}
	return records
}

func (s *SubmissionStore) Submissions() []model.SubmissionRecord {
	return s.state.snapshot()
}

func (s *SubmissionStore) Err() error {
	return s.state.err()
}

// Cancel flips a record back to not submitted; this exists only on the admin
// side.
func (s *SubmissionStore) Cancel(ctx context.Context, id string) (*model.SubmissionRecord, error) {
	record, err := s.api.CancelSubmission(ctx, id)
	if err != nil {
		s.state.fail(err)
		return nil, err
	}
	s.state.replace(*record, func(r model.SubmissionRecord) bool { return r.ID == id })
	return record, nil
}
