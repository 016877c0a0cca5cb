package editor

import "time"

// AutoSaveStatus is the autosave indicator the portal surface renders next to
// the editor.
type AutoSaveStatus string

const (
	AutoSaveIdle   AutoSaveStatus = "idle"
	AutoSaveSaving AutoSaveStatus = "saving"
	AutoSaveSaved  AutoSaveStatus = "saved"
	AutoSaveError  AutoSaveStatus = "error"
)

// SubmissionStatus mirrors the server's submission record for this session.
// Known is false when the status fetch failed for a reason other than
// not-found: the portal then shows "status unknown" instead of silently
// pretending the assignment was never submitted.
type SubmissionStatus struct {
	Known       bool
	Submitted   bool
	SubmittedAt *time.Time
	RecordID    string
}
