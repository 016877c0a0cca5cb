package editor_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VitoPython/EduLand-sub000/internal/api"
	"github.com/VitoPython/EduLand-sub000/internal/api/apitest"
	"github.com/VitoPython/EduLand-sub000/internal/editor"
	"github.com/VitoPython/EduLand-sub000/internal/model"
)

const (
	debounce   = 60 * time.Millisecond
	pastWindow = 250 * time.Millisecond
	longEnough = time.Hour // keeps the periodic saver out of timing tests
)

func newFixture(t *testing.T) (*apitest.Server, *api.Client) {
	t.Helper()
	srv := apitest.New()
	t.Cleanup(srv.Close)
	client := api.New(srv.URL(), api.NewStaticTokenSource(apitest.Token), 5*time.Second)
	return srv, client
}

func newSession(client *api.Client, studentID, assignmentID string) *editor.Session {
	return editor.NewSession(client, editor.Config{
		DebounceDelay:    debounce,
		SaveInterval:     longEnough,
		SavedStatusDelay: 10 * time.Millisecond,
	}, studentID, assignmentID)
}

func seedAssignment(srv *apitest.Server, lessonID, title string, pos int) model.Assignment {
	return srv.SeedAssignment(model.Assignment{
		LessonID:    lessonID,
		Title:       title,
		StarterCode: "# write your solution here\n",
		Position:    pos,
	})
}

func TestStartFallsBackToStarterCode(t *testing.T) {
	srv, client := newFixture(t)
	a := seedAssignment(srv, "lesson-1", "Loops", 1)

	session := newSession(client, "student-1", a.ID)
	require.NoError(t, session.Start(context.Background()))
	defer session.Close()

	assert.Equal(t, a.StarterCode, session.Buffer())
	assert.Equal(t, a.StarterCode, session.Code())

	status := session.Submission()
	assert.True(t, status.Known)
	assert.False(t, status.Submitted)
}

func TestStartPrefersExistingSnapshot(t *testing.T) {
	srv, client := newFixture(t)
	a := seedAssignment(srv, "lesson-1", "Loops", 1)

	session := newSession(client, "student-1", a.ID)
	require.NoError(t, session.Start(context.Background()))
	session.Edit("print(42)")
	session.Blur(context.Background())
	session.Close()

	resumed := newSession(client, "student-1", a.ID)
	require.NoError(t, resumed.Start(context.Background()))
	defer resumed.Close()
	assert.Equal(t, "print(42)", resumed.Buffer())
}

func TestStartFailsOnMissingAssignment(t *testing.T) {
	_, client := newFixture(t)
	session := newSession(client, "student-1", "no-such-assignment")
	err := session.Start(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrNotFound)
}

func TestStartSubmissionStatusUnknownOnFetchError(t *testing.T) {
	srv, client := newFixture(t)
	a := seedAssignment(srv, "lesson-1", "Loops", 1)
	srv.FailSubmissionFetches = 1

	session := newSession(client, "student-1", a.ID)
	require.NoError(t, session.Start(context.Background()))
	defer session.Close()

	// An outage must read as "unknown", not as "never submitted".
	assert.False(t, session.Submission().Known)
}

func TestUpsertIdempotence(t *testing.T) {
	srv, client := newFixture(t)
	a := seedAssignment(srv, "lesson-1", "Loops", 1)

	session := newSession(client, "student-1", a.ID)
	require.NoError(t, session.Start(context.Background()))
	defer session.Close()

	session.Edit("print(1)")
	session.Blur(context.Background())
	session.Edit("print(2)")
	session.Blur(context.Background())

	snap, ok, total := srv.Snapshot("student-1", a.ID)
	require.True(t, ok)
	assert.Equal(t, "print(2)", snap.Code)
	assert.Equal(t, 1, total, "saving twice must not create a second snapshot")
}

func TestDebounceCoalescing(t *testing.T) {
	srv, client := newFixture(t)
	a := seedAssignment(srv, "lesson-1", "Loops", 1)

	session := newSession(client, "student-1", a.ID)
	require.NoError(t, session.Start(context.Background()))
	defer session.Close()

	for i := 0; i < 10; i++ {
		session.Edit("draft")
		time.Sleep(2 * time.Millisecond)
	}
	session.Edit("final")
	time.Sleep(pastWindow)

	assert.Equal(t, 1, srv.Stats().SnapshotPuts, "a burst of edits must coalesce into one save")
	snap, ok, _ := srv.Snapshot("student-1", a.ID)
	require.True(t, ok)
	assert.Equal(t, "final", snap.Code)

	session.Edit("later")
	time.Sleep(pastWindow)
	assert.Equal(t, 2, srv.Stats().SnapshotPuts, "an edit after a quiet gap saves again")
}

func TestBlurSavesImmediatelyAndCancelsDebounce(t *testing.T) {
	srv, client := newFixture(t)
	a := seedAssignment(srv, "lesson-1", "Loops", 1)

	session := newSession(client, "student-1", a.ID)
	require.NoError(t, session.Start(context.Background()))
	defer session.Close()

	session.Edit("typed right before leaving")
	session.Blur(context.Background())

	stats := srv.Stats()
	saves := stats.SnapshotPuts + stats.SnapshotPosts
	snap, ok, _ := srv.Snapshot("student-1", a.ID)
	require.True(t, ok)
	assert.Equal(t, "typed right before leaving", snap.Code)

	// The debounce armed by the edit must not fire a second save later.
	time.Sleep(pastWindow)
	after := srv.Stats()
	assert.Equal(t, saves, after.SnapshotPuts+after.SnapshotPosts)
}

func TestAutoSaveStatusCycle(t *testing.T) {
	srv, client := newFixture(t)
	a := seedAssignment(srv, "lesson-1", "Loops", 1)

	var seen []editor.AutoSaveStatus
	statusCh := make(chan editor.AutoSaveStatus, 16)

	session := newSession(client, "student-1", a.ID)
	session.OnAutoSaveStatus(func(s editor.AutoSaveStatus) { statusCh <- s })
	require.NoError(t, session.Start(context.Background()))
	defer session.Close()

	session.Edit("print(1)")
	session.Blur(context.Background())

	deadline := time.After(time.Second)
	for len(seen) < 3 {
		select {
		case s := <-statusCh:
			seen = append(seen, s)
		case <-deadline:
			t.Fatalf("timed out waiting for status transitions, saw %v", seen)
		}
	}
	assert.Equal(t, []editor.AutoSaveStatus{editor.AutoSaveSaving, editor.AutoSaveSaved, editor.AutoSaveIdle}, seen[:3])
}

func TestAutoSaveErrorIsNotRetried(t *testing.T) {
	srv, client := newFixture(t)
	a := seedAssignment(srv, "lesson-1", "Loops", 1)

	session := newSession(client, "student-1", a.ID)
	require.NoError(t, session.Start(context.Background()))
	defer session.Close()

	srv.FailSnapshotSaves = 1
	session.Edit("doomed")
	time.Sleep(pastWindow)
	assert.Equal(t, 1, srv.Stats().SnapshotPuts, "a failed save must not be retried on its own")

	// The next edit naturally re-attempts.
	session.Edit("recovered")
	time.Sleep(pastWindow)
	snap, ok, _ := srv.Snapshot("student-1", a.ID)
	require.True(t, ok)
	assert.Equal(t, "recovered", snap.Code)
}

func TestSubmitCreatesThenPatchesRecord(t *testing.T) {
	srv, client := newFixture(t)
	a := seedAssignment(srv, "lesson-1", "Loops", 1)

	session := newSession(client, "student-1", a.ID)
	require.NoError(t, session.Start(context.Background()))
	defer session.Close()

	session.Edit("print(1)")
	status, err := session.Submit(context.Background())
	require.NoError(t, err)
	assert.True(t, status.Submitted)
	require.NotNil(t, status.SubmittedAt)
	assert.Equal(t, 1, srv.Stats().SubmissionPosts)
	assert.Equal(t, 1, srv.SubmissionCount())

	// Second submit patches the same record instead of creating another.
	_, err = session.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, srv.Stats().SubmissionPosts)
	assert.GreaterOrEqual(t, srv.Stats().SubmissionPatches, 1)
	assert.Equal(t, 1, srv.SubmissionCount())
}

func TestSubmitRecreatesRecordDeletedOutOfBand(t *testing.T) {
	srv, client := newFixture(t)
	a := seedAssignment(srv, "lesson-1", "Loops", 1)

	session := newSession(client, "student-1", a.ID)
	require.NoError(t, session.Start(context.Background()))
	defer session.Close()

	first, err := session.Submit(context.Background())
	require.NoError(t, err)
	srv.DeleteSubmission(first.RecordID)

	second, err := session.Submit(context.Background())
	require.NoError(t, err)
	assert.True(t, second.Submitted)
	assert.NotEqual(t, first.RecordID, second.RecordID)
	assert.Equal(t, 1, srv.SubmissionCount())
}

func TestSubmitToleratesSaveFailure(t *testing.T) {
	srv, client := newFixture(t)
	a := seedAssignment(srv, "lesson-1", "Loops", 1)

	session := newSession(client, "student-1", a.ID)
	require.NoError(t, session.Start(context.Background()))
	defer session.Close()

	session.Edit("print(1)")
	// The pre-submit save fails; the submission must proceed anyway.
	srv.FailSnapshotSaves = 1
	status, err := session.Submit(context.Background())
	require.NoError(t, err)
	assert.True(t, status.Submitted)
}

func TestSubmitSyncsBufferBeforePersisting(t *testing.T) {
	srv, client := newFixture(t)
	a := seedAssignment(srv, "lesson-1", "Loops", 1)

	session := newSession(client, "student-1", a.ID)
	require.NoError(t, session.Start(context.Background()))
	defer session.Close()

	session.Edit("exactly what the student sees")
	_, err := session.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "exactly what the student sees", session.Code())
	snap, ok, _ := srv.Snapshot("student-1", a.ID)
	require.True(t, ok)
	assert.Equal(t, "exactly what the student sees", snap.Code)
}

func TestNavigationBoundaries(t *testing.T) {
	srv, client := newFixture(t)
	first := seedAssignment(srv, "lesson-1", "One", 1)
	middle := seedAssignment(srv, "lesson-1", "Two", 2)
	last := seedAssignment(srv, "lesson-1", "Three", 3)

	open := func(id string) *editor.Session {
		s := newSession(client, "student-1", id)
		require.NoError(t, s.Start(context.Background()))
		t.Cleanup(s.Close)
		return s
	}

	s := open(first.ID)
	_, hasPrev := s.Prev()
	next, hasNext := s.Next()
	assert.False(t, hasPrev)
	require.True(t, hasNext)
	assert.Equal(t, middle.ID, next)

	s = open(middle.ID)
	prev, hasPrev := s.Prev()
	next, hasNext = s.Next()
	require.True(t, hasPrev)
	require.True(t, hasNext)
	assert.Equal(t, first.ID, prev)
	assert.Equal(t, last.ID, next)

	s = open(last.ID)
	prev, hasPrev = s.Prev()
	_, hasNext = s.Next()
	require.True(t, hasPrev)
	assert.Equal(t, middle.ID, prev)
	assert.False(t, hasNext)
}

func TestPeriodicSaveFiresWithoutEdits(t *testing.T) {
	srv, client := newFixture(t)
	a := seedAssignment(srv, "lesson-1", "Loops", 1)

	session := editor.NewSession(client, editor.Config{
		DebounceDelay:    debounce,
		SaveInterval:     50 * time.Millisecond,
		SavedStatusDelay: 10 * time.Millisecond,
	}, "student-1", a.ID)
	require.NoError(t, session.Start(context.Background()))
	defer session.Close()

	time.Sleep(180 * time.Millisecond)
	stats := srv.Stats()
	assert.GreaterOrEqual(t, stats.SnapshotPuts+stats.SnapshotPosts, 2, "periodic fallback must keep saving without edits")
}
