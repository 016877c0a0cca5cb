// Package apitest runs an in-memory EduLand API double for tests: chi routes
// over maps, with the upsert and 404 semantics the real backend exposes, plus
// counters and failure switches for exercising client failure paths.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/VitoPython/EduLand-sub000/internal/model"
)

const Token = "test-session-token"

type Server struct {
	srv *httptest.Server

	mu          sync.Mutex
	courses     map[string]model.Course
	lessons     map[string]model.Lesson
	assignments map[string]model.Assignment
	students    map[string]model.Student
	grades      map[string]model.Grade
	snapshots   map[string]model.CodeSnapshot      // keyed student|assignment
	submissions map[string]model.SubmissionRecord  // keyed by record id
	files       map[string][]byte
	seq         int

	// Counters for asserting on call volume.
	SnapshotPuts      int
	SnapshotPosts     int
	SubmissionPosts   int
	SubmissionPatches int
	GradeLists        int
	SubmissionGets    int
	InFlight          int
	MaxInFlight       int

	// Failure switches. When non-zero the matching handlers answer with that
	// status instead of their normal behavior.
	FailSnapshotSaves     int
	FailSubmissionFetches int

	// GradeListDelay makes grade list calls dwell, exposing how many overlap.
	GradeListDelay time.Duration
}

func New() *Server {
	s := &Server{
		courses:     make(map[string]model.Course),
		lessons:     make(map[string]model.Lesson),
		assignments: make(map[string]model.Assignment),
		students:    make(map[string]model.Student),
		grades:      make(map[string]model.Grade),
		snapshots:   make(map[string]model.CodeSnapshot),
		submissions: make(map[string]model.SubmissionRecord),
		files:       make(map[string][]byte),
	}

	r := chi.NewRouter()
	r.Use(s.requireBearer)

	r.Route("/courses", func(r chi.Router) {
		r.Get("/", s.listCourses)
		r.Post("/", s.createCourse)
		r.Get("/{id}", s.getCourse)
		r.Put("/{id}", s.updateCourse)
		r.Delete("/{id}", s.deleteCourse)
	})
	r.Route("/lessons", func(r chi.Router) {
		r.Get("/", s.listLessons)
		r.Post("/", s.createLesson)
	})
	r.Route("/assignments", func(r chi.Router) {
		r.Get("/", s.listAssignments)
		r.Post("/", s.createAssignment)
		r.Get("/{id}", s.getAssignment)
	})
	r.Route("/students", func(r chi.Router) {
		r.Get("/", s.listStudents)
		r.Post("/", s.createStudent)
	})
	r.Route("/grades", func(r chi.Router) {
		r.Get("/", s.listGrades)
		r.Post("/", s.createGrade)
	})
	r.Route("/code-snapshots", func(r chi.Router) {
		r.Post("/", s.createSnapshot)
		r.Get("/{studentID}/{assignmentID}", s.getSnapshot)
		r.Put("/{studentID}/{assignmentID}", s.updateSnapshot)
	})
	r.Route("/submissions", func(r chi.Router) {
		r.Get("/", s.listSubmissions)
		r.Post("/", s.createSubmission)
		r.Get("/{studentID}/{assignmentID}", s.getSubmissionForAssignment)
		r.Patch("/{id}", s.patchSubmission)
	})
	r.Get("/files/*", s.serveFile)

	s.srv = httptest.NewServer(r)
	return s
}

func (s *Server) URL() string { return s.srv.URL }
func (s *Server) Close()      { s.srv.Close() }

func (s *Server) requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+Token {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) nextID() string {
	s.seq++
	return uuid.NewString()
}

// ── seeding ─────────────────────────────────────────────────────────

func (s *Server) SeedCourse(c model.Course) model.Course {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == "" {
		c.ID = s.nextID()
	}
	s.courses[c.ID] = c
	return c
}

func (s *Server) SeedStudent(st model.Student) model.Student {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st.ID == "" {
		st.ID = s.nextID()
	}
	s.students[st.ID] = st
	return st
}

func (s *Server) SeedAssignment(a model.Assignment) model.Assignment {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == "" {
		a.ID = s.nextID()
	}
	s.assignments[a.ID] = a
	return a
}

func (s *Server) SeedLesson(l model.Lesson) model.Lesson {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l.ID == "" {
		l.ID = s.nextID()
	}
	s.lessons[l.ID] = l
	return l
}

func (s *Server) SeedGrade(g model.Grade) model.Grade {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g.ID == "" {
		g.ID = s.nextID()
	}
	s.grades[g.ID] = g
	return g
}

func (s *Server) SeedSubmission(rec model.SubmissionRecord) model.SubmissionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec.ID == "" {
		rec.ID = s.nextID()
	}
	s.submissions[rec.ID] = rec
	return rec
}

func (s *Server) SeedFile(path string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path] = data
}

// Stats is a consistent copy of the call counters.
type Stats struct {
	SnapshotPuts      int
	SnapshotPosts     int
	SubmissionPosts   int
	SubmissionPatches int
	GradeLists        int
	SubmissionGets    int
	MaxInFlight       int
}

func (s *Server) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		SnapshotPuts:      s.SnapshotPuts,
		SnapshotPosts:     s.SnapshotPosts,
		SubmissionPosts:   s.SubmissionPosts,
		SubmissionPatches: s.SubmissionPatches,
		GradeLists:        s.GradeLists,
		SubmissionGets:    s.SubmissionGets,
		MaxInFlight:       s.MaxInFlight,
	}
}

// Snapshot returns the stored snapshot for a pair, and how many snapshots
// exist in total.
func (s *Server) Snapshot(studentID, assignmentID string) (model.CodeSnapshot, bool, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.snapshots[studentID+"|"+assignmentID]
	return snap, ok, len(s.snapshots)
}

func (s *Server) SubmissionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.submissions)
}

func (s *Server) SubmissionByID(id string) (model.SubmissionRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.submissions[id]
	return rec, ok
}

func (s *Server) DeleteSubmission(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.submissions, id)
}

// ── courses ─────────────────────────────────────────────────────────

func (s *Server) listCourses(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	out := make([]model.Course, 0, len(s.courses))
	for _, c := range s.courses {
		out = append(out, c)
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createCourse(w http.ResponseWriter, r *http.Request) {
	var in model.Course
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad body"})
		return
	}
	s.mu.Lock()
	in.ID = s.nextID()
	in.CreatedAt = time.Now().UTC()
	in.UpdatedAt = in.CreatedAt
	s.courses[in.ID] = in
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, in)
}

func (s *Server) getCourse(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	c, ok := s.courses[chi.URLParam(r, "id")]
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "course not found"})
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) updateCourse(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var in model.Course
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad body"})
		return
	}
	s.mu.Lock()
	c, ok := s.courses[id]
	if ok {
		c.Title = in.Title
		c.Description = in.Description
		c.UpdatedAt = time.Now().UTC()
		s.courses[id] = c
	}
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "course not found"})
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) deleteCourse(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	delete(s.courses, chi.URLParam(r, "id"))
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

// ── lessons / assignments / students ────────────────────────────────

func (s *Server) listLessons(w http.ResponseWriter, r *http.Request) {
	courseID := r.URL.Query().Get("course_id")
	s.mu.Lock()
	out := make([]model.Lesson, 0)
	for _, l := range s.lessons {
		if courseID == "" || l.CourseID == courseID {
			out = append(out, l)
		}
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createLesson(w http.ResponseWriter, r *http.Request) {
	var in model.Lesson
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad body"})
		return
	}
	s.mu.Lock()
	in.ID = s.nextID()
	s.lessons[in.ID] = in
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, in)
}

func (s *Server) listAssignments(w http.ResponseWriter, r *http.Request) {
	lessonID := r.URL.Query().Get("lesson_id")
	s.mu.Lock()
	out := make([]model.Assignment, 0)
	for _, a := range s.assignments {
		if lessonID == "" || a.LessonID == lessonID {
			out = append(out, a)
		}
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createAssignment(w http.ResponseWriter, r *http.Request) {
	var in model.Assignment
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad body"})
		return
	}
	s.mu.Lock()
	in.ID = s.nextID()
	s.assignments[in.ID] = in
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, in)
}

func (s *Server) getAssignment(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	a, ok := s.assignments[chi.URLParam(r, "id")]
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "assignment not found"})
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) listStudents(w http.ResponseWriter, r *http.Request) {
	groupID := r.URL.Query().Get("group_id")
	s.mu.Lock()
	out := make([]model.Student, 0)
	for _, st := range s.students {
		if groupID == "" || st.GroupID == groupID {
			out = append(out, st)
		}
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].LastName < out[j].LastName })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createStudent(w http.ResponseWriter, r *http.Request) {
	var in model.Student
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad body"})
		return
	}
	s.mu.Lock()
	in.ID = s.nextID()
	s.students[in.ID] = in
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, in)
}

// ── grades ──────────────────────────────────────────────────────────

func (s *Server) listGrades(w http.ResponseWriter, r *http.Request) {
	studentID := r.URL.Query().Get("student_id")
	assignmentID := r.URL.Query().Get("assignment_id")
	s.mu.Lock()
	s.GradeLists++
	s.trackInFlightLocked()
	delay := s.GradeListDelay
	out := make([]model.Grade, 0)
	for _, g := range s.grades {
		if studentID != "" && g.StudentID != studentID {
			continue
		}
		if assignmentID != "" && g.AssignmentID != assignmentID {
			continue
		}
		out = append(out, g)
	}
	s.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}
	s.releaseInFlight()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createGrade(w http.ResponseWriter, r *http.Request) {
	var in model.Grade
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad body"})
		return
	}
	s.mu.Lock()
	in.ID = s.nextID()
	in.GradedAt = time.Now().UTC()
	s.grades[in.ID] = in
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, in)
}

// ── code snapshots ──────────────────────────────────────────────────

func (s *Server) getSnapshot(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "studentID") + "|" + chi.URLParam(r, "assignmentID")
	s.mu.Lock()
	snap, ok := s.snapshots[key]
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "snapshot not found"})
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) updateSnapshot(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "studentID") + "|" + chi.URLParam(r, "assignmentID")
	var in struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad body"})
		return
	}
	s.mu.Lock()
	s.SnapshotPuts++
	if s.FailSnapshotSaves > 0 {
		s.FailSnapshotSaves--
		s.mu.Unlock()
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "save rejected"})
		return
	}
	snap, ok := s.snapshots[key]
	if ok {
		snap.Code = in.Code
		snap.SavedAt = time.Now().UTC()
		s.snapshots[key] = snap
	}
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "snapshot not found"})
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) createSnapshot(w http.ResponseWriter, r *http.Request) {
	var in model.CodeSnapshot
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad body"})
		return
	}
	s.mu.Lock()
	s.SnapshotPosts++
	if s.FailSnapshotSaves > 0 {
		s.FailSnapshotSaves--
		s.mu.Unlock()
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "save rejected"})
		return
	}
	in.ID = s.nextID()
	in.SavedAt = time.Now().UTC()
	s.snapshots[in.StudentID+"|"+in.AssignmentID] = in
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, in)
}

// ── submissions ─────────────────────────────────────────────────────

func (s *Server) listSubmissions(w http.ResponseWriter, r *http.Request) {
	lessonID := r.URL.Query().Get("lesson_id")
	s.mu.Lock()
	out := make([]model.SubmissionRecord, 0)
	for _, rec := range s.submissions {
		if lessonID == "" || rec.LessonID == lessonID {
			out = append(out, rec)
		}
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getSubmissionForAssignment(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "studentID")
	assignmentID := chi.URLParam(r, "assignmentID")
	s.mu.Lock()
	s.SubmissionGets++
	if s.FailSubmissionFetches > 0 {
		s.FailSubmissionFetches--
		s.mu.Unlock()
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "status unavailable"})
		return
	}
	var found *model.SubmissionRecord
	for _, rec := range s.submissions {
		if rec.StudentID == studentID && rec.AssignmentID == assignmentID {
			recCopy := rec
			found = &recCopy
			break
		}
	}
	s.mu.Unlock()
	if found == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "submission not found"})
		return
	}
	writeJSON(w, http.StatusOK, found)
}

func (s *Server) createSubmission(w http.ResponseWriter, r *http.Request) {
	var in model.SubmissionRecord
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad body"})
		return
	}
	s.mu.Lock()
	s.SubmissionPosts++
	in.ID = s.nextID()
	if in.Submitted && in.SubmittedAt == nil {
		now := time.Now().UTC()
		in.SubmittedAt = &now
	}
	s.submissions[in.ID] = in
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, in)
}

func (s *Server) patchSubmission(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var patch struct {
		Submitted   *bool      `json:"submitted"`
		SubmittedAt *time.Time `json:"submitted_at"`
	}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad body"})
		return
	}
	s.mu.Lock()
	s.SubmissionPatches++
	rec, ok := s.submissions[id]
	if ok {
		if patch.Submitted != nil {
			rec.Submitted = *patch.Submitted
		}
		if patch.SubmittedAt != nil {
			rec.SubmittedAt = patch.SubmittedAt
		}
		s.submissions[id] = rec
	}
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "submission not found"})
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// ── files ───────────────────────────────────────────────────────────

func (s *Server) serveFile(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/files/")
	s.mu.Lock()
	data, ok := s.files[path]
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "file not found"})
		return
	}
	_, _ = w.Write(data)
}

// ── concurrency tracking ────────────────────────────────────────────

func (s *Server) trackInFlightLocked() {
	s.InFlight++
	if s.InFlight > s.MaxInFlight {
		s.MaxInFlight = s.InFlight
	}
}

func (s *Server) releaseInFlight() {
	s.mu.Lock()
	s.InFlight--
	s.mu.Unlock()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
