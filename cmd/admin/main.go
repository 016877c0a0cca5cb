// The admin command is the dashboard counterpart of portal: course, lesson,
// assignment, student, grade and attendance management, the submissions table
// and the lesson roster overview.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/VitoPython/EduLand-sub000/internal/api"
	"github.com/VitoPython/EduLand-sub000/internal/cache"
	"github.com/VitoPython/EduLand-sub000/internal/config"
	"github.com/VitoPython/EduLand-sub000/internal/logging"
	"github.com/VitoPython/EduLand-sub000/internal/model"
	"github.com/VitoPython/EduLand-sub000/internal/roster"
	"github.com/VitoPython/EduLand-sub000/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	zapLogger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	logger := logging.New(zapLogger)
	defer func() { _ = logger.Sync() }()
	ctx = logging.ContextWithLogger(ctx, logger)

	cfg, err := config.New()
	if err != nil {
		logger.Fatal(ctx, "cannot create config", zap.Error(err))
	}

	var tokens api.TokenSource
	if cfg.SessionTokenFile != "" {
		tokens = api.NewFileTokenSource(cfg.SessionTokenFile)
	} else {
		tokens = api.NewStaticTokenSource(cfg.SessionToken)
	}
	client := api.New(cfg.APIBaseURL, tokens, cfg.HTTPTimeout)
	client.OnUnauthorized(func() {
		logger.Warn(ctx, "session expired, sign in again with your identity provider")
	})

	var warm cache.Cache = cache.Noop{}
	if cfg.RedisURL != "" {
		warm = cache.NewRedisCache(redis.NewClient(&redis.Options{Addr: cfg.RedisURL}))
	} else if cfg.CacheDir != "" {
		if fc, err := cache.NewFileCache(cfg.CacheDir); err == nil {
			warm = fc
		}
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "courses":
		runCourses(ctx, client, warm, cfg, logger)
	case "lessons":
		runLessons(ctx, client, warm, cfg, logger)
	case "assignments":
		runAssignments(ctx, client, logger)
	case "groups":
		runGroups(ctx, client, logger)
	case "enroll":
		runEnroll(ctx, client, logger)
	case "students":
		runStudents(ctx, client, logger)
	case "grade":
		runGrade(ctx, client, logger)
	case "attendance":
		runAttendance(ctx, client, logger)
	case "submissions":
		runSubmissions(ctx, client, logger)
	case "roster":
		runRoster(ctx, client, cfg, logger)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  admin courses list
  admin courses create <title>
  admin lessons list <course-id>
  admin lessons create <course-id> <title> <position>
  admin assignments list <lesson-id>
  admin assignments create <lesson-id> <title> <position>
  admin groups list
  admin groups create <name>
  admin enroll <student-id> <course-id>
  admin students list [group-id]
  admin grade <student-id> <assignment-id> <value>
  admin attendance <student-id> <lesson-id> <present|absent|late|excused>
  admin submissions <lesson-id>
  admin roster <lesson-id> <group-id>`)
}

func runCourses(ctx context.Context, client *api.Client, warm cache.Cache, cfg *config.Config, logger *logging.Logger) {
	courses := store.NewCourseStore(client, warm, cfg.CacheTTL)
	if len(os.Args) >= 4 && os.Args[2] == "create" {
		course, err := courses.Create(ctx, api.CourseInput{Title: os.Args[3]})
		if err != nil {
			logger.Fatal(ctx, "cannot create course", zap.Error(err))
		}
		fmt.Println(course.ID)
		return
	}
	if err := courses.Load(ctx); err != nil {
		logger.Fatal(ctx, "cannot load courses", zap.Error(err))
	}
	for _, c := range courses.Courses() {
		fmt.Printf("%s\t%s\n", c.ID, c.Title)
	}
}

func runLessons(ctx context.Context, client *api.Client, warm cache.Cache, cfg *config.Config, logger *logging.Logger) {
	if len(os.Args) < 4 {
		usage()
		os.Exit(2)
	}
	lessons := store.NewLessonStore(client, warm, cfg.CacheTTL)
	if os.Args[2] == "create" {
		if len(os.Args) < 6 {
			usage()
			os.Exit(2)
		}
		position, err := strconv.Atoi(os.Args[5])
		if err != nil {
			logger.Fatal(ctx, "position must be an integer", zap.Error(err))
		}
		lesson, err := lessons.Create(ctx, api.LessonInput{
			CourseID: os.Args[3],
			Title:    os.Args[4],
			Position: position,
		})
		if err != nil {
			logger.Fatal(ctx, "cannot create lesson", zap.Error(err))
		}
		fmt.Println(lesson.ID)
		return
	}
	if err := lessons.Load(ctx, os.Args[3]); err != nil {
		logger.Fatal(ctx, "cannot load lessons", zap.Error(err))
	}
	for _, l := range lessons.Lessons() {
		fmt.Printf("%s\t%d\t%s\n", l.ID, l.Position, l.Title)
	}
}

func runAssignments(ctx context.Context, client *api.Client, logger *logging.Logger) {
	if len(os.Args) < 4 {
		usage()
		os.Exit(2)
	}
	assignments := store.NewAssignmentStore(client)
	if os.Args[2] == "create" {
		if len(os.Args) < 6 {
			usage()
			os.Exit(2)
		}
		position, err := strconv.Atoi(os.Args[5])
		if err != nil {
			logger.Fatal(ctx, "position must be an integer", zap.Error(err))
		}
		assignment, err := assignments.Create(ctx, api.AssignmentInput{
			LessonID: os.Args[3],
			Title:    os.Args[4],
			Position: position,
		})
		if err != nil {
			logger.Fatal(ctx, "cannot create assignment", zap.Error(err))
		}
		fmt.Println(assignment.ID)
		return
	}
	if err := assignments.Load(ctx, os.Args[3]); err != nil {
		logger.Fatal(ctx, "cannot load assignments", zap.Error(err))
	}
	for _, a := range assignments.Assignments() {
		fmt.Printf("%s\t%d\t%s\n", a.ID, a.Position, a.Title)
	}
}

func runGroups(ctx context.Context, client *api.Client, logger *logging.Logger) {
	groups := store.NewGroupStore(client)
	if len(os.Args) >= 4 && os.Args[2] == "create" {
		group, err := groups.Create(ctx, api.GroupInput{Name: os.Args[3]})
		if err != nil {
			logger.Fatal(ctx, "cannot create group", zap.Error(err))
		}
		fmt.Println(group.ID)
		return
	}
	if err := groups.Load(ctx); err != nil {
		logger.Fatal(ctx, "cannot load groups", zap.Error(err))
	}
	for _, g := range groups.Groups() {
		fmt.Printf("%s\t%s\n", g.ID, g.Name)
	}
}

func runEnroll(ctx context.Context, client *api.Client, logger *logging.Logger) {
	if len(os.Args) < 4 {
		usage()
		os.Exit(2)
	}
	enrollments := store.NewEnrollmentStore(client)
	enrollment, err := enrollments.Enroll(ctx, api.EnrollmentInput{
		StudentID: os.Args[2],
		CourseID:  os.Args[3],
	})
	if err != nil {
		logger.Fatal(ctx, "cannot enroll student", zap.Error(err))
	}
	fmt.Println(enrollment.ID)
}

func runStudents(ctx context.Context, client *api.Client, logger *logging.Logger) {
	groupID := ""
	if len(os.Args) >= 4 {
		groupID = os.Args[3]
	}
	students := store.NewStudentStore(client)
	if err := students.Load(ctx, groupID); err != nil {
		logger.Fatal(ctx, "cannot load students", zap.Error(err))
	}
	for _, st := range students.Students() {
		fmt.Printf("%s\t%s %s\t%s\n", st.ID, st.FirstName, st.LastName, st.Email)
	}
}

func runGrade(ctx context.Context, client *api.Client, logger *logging.Logger) {
	if len(os.Args) < 5 {
		usage()
		os.Exit(2)
	}
	value, err := strconv.ParseFloat(os.Args[4], 64)
	if err != nil {
		logger.Fatal(ctx, "grade value must be a number", zap.Error(err))
	}
	grades := store.NewGradeStore(client)
	grade, err := grades.Assign(ctx, api.GradeInput{
		StudentID:    os.Args[2],
		AssignmentID: os.Args[3],
		Value:        value,
	})
	if err != nil {
		logger.Fatal(ctx, "cannot assign grade", zap.Error(err))
	}
	fmt.Println(grade.ID)
}

func runAttendance(ctx context.Context, client *api.Client, logger *logging.Logger) {
	if len(os.Args) < 5 {
		usage()
		os.Exit(2)
	}
	attendance := store.NewAttendanceStore(client)
	record, err := attendance.Mark(ctx, api.AttendanceInput{
		StudentID: os.Args[2],
		LessonID:  os.Args[3],
		Status:    model.AttendanceStatus(os.Args[4]),
	})
	if err != nil {
		logger.Fatal(ctx, "cannot mark attendance", zap.Error(err))
	}
	fmt.Println(record.ID)
}

func runSubmissions(ctx context.Context, client *api.Client, logger *logging.Logger) {
	if len(os.Args) < 3 {
		usage()
		os.Exit(2)
	}
	submissions := store.NewSubmissionStore(client)
	if err := submissions.Load(ctx, os.Args[2]); err != nil {
		logger.Fatal(ctx, "cannot load submissions", zap.Error(err))
	}
	for _, rec := range submissions.Submissions() {
		state := "pending"
		if rec.Submitted {
			state = "submitted"
		}
		fmt.Printf("%s\t%s\t%s\n", rec.ID, rec.StudentID, state)
	}
}

func runRoster(ctx context.Context, client *api.Client, cfg *config.Config, logger *logging.Logger) {
	if len(os.Args) < 4 {
		usage()
		os.Exit(2)
	}
	lessonID, groupID := os.Args[2], os.Args[3]

	students, err := client.ListStudents(ctx, groupID)
	if err != nil {
		logger.Fatal(ctx, "cannot load students", zap.Error(err))
	}
	assignments, err := client.ListAssignments(ctx, lessonID)
	if err != nil {
		logger.Fatal(ctx, "cannot load assignments", zap.Error(err))
	}

	overview := roster.NewLoader(client, cfg.RosterConcurrency).Load(ctx, students, assignments)
	for _, st := range students {
		fmt.Printf("%s %s:", st.FirstName, st.LastName)
		for _, a := range assignments {
			cell, ok := overview.Cell(st.ID, a.ID)
			switch {
			case !ok || cell.Err != nil:
				fmt.Print("\t?")
			case cell.Grade != nil:
				fmt.Printf("\t%g", cell.Grade.Value)
			case cell.Submission != nil && cell.Submission.Submitted:
				fmt.Print("\t✓")
			default:
				fmt.Print("\t-")
			}
		}
		fmt.Println()
	}
	if failed := overview.Failed(); len(failed) > 0 {
		logger.Warn(ctx, "some roster cells failed to load", zap.Int("count", len(failed)))
	}
}
