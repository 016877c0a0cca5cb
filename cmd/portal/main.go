// The portal command is the student-facing front end: it lists lessons and
// assignments, runs an editor session against a local file (your own editor
// plays the code editor; saves are detected by polling the file) and records
// submissions.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/VitoPython/EduLand-sub000/internal/api"
	"github.com/VitoPython/EduLand-sub000/internal/cache"
	"github.com/VitoPython/EduLand-sub000/internal/config"
	"github.com/VitoPython/EduLand-sub000/internal/editor"
	"github.com/VitoPython/EduLand-sub000/internal/logging"
	"github.com/VitoPython/EduLand-sub000/internal/store"
)

const pollInterval = 500 * time.Millisecond

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

	client := newClient(cfg)
	client.OnUnauthorized(func() {
		logger.Warn(ctx, "session expired, sign in again with your identity provider")
	})

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "lessons":
		runLessons(ctx, cfg, client, logger)
	case "assignments":
		runAssignments(ctx, client)
	case "edit":
		runEdit(ctx, cfg, client, logger)
	case "submit":
		runSubmit(ctx, cfg, client, logger)
	case "status":
		runStatus(ctx, client)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  portal lessons <course-id>
  portal assignments <lesson-id>
  portal edit <student-id> <assignment-id> <file>
  portal submit <student-id> <assignment-id> <file>
  portal status <student-id> <assignment-id>`)
}

func newClient(cfg *config.Config) *api.Client {
	var tokens api.TokenSource
	if cfg.SessionTokenFile != "" {
		tokens = api.NewFileTokenSource(cfg.SessionTokenFile)
	} else {
		tokens = api.NewStaticTokenSource(cfg.SessionToken)
	}
	return api.New(cfg.APIBaseURL, tokens, cfg.HTTPTimeout)
}

func newCache(cfg *config.Config) cache.Cache {
	if cfg.RedisURL != "" {
		return cache.NewRedisCache(redis.NewClient(&redis.Options{Addr: cfg.RedisURL}))
	}
	if cfg.CacheDir != "" {
		if fc, err := cache.NewFileCache(cfg.CacheDir); err == nil {
			return fc
		}
	}
	return cache.Noop{}
}

func runLessons(ctx context.Context, cfg *config.Config, client *api.Client, logger *logging.Logger) {
	if len(os.Args) < 3 {
		usage()
		os.Exit(2)
	}
	lessons := store.NewLessonStore(client, newCache(cfg), cfg.CacheTTL)
	if err := lessons.Load(ctx, os.Args[2]); err != nil {
		logger.Fatal(ctx, "cannot load lessons", zap.Error(err))
	}
	for _, l := range lessons.Lessons() {
		fmt.Printf("%s\t%s\n", l.ID, l.Title)
	}
}

func runAssignments(ctx context.Context, client *api.Client) {
	if len(os.Args) < 3 {
		usage()
		os.Exit(2)
	}
	assignments, err := client.ListAssignments(ctx, os.Args[2])
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot load assignments:", err)
		os.Exit(1)
	}
	for _, a := range assignments {
		fmt.Printf("%s\t%s\n", a.ID, a.Title)
	}
}

func runEdit(ctx context.Context, cfg *config.Config, client *api.Client, logger *logging.Logger) {
	if len(os.Args) < 5 {
		usage()
		os.Exit(2)
	}
	studentID, assignmentID, path := os.Args[2], os.Args[3], os.Args[4]

	session := editor.NewSession(client, editor.Config{
		DebounceDelay:    cfg.AutosaveDebounce,
		SaveInterval:     cfg.AutosaveInterval,
		SavedStatusDelay: cfg.SavedStatusDelay,
	}, studentID, assignmentID)
	session.OnAutoSaveStatus(func(status editor.AutoSaveStatus) {
		fmt.Printf("\r[autosave: %s] ", status)
	})

	if err := session.Start(ctx); err != nil {
		logger.Fatal(ctx, "cannot open editor session", zap.Error(err))
	}
	defer session.Close()

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(path, []byte(session.Buffer()), 0o600); err != nil {
			logger.Fatal(ctx, "cannot seed local file", zap.Error(err))
		}
	}

	fmt.Printf("editing %q in %s; press Ctrl-C to save and leave\n", session.Assignment().Title, path)
	watchFile(ctx, path, session)

	// Leaving the editor is the blur: cancel any pending debounce and save
	// what is on disk right now.
	flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.HTTPTimeout)
	defer cancel()
	session.Blur(logging.ContextWithLogger(flushCtx, logger))
	fmt.Println("\nsession saved")
}

// watchFile feeds local file changes into the session until ctx is done.
func watchFile(ctx context.Context, path string, session *editor.Session) {
	var lastMod time.Time
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			info, err := os.Stat(path)
			if err != nil || !info.ModTime().After(lastMod) {
				continue
			}
			lastMod = info.ModTime()
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			session.Edit(string(data))
		}
	}
}

func runSubmit(ctx context.Context, cfg *config.Config, client *api.Client, logger *logging.Logger) {
	if len(os.Args) < 5 {
		usage()
		os.Exit(2)
	}
	studentID, assignmentID, path := os.Args[2], os.Args[3], os.Args[4]

	session := editor.NewSession(client, editor.Config{
		DebounceDelay:    cfg.AutosaveDebounce,
		SaveInterval:     cfg.AutosaveInterval,
		SavedStatusDelay: cfg.SavedStatusDelay,
	}, studentID, assignmentID)
	if err := session.Start(ctx); err != nil {
		logger.Fatal(ctx, "cannot open editor session", zap.Error(err))
	}
	defer session.Close()

	if data, err := os.ReadFile(path); err == nil {
		session.Edit(string(data))
	}

	status, err := session.Submit(ctx)
	if err != nil {
		// No automatic retry: surface the error and leave re-running this
		// command as the manual retry.
		fmt.Fprintln(os.Stderr, "submit failed:", err)
		fmt.Fprintln(os.Stderr, "run the command again to retry")
		os.Exit(1)
	}
	if status.SubmittedAt != nil {
		fmt.Printf("submitted at %s\n", status.SubmittedAt.Format(time.RFC3339))
	} else {
		fmt.Println("submitted")
	}
}

func runStatus(ctx context.Context, client *api.Client) {
	if len(os.Args) < 4 {
		usage()
		os.Exit(2)
	}
	record, err := client.GetSubmissionForAssignment(ctx, os.Args[2], os.Args[3])
	switch {
	case errors.Is(err, api.ErrNotFound):
		fmt.Println("not submitted")
	case err != nil:
		fmt.Fprintln(os.Stderr, "submission status unknown:", err)
		os.Exit(1)
	case record.Submitted && record.SubmittedAt != nil:
		fmt.Printf("submitted at %s\n", record.SubmittedAt.Format(time.RFC3339))
	case record.Submitted:
		fmt.Println("submitted")
	default:
		fmt.Println("not submitted")
	}
}
