package store_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VitoPython/EduLand-sub000/internal/api"
	"github.com/VitoPython/EduLand-sub000/internal/api/apitest"
	"github.com/VitoPython/EduLand-sub000/internal/cache"
	"github.com/VitoPython/EduLand-sub000/internal/model"
	"github.com/VitoPython/EduLand-sub000/internal/store"
)

func newCourseFixture(t *testing.T) (*apitest.Server, *api.Client, *cache.FileCache) {
	t.Helper()
	srv := apitest.New()
	t.Cleanup(srv.Close)
	client := api.New(srv.URL(), api.NewStaticTokenSource(apitest.Token), 5*time.Second)
	fileCache, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	return srv, client, fileCache
}

func TestCourseStoreLoadAndGet(t *testing.T) {
	srv, client, fileCache := newCourseFixture(t)
	seeded := srv.SeedCourse(model.Course{Title: "Python Basics"})
	srv.SeedCourse(model.Course{Title: "Web Development"})

	s := store.NewCourseStore(client, fileCache, time.Hour)
	require.NoError(t, s.Load(context.Background()))

	assert.Len(t, s.Courses(), 2)
	course, ok := s.Get(seeded.ID)
	require.True(t, ok)
	assert.Equal(t, "Python Basics", course.Title)

	_, ok = s.Get("missing")
	assert.False(t, ok)
}

func TestCourseStoreServesWarmCacheWhenBackendIsDown(t *testing.T) {
	srv, client, fileCache := newCourseFixture(t)
	srv.SeedCourse(model.Course{Title: "Python Basics"})

	warm := store.NewCourseStore(client, fileCache, time.Hour)
	require.NoError(t, warm.Refresh(context.Background()))

	srv.Close()

	cold := store.NewCourseStore(client, fileCache, time.Hour)
	require.NoError(t, cold.Load(context.Background()),
		"a warm cache bridges an unreachable backend")
	require.Len(t, cold.Courses(), 1)
	assert.Equal(t, "Python Basics", cold.Courses()[0].Title)

	// Guaranteed-fresh reads still fail against the dead backend.
	assert.Error(t, cold.Refresh(context.Background()))
	assert.Error(t, cold.Err())
}

func TestCourseStoreCorruptCacheFallsThroughToAPI(t *testing.T) {
	srv, client, fileCache := newCourseFixture(t)
	srv.SeedCourse(model.Course{Title: "Python Basics"})

	ctx := context.Background()
	fileCache.Set(ctx, "eduland:courses", []byte("not a course list"), time.Hour)

	s := store.NewCourseStore(client, fileCache, time.Hour)
	require.NoError(t, s.Load(ctx))
	require.Len(t, s.Courses(), 1)
	assert.Equal(t, "Python Basics", s.Courses()[0].Title)
}

func TestCourseStoreMutationsKeepStateAndCacheCurrent(t *testing.T) {
	srv, client, fileCache := newCourseFixture(t)

	s := store.NewCourseStore(client, fileCache, time.Hour)
	require.NoError(t, s.Load(context.Background()))
	assert.Empty(t, s.Courses())

	created, err := s.Create(context.Background(), api.CourseInput{Title: "Algorithms"})
	require.NoError(t, err)
	require.Len(t, s.Courses(), 1)

	updated, err := s.Update(context.Background(), created.ID, api.CourseInput{Title: "Algorithms II"})
	require.NoError(t, err)
	assert.Equal(t, "Algorithms II", updated.Title)
	course, ok := s.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, "Algorithms II", course.Title)

	// A second store sees the mutated list through the shared cache alone.
	srv.Close()
	other := store.NewCourseStore(client, fileCache, time.Hour)
	require.NoError(t, other.Load(context.Background()))
	require.Len(t, other.Courses(), 1)
	assert.Equal(t, "Algorithms II", other.Courses()[0].Title)
}

func TestCourseStoreDelete(t *testing.T) {
	srv, client, fileCache := newCourseFixture(t)
	seeded := srv.SeedCourse(model.Course{Title: "Python Basics"})

	s := store.NewCourseStore(client, fileCache, time.Hour)
	require.NoError(t, s.Load(context.Background()))

	require.NoError(t, s.Delete(context.Background(), seeded.ID))
	assert.Empty(t, s.Courses())
	_, ok := s.Get(seeded.ID)
	assert.False(t, ok)
}

func TestCourseStoreNilCacheIsNoop(t *testing.T) {
	srv, client, _ := newCourseFixture(t)
	srv.SeedCourse(model.Course{Title: "Python Basics"})

	s := store.NewCourseStore(client, nil, time.Hour)
	require.NoError(t, s.Load(context.Background()))
	assert.Len(t, s.Courses(), 1)
}

func TestCourseStoreExpiredCacheEntryIsIgnored(t *testing.T) {
	srv, client, _ := newCourseFixture(t)
	srv.SeedCourse(model.Course{Title: "Python Basics"})

	dir := t.TempDir()
	fileCache, err := cache.NewFileCache(dir)
	require.NoError(t, err)

	s := store.NewCourseStore(client, fileCache, 10*time.Millisecond)
	require.NoError(t, s.Refresh(context.Background()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.NotEmpty(t, entries, "refresh persists the list for warm reload")
	time.Sleep(20 * time.Millisecond)

	srv.SeedCourse(model.Course{Title: "Web Development"})
	cold := store.NewCourseStore(client, fileCache, 10*time.Millisecond)
	require.NoError(t, cold.Load(context.Background()))
	assert.Len(t, cold.Courses(), 2, "an expired cache entry falls through to the backend")
}
