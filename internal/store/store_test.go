package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rribeiro/folio/internal/api"
	"github.com/rribeiro/folio/internal/model"
)

func jsonResponse(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func newTestProjects(handler http.HandlerFunc) (*Projects, *httptest.Server) {
	srv := httptest.NewServer(handler)
	client := api.New(srv.URL, func() string { return "test-token" })
	return NewProjects(client, false), srv
}

func TestFetchAll_PopulatesCollection(t *testing.T) {
	s, srv := newTestProjects(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/projects/admin/all", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		jsonResponse(w, 200, []map[string]any{{"_id": "1", "title": "A"}})
	})
	defer srv.Close()

	items, err := s.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "1", items[0].ID)
	assert.Equal(t, "A", items[0].Title)
	assert.Empty(t, s.Err())
	assert.WithinDuration(t, time.Now(), s.LastFetch(), 5*time.Second)
}

func TestFetchAll_ServesCacheWithinStalenessWindow(t *testing.T) {
	var calls atomic.Int64
	s, srv := newTestProjects(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		jsonResponse(w, 200, []map[string]any{{"_id": "1", "title": "A"}})
	})
	defer srv.Close()

	_, err := s.FetchAll(context.Background())
	require.NoError(t, err)
	_, err = s.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), calls.Load())
}

func TestFetchAll_RefetchesAfterWindowElapses(t *testing.T) {
	var calls atomic.Int64
	s, srv := newTestProjects(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		jsonResponse(w, 200, []map[string]any{{"_id": "1", "title": "A"}})
	})
	defer srv.Close()

	now := time.Now()
	s.Collection.now = func() time.Time { return now }

	_, err := s.FetchAll(context.Background())
	require.NoError(t, err)

	now = now.Add(StaleAfter + time.Second)
	_, err = s.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), calls.Load())
}

func TestFetchAll_LoadingOnlyDuringRequest(t *testing.T) {
	var s *Projects
	var loadingDuring bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		loadingDuring = s.Loading()
		jsonResponse(w, 200, []map[string]any{})
	}))
	defer srv.Close()
	s = NewProjects(api.New(srv.URL, nil), false)

	assert.False(t, s.Loading())
	_, err := s.FetchAll(context.Background())
	require.NoError(t, err)
	assert.True(t, loadingDuring)
	assert.False(t, s.Loading())
}

func TestFetchAll_RecordsServerErrorMessage(t *testing.T) {
	s, srv := newTestProjects(func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, 500, map[string]any{"message": "boom"})
	})
	defer srv.Close()

	_, err := s.FetchAll(context.Background())
	require.Error(t, err)
	assert.Equal(t, "boom", err.Error())
	assert.Equal(t, "boom", s.Err())
	assert.False(t, s.Loading())
	assert.Zero(t, s.Len())
}

func TestFetchAll_ErrorClearedOnNextAttempt(t *testing.T) {
	fail := true
	s, srv := newTestProjects(func(w http.ResponseWriter, r *http.Request) {
		if fail {
			jsonResponse(w, 500, map[string]any{"message": "boom"})
			return
		}
		jsonResponse(w, 200, []map[string]any{{"_id": "1", "title": "A"}})
	})
	defer srv.Close()

	_, err := s.FetchAll(context.Background())
	require.Error(t, err)
	require.Equal(t, "boom", s.Err())

	fail = false
	_, err = s.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, s.Err())
}

func TestFetchAll_FailureKeepsStaleCollection(t *testing.T) {
	fail := false
	s, srv := newTestProjects(func(w http.ResponseWriter, r *http.Request) {
		if fail {
			jsonResponse(w, 503, map[string]any{"message": "down"})
			return
		}
		jsonResponse(w, 200, []map[string]any{{"_id": "1", "title": "A"}})
	})
	defer srv.Close()

	now := time.Now()
	s.Collection.now = func() time.Time { return now }
	_, err := s.FetchAll(context.Background())
	require.NoError(t, err)

	fail = true
	now = now.Add(StaleAfter + time.Second)
	_, err = s.FetchAll(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, s.Len())
}

func TestCreate_TriggersExactlyOneRefresh(t *testing.T) {
	var calls atomic.Int64
	s, srv := newTestProjects(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		switch r.Method {
		case "POST":
			assert.Equal(t, "/projects", r.URL.Path)
			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)
			assert.Equal(t, "X", body["title"])
			jsonResponse(w, 201, map[string]any{"_id": "9", "title": "X"})
		default:
			jsonResponse(w, 200, []map[string]any{{"_id": "9", "title": "X"}})
		}
	})
	defer srv.Close()

	created, err := s.Create(context.Background(), map[string]any{"title": "X"})
	require.NoError(t, err)
	assert.Equal(t, "9", created.ID)
	assert.Equal(t, int64(2), calls.Load())
	assert.Equal(t, 1, s.Len())
}

func TestCreate_RefreshDoesNotJoinPreMutationFetch(t *testing.T) {
	var (
		mu      sync.Mutex
		items   = []map[string]any{{"_id": "1", "title": "A"}}
		gets    atomic.Int64
		started = make(chan struct{})
		release = make(chan struct{})
	)
	s, srv := newTestProjects(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case "POST":
			mu.Lock()
			items = append(items, map[string]any{"_id": "2", "title": "B"})
			mu.Unlock()
			jsonResponse(w, 201, map[string]any{"_id": "2", "title": "B"})
		default:
			mu.Lock()
			snapshot := append([]map[string]any(nil), items...)
			mu.Unlock()
			if gets.Add(1) == 1 {
				close(started)
				<-release
			}
			jsonResponse(w, 200, snapshot)
		}
	})
	defer srv.Close()

	fetchDone := make(chan error, 1)
	go func() {
		_, err := s.FetchAll(context.Background())
		fetchDone <- err
	}()
	<-started

	// The list request is still held when the create lands; its trailing
	// refresh must issue a fresh request instead of joining it.
	created, err := s.Create(context.Background(), map[string]any{"title": "B"})
	require.NoError(t, err)
	assert.Equal(t, "2", created.ID)
	assert.Equal(t, 2, s.Len(), "cache should include the created item after the forced refresh")

	close(release)
	require.NoError(t, <-fetchDone)
	assert.Equal(t, 2, s.Len(), "the pre-mutation response must not overwrite the refreshed cache")
	assert.Equal(t, int64(2), gets.Load())
}

func TestCreate_StripsServerManagedFields(t *testing.T) {
	s, srv := newTestProjects(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "POST" {
			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)
			for _, field := range []string{"_id", "createdAt", "updatedAt", "__v"} {
				_, present := body[field]
				assert.False(t, present, "field %s must not be sent", field)
			}
			jsonResponse(w, 201, map[string]any{"_id": "9"})
			return
		}
		jsonResponse(w, 200, []map[string]any{})
	})
	defer srv.Close()

	draft := model.Project{ID: "stale", Title: "X", CreatedAt: "2026-01-01T00:00:00Z"}
	_, err := s.Create(context.Background(), draft)
	require.NoError(t, err)
}

func TestCreate_FailureLeavesCacheUntouched(t *testing.T) {
	s, srv := newTestProjects(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "POST" {
			jsonResponse(w, 422, map[string]any{"message": "title is required"})
			return
		}
		jsonResponse(w, 200, []map[string]any{{"_id": "1", "title": "A"}})
	})
	defer srv.Close()

	_, err := s.FetchAll(context.Background())
	require.NoError(t, err)

	_, err = s.Create(context.Background(), map[string]any{})
	require.Error(t, err)
	assert.Equal(t, "title is required", err.Error())
	assert.Equal(t, 1, s.Len())
	assert.Empty(t, s.Err(), "mutation failures are not recorded on the store")
}

func TestUpdate_StripsImmutableFields(t *testing.T) {
	s, srv := newTestProjects(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "PUT" {
			assert.Equal(t, "/projects/1", r.URL.Path)
			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)
			_, hasID := body["_id"]
			assert.False(t, hasID)
			assert.Equal(t, "B", body["title"])
			jsonResponse(w, 200, map[string]any{"_id": "1", "title": "B"})
			return
		}
		jsonResponse(w, 200, []map[string]any{{"_id": "1", "title": "B"}})
	})
	defer srv.Close()

	updated, err := s.Update(context.Background(), "1", map[string]any{"_id": "1", "title": "B"})
	require.NoError(t, err)
	assert.Equal(t, "B", updated.Title)
}

func TestRemove_RefreshesCollection(t *testing.T) {
	var deletes atomic.Int64
	s, srv := newTestProjects(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "DELETE" {
			deletes.Add(1)
			assert.Equal(t, "/projects/1", r.URL.Path)
			w.WriteHeader(204)
			return
		}
		jsonResponse(w, 200, []map[string]any{})
	})
	defer srv.Close()

	require.NoError(t, s.Remove(context.Background(), "1"))
	assert.Equal(t, int64(1), deletes.Load())
	assert.Zero(t, s.Len())
}

func TestToggle_FlipsActiveFlag(t *testing.T) {
	active := true
	s, srv := newTestProjects(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "PUT" {
			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)
			require.Contains(t, body, "active")
			active = body["active"].(bool)
			jsonResponse(w, 200, map[string]any{"_id": "1", "title": "A", "active": active})
			return
		}
		jsonResponse(w, 200, []map[string]any{{"_id": "1", "title": "A", "active": active}})
	})
	defer srv.Close()

	_, err := s.FetchAll(context.Background())
	require.NoError(t, err)

	item, err := s.Toggle(context.Background(), "1")
	require.NoError(t, err)
	assert.False(t, item.(model.Project).Active)

	item, err = s.Toggle(context.Background(), "1")
	require.NoError(t, err)
	assert.True(t, item.(model.Project).Active, "toggling twice restores the original value")
}

func TestClearCache_ResetsToUnfetched(t *testing.T) {
	s, srv := newTestProjects(func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, 200, []map[string]any{{"_id": "1", "title": "A"}})
	})
	defer srv.Close()

	_, err := s.FetchAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, s.Len())

	s.ClearCache()
	assert.Zero(t, s.Len())
	assert.True(t, s.LastFetch().IsZero())
	assert.False(t, s.Loading())
}

func TestConcurrentFetch_SharesOneRequest(t *testing.T) {
	var calls atomic.Int64
	s, srv := newTestProjects(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		time.Sleep(50 * time.Millisecond)
		jsonResponse(w, 200, []map[string]any{{"_id": "1", "title": "A"}})
	})
	defer srv.Close()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.FetchAll(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(1), calls.Load())
}

func TestStats_ComputedFromCache(t *testing.T) {
	s, srv := newTestProjects(func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, 200, []map[string]any{
			{"_id": "1", "title": "A", "category": "web", "active": true},
			{"_id": "2", "title": "B", "category": "web", "active": false},
			{"_id": "3", "title": "C", "category": "cli", "active": true},
		})
	})
	defer srv.Close()

	_, err := s.FetchAll(context.Background())
	require.NoError(t, err)

	stats := s.Stats()
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.ActiveCount)
	assert.Equal(t, 1, stats.InactiveCount)
	assert.Equal(t, 2, stats.CategoriesCount)
}

func TestFetchStats_CachedWithinWindow(t *testing.T) {
	var calls atomic.Int64
	s, srv := newTestProjects(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/projects/stats", r.URL.Path)
		calls.Add(1)
		jsonResponse(w, 200, map[string]any{"total": 4, "byCategory": map[string]int{"web": 3, "cli": 1}})
	})
	defer srv.Close()

	stats, err := s.FetchStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 3, stats.ByCategory["web"])

	_, err = s.FetchStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), calls.Load())

	s.ClearCache()
	_, err = s.FetchStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), calls.Load())
}

func TestSorted_DoesNotReorderCache(t *testing.T) {
	s, srv := newTestProjects(func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, 200, []map[string]any{
			{"_id": "2", "title": "B", "order": 1},
			{"_id": "1", "title": "A", "order": 0},
		})
	})
	defer srv.Close()

	_, err := s.FetchAll(context.Background())
	require.NoError(t, err)

	sorted := s.Sorted()
	assert.Equal(t, "A", sorted[0].Title)

	all := s.All()
	assert.Equal(t, "B", all[0].Title, "cached snapshot keeps API order")
}
