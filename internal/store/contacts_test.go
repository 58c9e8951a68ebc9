package store

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rribeiro/folio/internal/api"
	"github.com/rribeiro/folio/internal/model"
)

func newTestContacts(handler http.HandlerFunc) (*Contacts, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewContacts(api.New(srv.URL, func() string { return "test-token" })), srv
}

func TestContacts_FetchUnwrapsEnvelope(t *testing.T) {
	s, srv := newTestContacts(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/contacts", r.URL.Path)
		jsonResponse(w, 200, map[string]any{
			"data": []map[string]any{
				{"_id": "1", "name": "Ana", "subject": "Hi", "read": false},
				{"_id": "2", "name": "Bob", "subject": "Yo", "read": true},
			},
			"count": 2,
		})
	})
	defer srv.Close()

	contacts, err := s.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.Equal(t, "Ana", contacts[0].Name)
	assert.Equal(t, 1, s.UnreadCount())
	assert.Equal(t, 1, s.ReadCount())
}

func TestContacts_ToggleReadPatchesCacheInPlace(t *testing.T) {
	var listCalls atomic.Int64
	s, srv := newTestContacts(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "PATCH" {
			assert.Equal(t, "/contacts/1/toggle-read", r.URL.Path)
			jsonResponse(w, 200, map[string]any{
				"data":    map[string]any{"_id": "1", "name": "Ana", "subject": "Hi", "read": true},
				"message": "Contact updated",
			})
			return
		}
		listCalls.Add(1)
		jsonResponse(w, 200, map[string]any{
			"data":  []map[string]any{{"_id": "1", "name": "Ana", "subject": "Hi", "read": false}},
			"count": 1,
		})
	})
	defer srv.Close()

	_, err := s.FetchAll(context.Background())
	require.NoError(t, err)

	item, err := s.ToggleRead(context.Background(), "1")
	require.NoError(t, err)
	assert.True(t, item.(model.Contact).Read)

	cached, ok := s.Lookup("1")
	require.True(t, ok)
	assert.True(t, cached.Read)
	assert.Equal(t, int64(1), listCalls.Load(), "toggle-read must not re-fetch the collection")
}

func TestContacts_RemoveReadDeletesOnlyReadMessages(t *testing.T) {
	var deleted []string
	s, srv := newTestContacts(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "DELETE" {
			deleted = append(deleted, r.URL.Path)
			w.WriteHeader(204)
			return
		}
		jsonResponse(w, 200, map[string]any{
			"data": []map[string]any{
				{"_id": "1", "subject": "keep", "read": false},
				{"_id": "2", "subject": "drop", "read": true},
				{"_id": "3", "subject": "drop too", "read": true},
			},
			"count": 3,
		})
	})
	defer srv.Close()

	_, err := s.FetchAll(context.Background())
	require.NoError(t, err)

	n, err := s.RemoveRead(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.ElementsMatch(t, []string{"/contacts/2", "/contacts/3"}, deleted)
}

func TestContacts_ToggleReadFailureSurfacesMessage(t *testing.T) {
	s, srv := newTestContacts(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "PATCH" {
			jsonResponse(w, 404, map[string]any{"message": "contact not found"})
			return
		}
		jsonResponse(w, 200, map[string]any{"data": []map[string]any{}, "count": 0})
	})
	defer srv.Close()

	_, err := s.ToggleRead(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, "contact not found", err.Error())
}

func TestContacts_TodayCountUsesStoreClock(t *testing.T) {
	s, srv := newTestContacts(func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, 200, map[string]any{
			"data": []map[string]any{
				{"_id": "1", "subject": "Today", "createdAt": "2026-03-15T09:30:00Z"},
				{"_id": "2", "subject": "Yesterday", "createdAt": "2026-03-14T23:59:00Z"},
			},
			"count": 2,
		})
	})
	defer srv.Close()

	s.Collection.now = func() time.Time {
		return time.Date(2026, 3, 15, 18, 0, 0, 0, time.UTC)
	}

	_, err := s.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, s.TodayCount())
}
