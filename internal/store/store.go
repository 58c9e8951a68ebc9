// Package store owns the client-side copy of each portfolio resource. A
// Collection caches one resource's items fetched from the remote API,
// tracks loading/error state, and refreshes itself after every mutation so
// derived views stay consistent.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/apex/log"
	"golang.org/x/sync/singleflight"

	"github.com/rribeiro/folio/internal/api"
	"github.com/rribeiro/folio/internal/model"
)

// StaleAfter is how long a fetched collection is trusted before the next
// Fetch goes back to the network.
const StaleAfter = 5 * time.Minute

// serverManagedFields are stripped from every create/update payload; the
// API owns them.
var serverManagedFields = []string{"_id", "createdAt", "updatedAt", "__v"}

// Collection is the generic cached store for one resource type.
type Collection[T model.Item] struct {
	client   *api.Client
	name     string
	listPath string
	sortFn   func([]T)
	// listFn overrides the default list decode for resources whose
	// endpoint wraps the items in an envelope (contacts).
	listFn func(ctx context.Context) ([]T, error)
	logger *log.Entry
	now    func() time.Time

	mu        sync.Mutex
	items     []T
	loading   bool
	errMsg    string
	lastFetch time.Time
	// gen advances on every mutation; a list response fetched under an
	// older generation must not be installed into the cache.
	gen uint64

	flight singleflight.Group
}

func newCollection[T model.Item](client *api.Client, name, listPath string, sortFn func([]T)) *Collection[T] {
	return &Collection[T]{
		client:   client,
		name:     name,
		listPath: listPath,
		sortFn:   sortFn,
		logger:   log.WithField("resource", name),
		now:      time.Now,
	}
}

func (c *Collection[T]) Name() string { return c.name }

func (c *Collection[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the message of the last failed fetch, empty when the last
// fetch succeeded or none ran yet.
func (c *Collection[T]) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

func (c *Collection[T]) LastFetch() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastFetch
}

func (c *Collection[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// All returns a copy of the cached collection in API order.
func (c *Collection[T]) All() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.items...)
}

// Sorted returns a copy of the collection in the resource's display order.
// The cached snapshot itself is never reordered.
func (c *Collection[T]) Sorted() []T {
	items := c.All()
	if c.sortFn != nil {
		c.sortFn(items)
	}
	return items
}

// Lookup finds a cached item by id.
func (c *Collection[T]) Lookup(id string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, it := range c.items {
		if it.ItemID() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// FetchAll returns the collection, hitting the network only when the cache
// is empty or older than StaleAfter.
func (c *Collection[T]) FetchAll(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	fresh := len(c.items) > 0 && c.now().Sub(c.lastFetch) < StaleAfter
	if fresh {
		items := append([]T(nil), c.items...)
		c.mu.Unlock()
		c.logger.Debug("serving cached collection")
		return items, nil
	}
	c.mu.Unlock()
	return c.refresh(ctx)
}

// refresh always hits the network. Concurrent callers share one in-flight
// request instead of racing last-write-wins.
func (c *Collection[T]) refresh(ctx context.Context) ([]T, error) {
	v, err, _ := c.flight.Do("list", func() (any, error) {
		c.mu.Lock()
		start := c.gen
		c.loading = true
		c.errMsg = ""
		c.mu.Unlock()

		items, err := c.list(ctx)

		c.mu.Lock()
		c.loading = false
		if err != nil {
			msg := c.messageFor(err, "load")
			c.errMsg = msg
			c.mu.Unlock()
			c.logger.WithError(err).Error("fetch failed")
			return nil, &opError{msg: msg, cause: err}
		}
		if c.gen == start {
			c.items = items
			c.lastFetch = c.now()
		}
		c.mu.Unlock()

		c.logger.WithField("count", len(items)).Debug("collection refreshed")
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]T), nil
}

// forceRefresh follows a successful mutation. It advances the generation
// and drops any coalesced in-flight list, so the refresh observes the
// mutated collection instead of joining a request that started before the
// mutation landed.
func (c *Collection[T]) forceRefresh(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	c.gen++
	c.mu.Unlock()
	c.flight.Forget("list")
	return c.refresh(ctx)
}

func (c *Collection[T]) list(ctx context.Context) ([]T, error) {
	if c.listFn != nil {
		return c.listFn(ctx)
	}
	return api.Get[[]T](ctx, c.client, c.listPath)
}

// Create posts a draft (any struct or map; server-managed fields are
// stripped) and refreshes the collection before returning the created item.
func (c *Collection[T]) Create(ctx context.Context, draft any) (T, error) {
	var zero T
	payload, err := payloadFrom(draft)
	if err != nil {
		return zero, err
	}
	created, err := api.Post[T](ctx, c.client, "/"+c.name, payload)
	if err != nil {
		return zero, &opError{msg: c.messageFor(err, "create"), cause: err}
	}
	if _, err := c.forceRefresh(ctx); err != nil {
		return zero, err
	}
	return created, nil
}

// Update puts a partial item against the resource endpoint. Immutable
// fields in the patch are dropped, the cached collection is refreshed on
// success, and a failed update leaves the cache untouched.
func (c *Collection[T]) Update(ctx context.Context, id string, patch map[string]any) (T, error) {
	var zero T
	payload := make(map[string]any, len(patch))
	for k, v := range patch {
		payload[k] = v
	}
	stripServerFields(payload)

	updated, err := api.Put[T](ctx, c.client, "/"+c.name+"/"+url.PathEscape(id), payload)
	if err != nil {
		return zero, &opError{msg: c.messageFor(err, "update"), cause: err}
	}
	if _, err := c.forceRefresh(ctx); err != nil {
		return zero, err
	}
	return updated, nil
}

// Remove deletes the item and refreshes the collection.
func (c *Collection[T]) Remove(ctx context.Context, id string) error {
	if err := c.client.Delete(ctx, "/"+c.name+"/"+url.PathEscape(id)); err != nil {
		return &opError{msg: c.messageFor(err, "delete"), cause: err}
	}
	_, err := c.forceRefresh(ctx)
	return err
}

// toggleActive flips the soft enable/disable flag of the identified item
// and delegates to Update. The constraint keeps resources without the
// active concept (contacts) out at compile time.
func toggleActive[T interface {
	model.Item
	model.Activatable
}](ctx context.Context, c *Collection[T], id string) (T, error) {
	var zero T
	item, ok := c.Lookup(id)
	if !ok {
		fetched, err := c.FetchAll(ctx)
		if err != nil {
			return zero, err
		}
		for _, it := range fetched {
			if it.ItemID() == id {
				item, ok = it, true
				break
			}
		}
		if !ok {
			return zero, fmt.Errorf("no %s with id %s", c.name, id)
		}
	}
	return c.Update(ctx, id, map[string]any{"active": !item.IsActive()})
}

// ClearCache resets the collection to the never-fetched state without
// touching the network. Error and loading state are left as they are.
func (c *Collection[T]) ClearCache() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.lastFetch = time.Time{}
}

// Fetch is the uniform-interface form of FetchAll.
func (c *Collection[T]) Fetch(ctx context.Context) error {
	_, err := c.FetchAll(ctx)
	return err
}

// CreateItem is the uniform-interface form of Create.
func (c *Collection[T]) CreateItem(ctx context.Context, draft map[string]any) (model.Item, error) {
	return c.Create(ctx, draft)
}

// UpdateItem is the uniform-interface form of Update.
func (c *Collection[T]) UpdateItem(ctx context.Context, id string, patch map[string]any) (model.Item, error) {
	return c.Update(ctx, id, patch)
}

// Items returns the cached collection as the uniform Item view.
func (c *Collection[T]) Items() []model.Item {
	all := c.All()
	items := make([]model.Item, len(all))
	for i, it := range all {
		items[i] = it
	}
	return items
}

// ActiveCount counts items with the active flag set; zero for resources
// without the concept.
func (c *Collection[T]) ActiveCount() int {
	n := 0
	for _, it := range c.All() {
		if a, ok := any(it).(model.Activatable); ok && a.IsActive() {
			n++
		}
	}
	return n
}

func (c *Collection[T]) InactiveCount() int {
	n := 0
	for _, it := range c.All() {
		if a, ok := any(it).(model.Activatable); ok && !a.IsActive() {
			n++
		}
	}
	return n
}

// CategoriesCount counts distinct categories across the cached items.
func (c *Collection[T]) CategoriesCount() int {
	seen := map[string]bool{}
	for _, it := range c.All() {
		if cat, ok := any(it).(model.Categorized); ok {
			seen[cat.CategoryName()] = true
		}
	}
	return len(seen)
}

// Stats summarizes the cached collection for generic consumers.
func (c *Collection[T]) Stats() Stats {
	return Stats{
		Total:           c.Len(),
		ActiveCount:     c.ActiveCount(),
		InactiveCount:   c.InactiveCount(),
		CategoriesCount: c.CategoriesCount(),
	}
}

// messageFor derives the human-readable message for a failed operation:
// the server's structured message first, then the error's own message,
// then a per-resource fallback.
func (c *Collection[T]) messageFor(err error, verb string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fmt.Sprintf("failed to %s %s", verb, c.name)
}

// opError surfaces the derived message while keeping the cause unwrappable.
type opError struct {
	msg   string
	cause error
}

func (e *opError) Error() string { return e.msg }
func (e *opError) Unwrap() error { return e.cause }

// payloadFrom round-trips a draft through JSON into a map and strips the
// server-managed fields.
func payloadFrom(draft any) (map[string]any, error) {
	if m, ok := draft.(map[string]any); ok {
		payload := make(map[string]any, len(m))
		for k, v := range m {
			payload[k] = v
		}
		stripServerFields(payload)
		return payload, nil
	}
	b, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("encoding draft: %w", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(b, &payload); err != nil {
		return nil, fmt.Errorf("encoding draft: %w", err)
	}
	stripServerFields(payload)
	return payload, nil
}

func stripServerFields(payload map[string]any) {
	for _, f := range serverManagedFields {
		delete(payload, f)
	}
}
