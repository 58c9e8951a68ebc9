package store

import (
	"context"
	"net/url"

	"github.com/rribeiro/folio/internal/api"
	"github.com/rribeiro/folio/internal/model"
)

// Contacts caches the inbox of contact-form messages. The list endpoint
// wraps its items in a {data, count} envelope, and the read flag is flipped
// through a dedicated PATCH route rather than a generic update.
type Contacts struct {
	*Collection[model.Contact]
}

func NewContacts(client *api.Client) *Contacts {
	c := newCollection(client, "contacts", "/contacts", model.SortContacts)
	c.listFn = func(ctx context.Context) ([]model.Contact, error) {
		envelope, err := api.Get[struct {
			Data  []model.Contact `json:"data"`
			Count int             `json:"count"`
		}](ctx, client, "/contacts")
		if err != nil {
			return nil, err
		}
		return envelope.Data, nil
	}
	return &Contacts{Collection: c}
}

// ToggleRead flips the read flag server-side and patches the cached entry
// in place; the surrounding collection is not re-fetched.
func (s *Contacts) ToggleRead(ctx context.Context, id string) (model.Item, error) {
	resp, err := api.Patch[struct {
		Data    model.Contact `json:"data"`
		Message string        `json:"message"`
	}](ctx, s.client, "/contacts/"+url.PathEscape(id)+"/toggle-read", nil)
	if err != nil {
		return nil, &opError{msg: s.messageFor(err, "update"), cause: err}
	}

	s.mu.Lock()
	s.gen++
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i] = resp.Data
			break
		}
	}
	s.mu.Unlock()
	return resp.Data, nil
}

// RemoveRead deletes every read message, then refreshes the inbox once.
func (s *Contacts) RemoveRead(ctx context.Context) (int, error) {
	var read []model.Contact
	for _, c := range s.All() {
		if c.Read && c.ID != "" {
			read = append(read, c)
		}
	}
	for _, c := range read {
		if err := s.client.Delete(ctx, "/contacts/"+url.PathEscape(c.ID)); err != nil {
			return 0, &opError{msg: s.messageFor(err, "delete"), cause: err}
		}
	}
	if _, err := s.forceRefresh(ctx); err != nil {
		return 0, err
	}
	return len(read), nil
}

func (s *Contacts) UnreadCount() int {
	n := 0
	for _, c := range s.All() {
		if !c.Read {
			n++
		}
	}
	return n
}

func (s *Contacts) ReadCount() int {
	return s.Len() - s.UnreadCount()
}

// TodayCount counts messages received on the current calendar day.
func (s *Contacts) TodayCount() int {
	y, m, d := s.now().Date()
	n := 0
	for _, c := range s.All() {
		ry, rm, rd := c.ReceivedAt().Date()
		if ry == y && rm == m && rd == d {
			n++
		}
	}
	return n
}
