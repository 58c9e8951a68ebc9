package model

import (
	"sort"
	"time"
)

type Contact struct {
	ID        string `json:"_id,omitempty" yaml:"_id,omitempty"`
	Name      string `json:"name" yaml:"name"`
	Email     string `json:"email" yaml:"email"`
	Subject   string `json:"subject" yaml:"subject"`
	Message   string `json:"message" yaml:"message"`
	Read      bool   `json:"read" yaml:"read"`
	CreatedAt string `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

func (c Contact) ItemID() string { return c.ID }
func (c Contact) Label() string  { return c.Subject }

// ReceivedAt parses the server timestamp; zero time when absent or malformed.
func (c Contact) ReceivedAt() time.Time {
	t, err := time.Parse(time.RFC3339, c.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}

// SortContacts orders newest message first.
func SortContacts(contacts []Contact) {
	sort.SliceStable(contacts, func(i, j int) bool {
		return contacts[i].ReceivedAt().After(contacts[j].ReceivedAt())
	})
}
