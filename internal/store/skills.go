package store

import (
	"context"

	"github.com/rribeiro/folio/internal/api"
	"github.com/rribeiro/folio/internal/model"
)

// Skills caches the skill collection.
type Skills struct {
	*Collection[model.Skill]
}

func NewSkills(client *api.Client, public bool) *Skills {
	return &Skills{
		Collection: newCollection(client, "skills", listPath("skills", public), model.SortSkills),
	}
}

func (s *Skills) Toggle(ctx context.Context, id string) (model.Item, error) {
	return toggleActive(ctx, s.Collection, id)
}

// Categories returns the distinct category names in display order.
func (s *Skills) Categories() []string {
	seen := map[string]bool{}
	var out []string
	for _, sk := range s.Sorted() {
		if !seen[sk.Category] {
			seen[sk.Category] = true
			out = append(out, sk.Category)
		}
	}
	return out
}
