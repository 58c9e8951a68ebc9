package store

import (
	"context"

	"github.com/rribeiro/folio/internal/api"
	"github.com/rribeiro/folio/internal/model"
)

// Certifications caches the certification collection plus its aggregate
// stats.
type Certifications struct {
	*Collection[model.Certification]
	stats *statsCache[model.CertificationStats]
}

func NewCertifications(client *api.Client, public bool) *Certifications {
	return &Certifications{
		Collection: newCollection(client, "certifications", listPath("certifications", public), model.SortCertifications),
		stats:      newStatsCache[model.CertificationStats](client, "/certifications/stats"),
	}
}

func (s *Certifications) Toggle(ctx context.Context, id string) (model.Item, error) {
	return toggleActive(ctx, s.Collection, id)
}

func (s *Certifications) FetchStats(ctx context.Context) (model.CertificationStats, error) {
	return s.stats.Fetch(ctx)
}

func (s *Certifications) ClearCache() {
	s.Collection.ClearCache()
	s.stats.Clear()
}

// TotalSkills sums the skills counter across cached certifications.
func (s *Certifications) TotalSkills() int {
	n := 0
	for _, c := range s.All() {
		n += c.Skills
	}
	return n
}
