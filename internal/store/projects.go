package store

import (
	"context"

	"github.com/rribeiro/folio/internal/api"
	"github.com/rribeiro/folio/internal/model"
)

// Projects caches the project collection plus its aggregate stats.
type Projects struct {
	*Collection[model.Project]
	stats *statsCache[model.ProjectStats]
}

func NewProjects(client *api.Client, public bool) *Projects {
	return &Projects{
		Collection: newCollection(client, "projects", listPath("projects", public), model.SortProjects),
		stats:      newStatsCache[model.ProjectStats](client, "/projects/stats"),
	}
}

func (s *Projects) Toggle(ctx context.Context, id string) (model.Item, error) {
	return toggleActive(ctx, s.Collection, id)
}

// FetchStats returns the server-side aggregate, cached under the same
// staleness window as the collection.
func (s *Projects) FetchStats(ctx context.Context) (model.ProjectStats, error) {
	return s.stats.Fetch(ctx)
}

func (s *Projects) ClearCache() {
	s.Collection.ClearCache()
	s.stats.Clear()
}

// ByCategory filters the cached projects to one category.
func (s *Projects) ByCategory(category string) []model.Project {
	var out []model.Project
	for _, p := range s.All() {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// listPath picks the public or admin list endpoint for a resource.
func listPath(name string, public bool) string {
	if public {
		return "/" + name
	}
	return "/" + name + "/admin/all"
}
