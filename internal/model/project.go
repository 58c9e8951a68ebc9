package model

import "sort"

type Project struct {
	ID           string   `json:"_id,omitempty" yaml:"_id,omitempty"`
	Title        string   `json:"title" yaml:"title"`
	Description  string   `json:"description" yaml:"description"`
	Image        string   `json:"image" yaml:"image"`
	Category     string   `json:"category" yaml:"category"`
	Technologies []string `json:"technologies" yaml:"technologies"`
	DemoURL      string   `json:"demoUrl" yaml:"demoUrl"`
	GithubURL    string   `json:"githubUrl" yaml:"githubUrl"`
	Order        int      `json:"order" yaml:"order"`
	Active       bool     `json:"active" yaml:"active"`
	CreatedAt    string   `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt    string   `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

func (p Project) ItemID() string       { return p.ID }
func (p Project) Label() string        { return p.Title }
func (p Project) IsActive() bool       { return p.Active }
func (p Project) CategoryName() string { return p.Category }

// ProjectStats is the aggregate payload from GET /projects/stats.
type ProjectStats struct {
	Total      int            `json:"total"`
	ByCategory map[string]int `json:"byCategory"`
}

// SortProjects orders by the explicit order field, ascending.
func SortProjects(projects []Project) {
	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].Order < projects[j].Order
	})
}
