package model

import "sort"

type Skill struct {
	ID        string `json:"_id,omitempty" yaml:"_id,omitempty"`
	Name      string `json:"name" yaml:"name"`
	Category  string `json:"category" yaml:"category"`
	Icon      string `json:"icon" yaml:"icon"`
	Color     string `json:"color" yaml:"color"`
	BgColor   string `json:"bgColor" yaml:"bgColor"`
	Order     int    `json:"order" yaml:"order"`
	Active    bool   `json:"active" yaml:"active"`
	CreatedAt string `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

func (s Skill) ItemID() string       { return s.ID }
func (s Skill) Label() string        { return s.Name }
func (s Skill) IsActive() bool       { return s.Active }
func (s Skill) CategoryName() string { return s.Category }

// SortSkills orders by the explicit order field, ascending.
func SortSkills(skills []Skill) {
	sort.SliceStable(skills, func(i, j int) bool {
		return skills[i].Order < skills[j].Order
	})
}
