package model

import "sort"

type Certification struct {
	ID        string `json:"_id,omitempty" yaml:"_id,omitempty"`
	Name      string `json:"name" yaml:"name"`
	Issuer    string `json:"issuer" yaml:"issuer"`
	Image     string `json:"image" yaml:"image"`
	Link      string `json:"link" yaml:"link"`
	Date      string `json:"date,omitempty" yaml:"date,omitempty"`
	Skills    int    `json:"skills" yaml:"skills"`
	Year      int    `json:"year,omitempty" yaml:"year,omitempty"`
	Month     int    `json:"month,omitempty" yaml:"month,omitempty"`
	Order     int    `json:"order" yaml:"order"`
	Active    bool   `json:"active" yaml:"active"`
	CreatedAt string `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

func (c Certification) ItemID() string { return c.ID }
func (c Certification) Label() string  { return c.Name }
func (c Certification) IsActive() bool { return c.Active }

// CertificationStats is the aggregate payload from GET /certifications/stats.
type CertificationStats struct {
	Total    int            `json:"total"`
	ByIssuer map[string]int `json:"byIssuer"`
}

// SortCertifications orders newest first: year descending, then month
// descending within the same year.
func SortCertifications(certs []Certification) {
	sort.SliceStable(certs, func(i, j int) bool {
		if certs[i].Year != certs[j].Year {
			return certs[i].Year > certs[j].Year
		}
		return certs[i].Month > certs[j].Month
	})
}
