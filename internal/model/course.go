package model

import (
	"sort"
	"strconv"
	"strings"
)

type Course struct {
	ID         string `json:"_id,omitempty" yaml:"_id,omitempty"`
	Name       string `json:"name" yaml:"name"`
	Platform   string `json:"platform" yaml:"platform"`
	Instructor string `json:"instructor,omitempty" yaml:"instructor,omitempty"`
	Duration   string `json:"duration,omitempty" yaml:"duration,omitempty"`
	Image      string `json:"image,omitempty" yaml:"image,omitempty"`
	Link       string `json:"link" yaml:"link"`
	Date       string `json:"date,omitempty" yaml:"date,omitempty"`
	Order      int    `json:"order" yaml:"order"`
	Active     bool   `json:"active" yaml:"active"`
	CreatedAt  string `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt  string `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

func (c Course) ItemID() string { return c.ID }
func (c Course) Label() string  { return c.Name }
func (c Course) IsActive() bool { return c.Active }

// Hours extracts the numeric part of the duration string ("12.5h" -> 12.5).
// Returns 0 when the duration is empty or carries no digits.
func (c Course) Hours() float64 {
	var b strings.Builder
	for _, r := range c.Duration {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	h, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return h
}

// Year returns the leading year of the course date, 0 when undated.
func (c Course) Year() int {
	if len(c.Date) < 4 {
		return 0
	}
	y, err := strconv.Atoi(c.Date[:4])
	if err != nil {
		return 0
	}
	return y
}

// SortCourses orders dated courses newest first; date-less courses sort
// last. Dates are YYYY-MM strings, so lexicographic comparison is enough.
func SortCourses(courses []Course) {
	sort.SliceStable(courses, func(i, j int) bool {
		if courses[i].Date == "" {
			return false
		}
		if courses[j].Date == "" {
			return true
		}
		return courses[i].Date > courses[j].Date
	})
}
