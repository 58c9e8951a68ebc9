package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortProjects_ByOrder(t *testing.T) {
	projects := []Project{
		{ID: "3", Title: "C", Order: 2},
		{ID: "1", Title: "A", Order: 0},
		{ID: "2", Title: "B", Order: 1},
	}
	SortProjects(projects)
	assert.Equal(t, []string{"A", "B", "C"}, []string{projects[0].Title, projects[1].Title, projects[2].Title})
}

func TestSortSkills_StableOnEqualOrder(t *testing.T) {
	skills := []Skill{
		{Name: "Go", Order: 1},
		{Name: "Vue", Order: 0},
		{Name: "Docker", Order: 1},
	}
	SortSkills(skills)
	assert.Equal(t, "Vue", skills[0].Name)
	assert.Equal(t, "Go", skills[1].Name)
	assert.Equal(t, "Docker", skills[2].Name)
}

func TestSortCertifications_YearThenMonthDescending(t *testing.T) {
	certs := []Certification{
		{Name: "old", Year: 2022, Month: 11},
		{Name: "newest", Year: 2024, Month: 3},
		{Name: "same-year-later", Year: 2022, Month: 12},
	}
	SortCertifications(certs)
	assert.Equal(t, "newest", certs[0].Name)
	assert.Equal(t, "same-year-later", certs[1].Name)
	assert.Equal(t, "old", certs[2].Name)
}

func TestSortCourses_UndatedLast(t *testing.T) {
	courses := []Course{
		{Name: "mid", Date: "2024-06"},
		{Name: "old", Date: "2023-01"},
		{Name: "planned"},
	}
	SortCourses(courses)
	assert.Equal(t, "mid", courses[0].Name)
	assert.Equal(t, "old", courses[1].Name)
	assert.Equal(t, "planned", courses[2].Name)
}

func TestCourseHours(t *testing.T) {
	assert.Equal(t, 12.5, Course{Duration: "12.5h"}.Hours())
	assert.Equal(t, 40.0, Course{Duration: "40 hours"}.Hours())
	assert.Equal(t, 0.0, Course{Duration: ""}.Hours())
	assert.Equal(t, 0.0, Course{Duration: "n/a"}.Hours())
}

func TestCourseYear(t *testing.T) {
	assert.Equal(t, 2024, Course{Date: "2024-06"}.Year())
	assert.Equal(t, 0, Course{}.Year())
}

func TestSortContacts_NewestFirst(t *testing.T) {
	contacts := []Contact{
		{Subject: "older", CreatedAt: "2026-01-01T10:00:00Z"},
		{Subject: "newer", CreatedAt: "2026-02-01T10:00:00Z"},
		{Subject: "undated"},
	}
	SortContacts(contacts)
	assert.Equal(t, "newer", contacts[0].Subject)
	assert.Equal(t, "older", contacts[1].Subject)
	assert.Equal(t, "undated", contacts[2].Subject)
}
