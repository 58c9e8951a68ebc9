package store

import (
	"context"
	"sort"

	"github.com/rribeiro/folio/internal/api"
	"github.com/rribeiro/folio/internal/model"
)

// Courses caches the course collection.
type Courses struct {
	*Collection[model.Course]
}

func NewCourses(client *api.Client, public bool) *Courses {
	return &Courses{
		Collection: newCollection(client, "courses", listPath("courses", public), model.SortCourses),
	}
}

func (s *Courses) Toggle(ctx context.Context, id string) (model.Item, error) {
	return toggleActive(ctx, s.Collection, id)
}

// TotalHours sums the duration of every dated (completed) course.
func (s *Courses) TotalHours() float64 {
	total := 0.0
	for _, c := range s.All() {
		if c.Date != "" {
			total += c.Hours()
		}
	}
	return total
}

// YearGroup is one year's worth of courses, newest course first.
type YearGroup struct {
	Year    int
	Courses []model.Course
}

// ByYear groups cached courses by year, newest year first, with undated
// courses (year 0) grouped last.
func (s *Courses) ByYear() []YearGroup {
	grouped := map[int][]model.Course{}
	for _, c := range s.Sorted() {
		y := c.Year()
		grouped[y] = append(grouped[y], c)
	}
	out := make([]YearGroup, 0, len(grouped))
	for y, cs := range grouped {
		out = append(out, YearGroup{Year: y, Courses: cs})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year == 0 {
			return false
		}
		if out[j].Year == 0 {
			return true
		}
		return out[i].Year > out[j].Year
	})
	return out
}
