package markdown

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/rribeiro/folio/internal/model"
)

var (
	headerRowStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cellStyle      = lipgloss.NewStyle()
)

func RenderProjectTable(projects []model.Project) string {
	if len(projects) == 0 {
		return "No projects found."
	}
	rows := make([][]string, len(projects))
	for i, p := range projects {
		rows[i] = []string{p.ID, p.Title, p.Category, strconv.Itoa(p.Order), RenderActive(p.Active)}
	}
	return renderTable([]string{"ID", "Title", "Category", "Order", "Active"}, rows)
}

func RenderSkillTable(skills []model.Skill) string {
	if len(skills) == 0 {
		return "No skills found."
	}
	rows := make([][]string, len(skills))
	for i, s := range skills {
		rows[i] = []string{s.ID, s.Name, s.Category, strconv.Itoa(s.Order), RenderActive(s.Active)}
	}
	return renderTable([]string{"ID", "Name", "Category", "Order", "Active"}, rows)
}

func RenderCertificationTable(certs []model.Certification) string {
	if len(certs) == 0 {
		return "No certifications found."
	}
	rows := make([][]string, len(certs))
	for i, c := range certs {
		when := ""
		if c.Year != 0 {
			when = fmt.Sprintf("%d-%02d", c.Year, c.Month)
		}
		rows[i] = []string{c.ID, c.Name, c.Issuer, when, RenderActive(c.Active)}
	}
	return renderTable([]string{"ID", "Name", "Issuer", "Date", "Active"}, rows)
}

func RenderCourseTable(courses []model.Course) string {
	if len(courses) == 0 {
		return "No courses found."
	}
	rows := make([][]string, len(courses))
	for i, c := range courses {
		date := c.Date
		if date == "" {
			date = "planned"
		}
		rows[i] = []string{c.ID, c.Name, c.Platform, c.Duration, date, RenderActive(c.Active)}
	}
	return renderTable([]string{"ID", "Name", "Platform", "Duration", "Date", "Active"}, rows)
}

func RenderContactTable(contacts []model.Contact) string {
	if len(contacts) == 0 {
		return "No messages found."
	}
	rows := make([][]string, len(contacts))
	for i, c := range contacts {
		received := ""
		if at := c.ReceivedAt(); !at.IsZero() {
			received = at.Format("2006-01-02 15:04")
		}
		rows[i] = []string{c.ID, c.Name, c.Email, c.Subject, received, RenderRead(c.Read)}
	}
	return renderTable([]string{"ID", "From", "Email", "Subject", "Received", "Read"}, rows)
}

// RenderItemTable is the generic fallback for consumers that only hold the
// uniform Item view.
func RenderItemTable(items []model.Item) string {
	if len(items) == 0 {
		return "No items found."
	}
	rows := make([][]string, len(items))
	for i, it := range items {
		rows[i] = []string{it.ItemID(), it.Label()}
	}
	return renderTable([]string{"ID", "Title"}, rows)
}

// Table renders arbitrary rows with the shared table styling.
func Table(headers []string, rows [][]string) string {
	return renderTable(headers, rows)
}

func renderTable(headers []string, rows [][]string) string {
	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerRowStyle
			}
			return cellStyle
		})
	return t.Render()
}
