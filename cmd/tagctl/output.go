package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/tagdesk/tagdesk-server/internal/domain"
)

// write prints v as JSON or YAML, or as markdown for the table format.
func (a *app) write(v any, markdown func() string) error {
	switch a.output {
	case outputJSON:
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(a.stdout)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return a.render(markdown())
	}
}

// render prints markdown, styled through glamour when stdout is a terminal.
func (a *app) render(md string) error {
	if f, ok := a.stdout.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		out, err := glamour.Render(md, "dark")
		if err == nil {
			_, err = io.WriteString(a.stdout, out)
			return err
		}
	}
	_, err := io.WriteString(a.stdout, md)
	return err
}

// tagTable renders tags as a markdown table.
func tagTable(tags []domain.Tag) string {
	var b strings.Builder
	b.WriteString("| ID | Title | Slug | Videos |\n")
	b.WriteString("|----|-------|------|--------|\n")
	for _, t := range tags {
		fmt.Fprintf(&b, "| %s | %s | %s | %d |\n", t.ID, escapeCell(t.Title), t.Slug, t.AmountOfVideos)
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// pageSummary describes where a page sits in the listing.
func pageSummary(p *domain.TagPage, page int) string {
	return fmt.Sprintf("\nPage %d of %d, %d tags total.\n", page, p.Pages, p.Items)
}

// currentPage recovers the clamped page number from the navigation links.
func currentPage(p *domain.TagPage) int {
	switch {
	case p.Prev != nil:
		return *p.Prev + 1
	case p.Next != nil:
		return *p.Next - 1
	default:
		return p.First
	}
}
