package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mattmoss82/schoolsum/internal/schoology"
)

// ChildSchedule pairs a child's name with their normalized events. Children
// render in slice order, which the orchestrator keeps equal to the
// configured order.
type ChildSchedule struct {
	Name   string
	Events []schoology.Event
}

// Titles for the two run modes; also used as the email subject.
const (
	WeeklyTitle   = "Weekly Schoology Summary"
	TomorrowTitle = "Tomorrow's Schoology Summary"
)

// Format renders the full two-section report: a compact header list of one
// bullet per event, then a detail section with full timestamps, course, and
// description. Zero children or zero events per child render the section
// markers with no per-child content.
func Format(title string, children []ChildSchedule) string {
	header := []string{fmt.Sprintf("📅 **%s**\n", title)}
	details := []string{"\n📝 **Full Assignment Details**\n"}

	for _, child := range children {
		events := sortedByStart(child.Events)

		header = append(header, fmt.Sprintf("\n👤 **%s**", child.Name))
		for _, e := range events {
			header = append(header, fmt.Sprintf("• %s — %s", e.Start.Format("Mon Jan 02"), e.Title))
		}

		details = append(details, fmt.Sprintf("\n👤 **%s**", child.Name))
		for _, e := range events {
			dateStr := e.Start.Format("Monday, Jan 02 at 03:04 PM")
			details = append(details, fmt.Sprintf("\n📌 %s\n*%s*: **%s**", dateStr, e.Course, e.Title))
			if e.Description != "" {
				details = append(details, fmt.Sprintf("  ↪ %s", e.Description))
			}
		}
	}

	return strings.Join(append(header, details...), "\n")
}

// sortedByStart returns the events in ascending start order. The sort is
// stable so events sharing a timestamp keep their portal order.
func sortedByStart(events []schoology.Event) []schoology.Event {
	sorted := make([]schoology.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})
	return sorted
}
