package types

import "time"

// EventType names a dashboard UI event.
type EventType string

const (
	EventFilterChanged      EventType = "filter_changed"
	EventThemeToggled       EventType = "theme_toggled"
	EventNavigationSelected EventType = "navigation_selected"
)

// DashboardEvent is the typed message sent by the presentation layer.
// Only the fields relevant to Type are read.
type DashboardEvent struct {
	Type           EventType `json:"type"`
	CapCategory    string    `json:"capCategory,omitempty"`
	Recommendation string    `json:"recommendation,omitempty"`
	SortKey        string    `json:"sortKey,omitempty"`
	Section        string    `json:"section,omitempty"`
}

// FilterChanged builds a filter_changed event.
func FilterChanged(capCategory, recommendation, sortKey string) DashboardEvent {
	return DashboardEvent{Type: EventFilterChanged, CapCategory: capCategory, Recommendation: recommendation, SortKey: sortKey}
}

// ThemeToggled builds a theme_toggled event.
func ThemeToggled() DashboardEvent {
	return DashboardEvent{Type: EventThemeToggled}
}

// NavigationSelected builds a navigation_selected event.
func NavigationSelected(section string) DashboardEvent {
	return DashboardEvent{Type: EventNavigationSelected, Section: section}
}

// AuditEvent is what gets published to an event sink after an event is applied.
type AuditEvent struct {
	ID        string         `json:"id"`
	Event     DashboardEvent `json:"event"`
	Filter    FilterSpec     `json:"filter"`
	Theme     Theme          `json:"theme"`
	Section   string         `json:"section"`
	Timestamp time.Time      `json:"timestamp"`
}
