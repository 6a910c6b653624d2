package schoology

import "time"

// Child identifies a dependent account the session can switch into. The
// portal scopes calendar data to the currently active child, so the child ID
// is part of every fetch.
type Child struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// RawEvent is one calendar item exactly as the portal's AJAX endpoint returns
// it. Field values are entity-encoded and Body is an HTML fragment.
type RawEvent struct {
	TitleText    string `json:"titleText"`
	Start        string `json:"start"`
	ContentTitle string `json:"content_title"`
	Body         string `json:"body"`
	EType        string `json:"e_type"`
}

// Event is the canonical, normalized form of a calendar item. Description is
// plain text: markup stripped and entities decoded, possibly empty.
type Event struct {
	Title       string
	Start       time.Time
	Course      string
	Type        string
	Description string
}
