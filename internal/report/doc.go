// Package report renders the per-run summary of calendar events.
//
// The report is one string with two sections: a compact header listing one
// bullet per event under each child, and a detail section with the full
// date/time, course, and description. Children appear in the order they
// were processed; events within a child are sorted chronologically.
package report
