// Package timerange computes the day and week windows used to query the
// portal calendar.
//
// All functions are pure over an injected "now" and return Unix-second
// ranges based on local wall-clock midnights. Weekday reckoning treats
// Monday as the first day of the week.
package timerange
