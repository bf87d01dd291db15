// Package model holds the data types shared by the application state,
// poller, input dispatcher and renderer: container ids, lifecycle state,
// the per-container item, ports, filters and sort keys.
package model

import "strings"

// ContainerId is the daemon's opaque, printable container identifier.
// It is totally ordered by lexicographic comparison of its characters.
type ContainerId string

// Short returns the first 8 characters, or the whole id if it is shorter.
func (id ContainerId) Short() string {
	s := string(id)
	if len(s) <= 8 {
		return s
	}
	return s[:8]
}

// Less implements the total order used for id comparisons.
func (id ContainerId) Less(other ContainerId) bool {
	return strings.Compare(string(id), string(other)) < 0
}
