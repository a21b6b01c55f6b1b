// Package api defines the key assignment record and the REST client for the
// key assignment service. The service owns all business rules; this package
// only mirrors its wire contract.
package api

import (
	"strings"
	"time"
)

// Status is the lifecycle state of a key assignment.
// The transition Issued -> Returned is one-directional; the client never
// exposes a re-issue operation.
type Status string

const (
	// StatusIssued means the key is currently held by a staff member.
	StatusIssued Status = "Issued"
	// StatusReturned means the key has been handed back.
	StatusReturned Status = "Returned"
)

// KeyAssignment is one record of a key being issued to a staff member and
// optionally later returned. The server owns every field; the client holds a
// read-through cached copy and never mutates fields locally.
type KeyAssignment struct {
	ID         int        `json:"id"`
	StaffID    string     `json:"staff_id"`
	KeyID      string     `json:"key_id"`
	Status     Status     `json:"status"`
	IssueTime  time.Time  `json:"issue_time"`
	ReturnTime *time.Time `json:"return_time,omitempty"`
}

// Active reports whether the key is currently issued.
func (a KeyAssignment) Active() bool {
	return a.Status == StatusIssued
}

// MatchesSearch reports whether term is a case-insensitive substring of the
// staff ID or the key ID. The empty term matches every assignment.
func (a KeyAssignment) MatchesSearch(term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(a.StaffID), term) ||
		strings.Contains(strings.ToLower(a.KeyID), term)
}
