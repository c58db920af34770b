// go-models/submitted_request.go
package models

import (
	"strings"
	"time"
)

// SubmittedRequest is the short summary kept for a browser after one of its
// service requests was accepted by the backend.
type SubmittedRequest struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}

// CreatedAt parses Timestamp. ok is false when the stored value is not a valid
// RFC 3339 time; such records are treated as expired.
func (r SubmittedRequest) CreatedAt() (t time.Time, ok bool) {
	t, err := time.Parse(time.RFC3339Nano, r.Timestamp)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ExpiredAt reports whether the record is at least horizon old at now.
func (r SubmittedRequest) ExpiredAt(now time.Time, horizon time.Duration) bool {
	created, ok := r.CreatedAt()
	if !ok {
		return true
	}
	return now.Sub(created) >= horizon
}

// DisplayService is the lower-case, space separated form the site renders.
func (r SubmittedRequest) DisplayService() string {
	return strings.ToLower(strings.ReplaceAll(r.Service, "_", " "))
}

// FormatTimestamp renders a time the way the site stores it.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
