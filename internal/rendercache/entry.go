package rendercache

import "time"

// Entry is one rendered document
type Entry struct {
	Key         string    `json:"key"`
	Target      string    `json:"target"`
	Body        string    `json:"-"`
	Version     uint64    `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	SizeBytes   int64     `json:"size_bytes"`
	AccessCount int       `json:"access_count"`
}

// NewEntry creates an entry for body rendered under key
func NewEntry(key, target, body string, version uint64) *Entry {
	return &Entry{
		Key:       key,
		Target:    target,
		Body:      body,
		Version:   version,
		CreatedAt: time.Now(),
		SizeBytes: int64(len(body)),
	}
}

// RecordAccess updates access metadata when this entry is served
func (e *Entry) RecordAccess() {
	e.AccessCount++
}
