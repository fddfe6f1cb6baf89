package view

import (
	"fmt"
)

// Status is the lifecycle position of a view
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusError
)

var statusNames = map[Status]string{
	StatusIdle:    "idle",
	StatusLoading: "loading",
	StatusLoaded:  "loaded",
	StatusError:   "error",
}

// String returns the lowercase status name
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// MarshalText renders the status by name in JSON output
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Terminal reports whether the status ends a load
func (s Status) Terminal() bool {
	return s == StatusLoaded || s == StatusError
}

// sequencer numbers loads so that only the latest one may update a view.
// It is not safe for concurrent use; views guard it with their own mutex.
type sequencer struct {
	seq    uint64
	closed bool
}

func (s *sequencer) begin() uint64 {
	s.seq++
	return s.seq
}

func (s *sequencer) current(seq uint64) bool {
	return !s.closed && seq == s.seq
}
