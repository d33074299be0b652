package domain

import "time"

// ID is used across domain entities.
type ID int64

// Criteria narrows a route listing. Empty fields impose no constraint.
type Criteria struct {
	Source      string    `json:"source,omitempty"`
	Destination string    `json:"destination,omitempty"`
	Date        time.Time `json:"date,omitzero"`
}

// IsEmpty reports whether no criterion is set.
func (c Criteria) IsEmpty() bool {
	return c.Source == "" && c.Destination == "" && c.Date.IsZero()
}

// Complete reports whether every criterion is set (the search endpoint needs all three).
func (c Criteria) Complete() bool {
	return c.Source != "" && c.Destination != "" && !c.Date.IsZero()
}
