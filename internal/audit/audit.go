package audit

import "time"

// Fields carries the common audit columns embedded into every entity.
type Fields struct {
	CreatedBy *uint `json:"created_by,omitempty"`
	UpdatedBy *uint `json:"updated_by,omitempty"`
}

// StatusEntry is one record in an append-only status history.
type StatusEntry struct {
	ID        uint      `json:"id"`
	Status    string    `json:"status"`
	UpdatedBy uint      `json:"updated_by"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// History is an ordered, append-only list of status transitions.
type History []StatusEntry

// Append records a transition. Entries are never removed or rewritten.
func (h History) Append(status string, actorID uint, notes string, at time.Time) History {
	return append(h, StatusEntry{
		Status:    status,
		UpdatedBy: actorID,
		Notes:     notes,
		CreatedAt: at,
	})
}

// Latest returns the most recent entry, or nil for an empty history.
func (h History) Latest() *StatusEntry {
	if len(h) == 0 {
		return nil
	}
	return &h[len(h)-1]
}
