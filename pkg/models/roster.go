package models

import "time"

// MaxRosterMembers bounds the length of a roster's membership list.
const MaxRosterMembers = 6

type Roster struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Members   []RosterMember `json:"members"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// RosterMember is one slot of a roster. Position is 1-indexed and
// contiguous within the roster.
type RosterMember struct {
	Position int `json:"position"`
	RecordID int `json:"record_id"`
}

// MemberIDs returns the member record ids in position order.
func (r Roster) MemberIDs() []int {
	ids := make([]int, 0, len(r.Members))
	for _, m := range r.Members {
		ids = append(ids, m.RecordID)
	}
	return ids
}

// RosterEvent is published after a roster is created or its members change.
type RosterEvent struct {
	Type     string    `json:"type"` // "roster.created" or "roster.members_set"
	RosterID int64     `json:"roster_id"`
	Name     string    `json:"name"`
	Members  []int     `json:"members"`
	At       time.Time `json:"at"`
}
