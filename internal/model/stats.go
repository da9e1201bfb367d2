package model

// StatsStatus represents the load state of an item's social counters
type StatsStatus string

const (
	// StatsStatusIdle means no fetch has been issued yet, or the last one failed
	StatsStatusIdle StatsStatus = "Idle"

	// StatsStatusLoading means a fetch is currently in flight
	StatsStatusLoading StatsStatus = "Loading"

	// StatsStatusReady means server-confirmed values are cached
	StatsStatusReady StatsStatus = "Ready"
)

// String returns the string representation of StatsStatus
func (ss StatsStatus) String() string {
	return string(ss)
}

// IsReady returns true if server-confirmed values are available
func (ss StatsStatus) IsReady() bool {
	return ss == StatsStatusReady
}

// IsLoading returns true if a fetch is in flight
func (ss StatsStatus) IsLoading() bool {
	return ss == StatsStatusLoading
}

// ReactionState is the server-confirmed reaction snapshot for one item:
// per-emoji totals plus the set of emojis the current viewer has used.
type ReactionState struct {
	Totals map[string]int `json:"totals"`
	Mine   []string       `json:"mine"`
}

// TotalFor returns the count for one emoji, zero if absent
func (rs ReactionState) TotalFor(emoji string) int {
	return rs.Totals[emoji]
}

// HasMine returns true if the viewer has reacted with the given emoji
func (rs ReactionState) HasMine(emoji string) bool {
	for _, e := range rs.Mine {
		if e == emoji {
			return true
		}
	}
	return false
}

// TotalReactions returns the sum of all per-emoji counts
func (rs ReactionState) TotalReactions() int {
	sum := 0
	for _, n := range rs.Totals {
		sum += n
	}
	return sum
}
