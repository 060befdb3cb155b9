package model

// StatDelta is the signed change one match makes to one competitor.
type StatDelta struct {
	Popularity int `json:"popularity"`
	Stamina    int `json:"stamina"`
}

// CategoryAudit records the category and the exact tuning a result was
// computed with, so later catalog edits cannot change its meaning.
type CategoryAudit struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Tuning Tuning `json:"tuning"`
}

// MatchResult is the outcome of one simulation. Deltas always holds exactly
// the two booked competitors. Applying a result is a single-shot operation.
type MatchResult struct {
	ID       string               `json:"id"`
	Seed     int64                `json:"seed"`
	WinnerID string               `json:"winner_id"`
	LoserID  string               `json:"loser_id"`
	Rating   int                  `json:"rating"`
	Deltas   map[string]StatDelta `json:"deltas"`
	Category CategoryAudit        `json:"category"`
}
