package model

// Tuning holds the per-category knobs the engine reads.
type Tuning struct {
	RatingBonus           int `json:"rating_bonus"`
	RatingVariance        int `json:"rating_variance"`
	StaminaCostWinner     int `json:"stamina_cost_winner"`
	StaminaCostLoser      int `json:"stamina_cost_loser"`
	PopularityDeltaWinner int `json:"popularity_delta_winner"`
	PopularityDeltaLoser  int `json:"popularity_delta_loser"`
}

// Category is a match format and its tuning profile. Immutable once loaded.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Tuning      Tuning `json:"tuning"`
}
