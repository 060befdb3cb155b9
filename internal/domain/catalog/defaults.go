package catalog

import "github.com/okian/ringside/internal/domain/model"

// defaultCategories is the built-in set used whenever external data is
// absent or unusable.
var defaultCategories = []model.Category{
	{ID: "singles", Name: "Singles", Description: "A straight one-on-one contest.",
		Tuning: model.Tuning{RatingBonus: 0, RatingVariance: 5, StaminaCostWinner: 10, StaminaCostLoser: 12, PopularityDeltaWinner: 4, PopularityDeltaLoser: -2}},
	{ID: "hardcore", Name: "Hardcore", Description: "Weapons legal, no count-outs.",
		Tuning: model.Tuning{RatingBonus: 10, RatingVariance: 18, StaminaCostWinner: 20, StaminaCostLoser: 22, PopularityDeltaWinner: 8, PopularityDeltaLoser: -4}},
	{ID: "ladder", Name: "Ladder", Description: "First to climb and retrieve the prize wins.",
		Tuning: model.Tuning{RatingBonus: 8, RatingVariance: 14, StaminaCostWinner: 16, StaminaCostLoser: 18, PopularityDeltaWinner: 6, PopularityDeltaLoser: -2}},
	{ID: "steel_cage", Name: "Steel Cage", Description: "Escape the cage or pin your opponent.",
		Tuning: model.Tuning{RatingBonus: 7, RatingVariance: 12, StaminaCostWinner: 15, StaminaCostLoser: 17, PopularityDeltaWinner: 6, PopularityDeltaLoser: -3}},
	{ID: "falls_count_anywhere", Name: "Falls Count Anywhere", Description: "Pins count anywhere in the building.",
		Tuning: model.Tuning{RatingBonus: 5, RatingVariance: 12, StaminaCostWinner: 13, StaminaCostLoser: 15, PopularityDeltaWinner: 5, PopularityDeltaLoser: -2}},
	{ID: "submission", Name: "Submission", Description: "Only a tap-out ends it.",
		Tuning: model.Tuning{RatingBonus: 3, RatingVariance: 8, StaminaCostWinner: 11, StaminaCostLoser: 13, PopularityDeltaWinner: 4, PopularityDeltaLoser: -1}},
	{ID: "iron_man", Name: "Iron Man", Description: "Most falls inside the time limit wins.",
		Tuning: model.Tuning{RatingBonus: 9, RatingVariance: 10, StaminaCostWinner: 20, StaminaCostLoser: 20, PopularityDeltaWinner: 6, PopularityDeltaLoser: 0}},
	{ID: "tlc", Name: "TLC", Description: "Tables, ladders and chairs.",
		Tuning: model.Tuning{RatingBonus: 10, RatingVariance: 16, StaminaCostWinner: 18, StaminaCostLoser: 21, PopularityDeltaWinner: 7, PopularityDeltaLoser: -3}},
	{ID: "last_man_standing", Name: "Last Man Standing", Description: "Win by a ten count.",
		Tuning: model.Tuning{RatingBonus: 8, RatingVariance: 12, StaminaCostWinner: 17, StaminaCostLoser: 19, PopularityDeltaWinner: 6, PopularityDeltaLoser: -2}},
	{ID: "no_dq", Name: "No DQ", Description: "No disqualifications.",
		Tuning: model.Tuning{RatingBonus: 5, RatingVariance: 12, StaminaCostWinner: 13, StaminaCostLoser: 15, PopularityDeltaWinner: 5, PopularityDeltaLoser: -2}},
}

// Defaults returns the built-in catalog.
func Defaults() *Catalog {
	c, err := New(defaultCategories...)
	if err != nil {
		// defaultCategories is static and valid
		panic(err)
	}
	c.source = SourceDefaults
	return c
}
