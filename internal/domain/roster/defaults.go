package roster

import "github.com/okian/ringside/internal/domain/model"

// Defaults returns the built-in roster used when no external roster is usable.
func Defaults() *Store {
	s, err := New(
		model.NewCompetitor("asha", "Asha Blaze", model.Face, 48, 90, "singles", "submission", "iron_man"),
		model.NewCompetitor("rohan", "Rohan Steel", model.Heel, 52, 85, "singles", "steel_cage", "hardcore"),
		model.NewCompetitor("mina", "Mina Kage", model.Heel, 44, 76, "singles", "ladder", "no_dq"),
		model.NewCompetitor("leo", "Leo Nova", model.Face, 61, 70, "singles", "tlc", "ladder"),
		model.NewCompetitor("jax", "Jax Thunder", model.Face, 57, 82, "singles", "falls_count_anywhere", "hardcore"),
		model.NewCompetitor("ivy", "Ivy Wren", model.Heel, 50, 66, "singles", "submission", "steel_cage"),
		model.NewCompetitor("ember", "Ember Vale", model.Face, 55, 74, "singles", "iron_man", "last_man_standing"),
		model.NewCompetitor("goro", "Goro Wolfe", model.Heel, 63, 68, "singles", "hardcore", "no_dq"),
	)
	if err != nil {
		// the built-in roster is static and valid
		panic(err)
	}
	s.source = SourceDefaults
	return s
}
