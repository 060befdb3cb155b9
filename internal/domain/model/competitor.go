// Package model contains domain models passed between layers.
package model

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Stat bounds shared by popularity, stamina and match rating.
const (
	StatMin = 0
	StatMax = 100
)

// Clamp bounds v to [StatMin, StatMax].
func Clamp(v int) int {
	return max(StatMin, min(StatMax, v))
}

// Alignment is one of the two opposing narrative sides.
type Alignment string

// Known alignments.
const (
	Face Alignment = "Face"
	Heel Alignment = "Heel"
)

// ParseAlignment accepts Face or Heel in any letter case.
func ParseAlignment(s string) (Alignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "face":
		return Face, nil
	case "heel":
		return Heel, nil
	}
	return "", fmt.Errorf("unknown alignment %q", s)
}

// Competitor is a roster member. Popularity and Stamina are kept in
// [StatMin, StatMax] by every constructor and by the result applier.
type Competitor struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Alignment     Alignment           `json:"alignment"`
	Popularity    int                 `json:"popularity"`
	Stamina       int                 `json:"stamina"`
	Proficiencies map[string]struct{} `json:"-"`
}

// NewCompetitor builds a Competitor with clamped stats.
func NewCompetitor(id, name string, alignment Alignment, popularity, stamina int, proficiencies ...string) Competitor {
	c := Competitor{
		ID:            id,
		Name:          name,
		Alignment:     alignment,
		Popularity:    Clamp(popularity),
		Stamina:       Clamp(stamina),
		Proficiencies: make(map[string]struct{}, len(proficiencies)),
	}
	for _, p := range proficiencies {
		c.Proficiencies[p] = struct{}{}
	}
	return c
}

// IsProficient reports whether categoryID is in the competitor's proficiency set.
func (c Competitor) IsProficient(categoryID string) bool {
	_, ok := c.Proficiencies[categoryID]
	return ok
}

// ProficiencyList returns the proficiency set in sorted order.
func (c Competitor) ProficiencyList() []string {
	out := make([]string, 0, len(c.Proficiencies))
	for p := range c.Proficiencies {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// MarshalJSON renders the proficiency set as a sorted list.
func (c Competitor) MarshalJSON() ([]byte, error) {
	type plain Competitor
	return json.Marshal(struct {
		plain
		Proficiencies []string `json:"proficiencies"`
	}{plain: plain(c), Proficiencies: c.ProficiencyList()})
}

// Clone returns a deep copy so callers cannot reach the owner's proficiency map.
func (c Competitor) Clone() Competitor {
	out := c
	out.Proficiencies = make(map[string]struct{}, len(c.Proficiencies))
	for p := range c.Proficiencies {
		out.Proficiencies[p] = struct{}{}
	}
	return out
}
