package stats

import "fmt"

// Snapshot is every derived number of a character at one point in time.
type Snapshot struct {
	ProficiencyBonus  int
	Scores            map[Ability]int
	Modifiers         map[Ability]int
	Saves             map[Ability]int
	Skills            map[string]int
	PassivePerception int
	Initiative        int
}

// Snapshot recomputes all derived values. Skills are keyed by catalog key.
func (c *Character) Snapshot() Snapshot {
	s := Snapshot{
		ProficiencyBonus:  c.profBonus,
		Scores:            make(map[Ability]int, len(Abilities)),
		Modifiers:         make(map[Ability]int, len(Abilities)),
		Saves:             make(map[Ability]int, len(Abilities)),
		Skills:            make(map[string]int, len(Skills)),
		PassivePerception: c.PassivePerception(),
		Initiative:        c.Initiative(),
	}
	for _, a := range Abilities {
		s.Scores[a] = c.Score(a)
		s.Modifiers[a] = c.Modifier(a)
		s.Saves[a] = c.SavingThrow(a)
	}
	for _, sk := range Skills {
		// Catalog keys always resolve.
		s.Skills[sk.Key], _ = c.SkillBonus(sk.Key)
	}
	return s
}

// FormatBonus renders a bonus with an explicit sign: "+3", "-1", "+0".
func FormatBonus(n int) string {
	return fmt.Sprintf("%+d", n)
}
