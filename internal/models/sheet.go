package models

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/tatianab/char-sheet/internal/stats"
)

// Coins in the order the sheet shows them: copper, silver, electrum, gold,
// platinum.
var Coins = []string{"MR", "MA", "ME", "MO", "MP"}

const (
	SpellLevels    = 9
	CantripSlots   = 8
	DeathSaveBoxes = 3
)

// NewSheet returns a blank sheet with the same defaults as a fresh page.
func NewSheet() *Sheet {
	s := &Sheet{
		Abilities: Abilities{
			Scores:       make(map[string]Value, len(stats.Abilities)),
			SavingThrows: make(map[string]Flag, len(stats.Abilities)),
		},
		Combat: Combat{
			Proficiency: IntValue(stats.DefaultProficiencyBonus),
			HitDice:     HitDice{Current: "1", Max: "1", Type: "d8"},
			DeathSaves: DeathSaves{
				Success: make([]Flag, DeathSaveBoxes),
				Failure: make([]Flag, DeathSaveBoxes),
			},
		},
		Skills:  make(map[string]SkillFlags, len(stats.Skills)),
		Coins:   make(map[string]Value, len(Coins)),
		Scaling: make(map[string]string, len(stats.Skills)),
		Spells: Spells{
			Cantrips: Cantrips{Known: "0", List: make([]string, CantripSlots)},
			Slots:    make([]SpellSlot, SpellLevels),
			Spells:   make([]SpellLevel, SpellLevels),
		},
		DMData: DMData{
			Stats: DMStats{Abilities: make(map[string]Value, len(stats.Abilities))},
		},
	}
	for _, a := range stats.Abilities {
		s.Abilities.Scores[string(a)] = IntValue(stats.DefaultScore)
		s.Abilities.SavingThrows[string(a)] = 0
		s.DMData.Stats.Abilities[string(a)] = IntValue(stats.DefaultScore)
	}
	for _, sk := range stats.Skills {
		s.Skills[sk.Key] = SkillFlags{}
		s.Scaling[sk.Key] = string(sk.Ability)
	}
	for _, c := range Coins {
		s.Coins[c] = "0"
	}
	for i := range s.Spells.Slots {
		s.Spells.Slots[i] = SpellSlot{Level: i + 1, Available: "0", Max: "0"}
	}
	return s
}

// Character rebuilds the stat state from the document. Missing or
// unparseable numbers fall back to the sheet defaults; unknown skills and
// abilities are skipped. When both skill boxes are ticked, expertise wins.
func (s *Sheet) Character() *stats.Character {
	c := stats.NewCharacter()
	for _, a := range stats.Abilities {
		if raw, ok := s.Abilities.Scores[string(a)]; ok {
			c.SetAbilityScore(a, string(raw))
		}
		c.SetSavingThrowProficiency(a, s.Abilities.SavingThrows[string(a)].Checked())
	}
	c.SetProficiencyBonus(string(s.Combat.Proficiency))

	skills, scaling := s.resolveSkills()
	for _, sk := range stats.Skills {
		flags := skills[sk.Key]
		level := stats.None
		switch {
		case flags.Expertise.Checked():
			level = stats.Expertise
		case flags.Proficient.Checked():
			level = stats.Proficient
		}
		_ = c.SetSkillProficiency(sk.Key, level)
		if a, ok := stats.ParseAbility(scaling[sk.Key]); ok {
			_ = c.SetScaling(sk.Key, a)
		}
	}
	return c
}

// SetCharacter writes the stat state back into the document using catalog
// keys. Fields the stat engine does not own are left untouched.
func (s *Sheet) SetCharacter(c *stats.Character) {
	if s.Abilities.Scores == nil {
		s.Abilities.Scores = make(map[string]Value, len(stats.Abilities))
	}
	if s.Abilities.SavingThrows == nil {
		s.Abilities.SavingThrows = make(map[string]Flag, len(stats.Abilities))
	}
	for _, a := range stats.Abilities {
		s.Abilities.Scores[string(a)] = IntValue(c.Score(a))
		s.Abilities.SavingThrows[string(a)] = FlagOf(c.SavingThrowProficient(a))
	}
	s.Combat.Proficiency = IntValue(c.ProficiencyBonus())

	// Legacy documents key skills by display name; rewrite them by key.
	s.Skills = make(map[string]SkillFlags, len(stats.Skills))
	s.Scaling = make(map[string]string, len(stats.Skills))
	for _, sk := range stats.Skills {
		level := c.SkillProficiency(sk.Key)
		s.Skills[sk.Key] = SkillFlags{
			Proficient: FlagOf(level == stats.Proficient),
			Expertise:  FlagOf(level == stats.Expertise),
		}
		s.Scaling[sk.Key] = string(c.Scaling(sk.Key))
	}
}

// resolveSkills re-keys the skill and scaling maps by catalog key. Entries
// keyed by display name are read first so exact keys take precedence.
func (s *Sheet) resolveSkills() (map[string]SkillFlags, map[string]string) {
	skills := make(map[string]SkillFlags, len(stats.Skills))
	scaling := make(map[string]string, len(stats.Skills))
	for _, sk := range stats.Skills {
		skills[sk.Key] = SkillFlags{}
		scaling[sk.Key] = string(sk.Ability)
	}
	for _, exact := range []bool{false, true} {
		for name, flags := range s.Skills {
			if sk, ok := stats.LookupSkill(name); ok && (name == sk.Key) == exact {
				skills[sk.Key] = flags
			}
		}
		for name, ability := range s.Scaling {
			sk, ok := stats.LookupSkill(name)
			if !ok || (name == sk.Key) != exact {
				continue
			}
			if a, ok := stats.ParseAbility(ability); ok {
				scaling[sk.Key] = string(a)
			}
		}
	}
	return skills, scaling
}

func (s *Sheet) normalize() {
	s.Skills, s.Scaling = s.resolveSkills()
}

// Coin returns a coin count, 0 when missing or unparseable.
func (s *Sheet) Coin(name string) int {
	return s.Coins[strings.ToUpper(name)].Int(0)
}

// SpellSlot returns the available and maximum slots for a level in 1..9.
func (s *Sheet) SpellSlot(level int) (available, maximum int) {
	for _, slot := range s.Spells.Slots {
		if slot.Level == level {
			return slot.Available.Int(0), slot.Max.Int(0)
		}
	}
	return 0, 0
}

// SetGMAbility stores a GM-view score, clamped like a player score.
func (s *Sheet) SetGMAbility(a stats.Ability, raw string) int {
	if s.DMData.Stats.Abilities == nil {
		s.DMData.Stats.Abilities = make(map[string]Value, len(stats.Abilities))
	}
	score := min(max(stats.LenientInt(raw, stats.DefaultScore), stats.MinScore), stats.MaxScore)
	s.DMData.Stats.Abilities[string(a)] = IntValue(score)
	return score
}

// GMModifiers computes the modifiers shown in the GM view.
func (s *Sheet) GMModifiers() map[stats.Ability]int {
	mods := make(map[stats.Ability]int, len(stats.Abilities))
	for _, a := range stats.Abilities {
		score := s.DMData.Stats.Abilities[string(a)].Int(stats.DefaultScore)
		mods[a] = stats.ComputeModifier(score)
	}
	return mods
}

// FileName is the download name the page used for exports.
func (s *Sheet) FileName() string {
	name := strings.TrimSpace(s.CharacterInfo.Name)
	if name == "" {
		name = "personaggio"
	}
	return name + "_dnd_sheet.json"
}

// EncodeJSON writes the sheet in the browser page's JSON layout. The page
// keys skills and scaling by display name, so those maps are re-keyed; the
// sheet itself keeps catalog keys.
func EncodeJSON(w io.Writer, s *Sheet) error {
	out := *s
	skills, scaling := s.resolveSkills()
	out.Skills = make(map[string]SkillFlags, len(skills))
	out.Scaling = make(map[string]string, len(scaling))
	for _, sk := range stats.Skills {
		out.Skills[sk.Name] = skills[sk.Key]
		out.Scaling[sk.Name] = scaling[sk.Key]
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&out); err != nil {
		return fmt.Errorf("encode sheet: %w", err)
	}
	return nil
}

// DecodeJSON reads a sheet exported by the browser page or by EncodeJSON.
// Sections missing from the input keep their NewSheet defaults.
func DecodeJSON(r io.Reader) (*Sheet, error) {
	s := NewSheet()
	s.Skills, s.Scaling = nil, nil
	if err := json.NewDecoder(r).Decode(s); err != nil {
		return nil, fmt.Errorf("decode sheet: %w", err)
	}
	s.normalize()
	return s, nil
}
