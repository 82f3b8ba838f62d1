// Package stats holds a character's raw inputs and computes every derived
// number shown on the sheet: modifiers, saving throws, skill bonuses,
// passive perception and initiative.
//
// Setters never reject numeric input. Unparseable values fall back to the
// sheet defaults (10 for scores, 2 for the proficiency bonus).
package stats

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	DefaultScore            = 10
	DefaultProficiencyBonus = 2
	MinScore                = 1
	MaxScore                = 30
)

var (
	ErrUnknownSkill   = errors.New("unknown skill")
	ErrUnknownAbility = errors.New("unknown ability")
)

// Proficiency is the training level of a skill.
type Proficiency int

const (
	None Proficiency = iota
	Proficient
	Expertise
)

func (p Proficiency) String() string {
	switch p {
	case Proficient:
		return "proficient"
	case Expertise:
		return "expertise"
	default:
		return "none"
	}
}

// ParseProficiency accepts "none", "proficient"/"prof" and "expertise"/"exp".
func ParseProficiency(s string) (Proficiency, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "off", "":
		return None, true
	case "proficient", "prof", "on":
		return Proficient, true
	case "expertise", "exp", "mastery":
		return Expertise, true
	}
	return None, false
}

// Character is the mutable state of one sheet. It is not safe for
// concurrent use; every sheet owns its own Character.
type Character struct {
	scores    map[Ability]int
	modifiers map[Ability]int
	saves     map[Ability]bool
	skills    map[string]Proficiency
	scaling   map[string]Ability
	profBonus int
}

// NewCharacter returns a character with every score at 10, a proficiency
// bonus of 2, no proficiencies and catalog-default scaling.
func NewCharacter() *Character {
	c := &Character{
		scores:    make(map[Ability]int, len(Abilities)),
		modifiers: make(map[Ability]int, len(Abilities)),
		saves:     make(map[Ability]bool, len(Abilities)),
		skills:    make(map[string]Proficiency, len(Skills)),
		scaling:   make(map[string]Ability, len(Skills)),
		profBonus: DefaultProficiencyBonus,
	}
	for _, a := range Abilities {
		c.SetAbility(a, DefaultScore)
	}
	for _, sk := range Skills {
		c.scaling[sk.Key] = sk.Ability
	}
	return c
}

// ComputeModifier returns floor((score-10)/2).
func ComputeModifier(score int) int {
	d := score - 10
	if d < 0 {
		return -((-d + 1) / 2)
	}
	return d / 2
}

// SetAbilityScore stores a raw form value and returns the resulting score.
func (c *Character) SetAbilityScore(a Ability, raw string) int {
	score, ok := parseLeadingInt(raw)
	if !ok {
		score = DefaultScore
	}
	c.SetAbility(a, score)
	return c.scores[a]
}

// SetAbility stores score clamped to [1,30] and refreshes its modifier.
func (c *Character) SetAbility(a Ability, score int) {
	score = min(max(score, MinScore), MaxScore)
	c.scores[a] = score
	c.modifiers[a] = ComputeModifier(score)
}

func (c *Character) Score(a Ability) int {
	if s, ok := c.scores[a]; ok {
		return s
	}
	return DefaultScore
}

func (c *Character) Modifier(a Ability) int {
	return c.modifiers[a]
}

// SetProficiencyBonus stores a raw form value, defaulting to 2.
func (c *Character) SetProficiencyBonus(raw string) int {
	b, ok := parseLeadingInt(raw)
	if !ok {
		b = DefaultProficiencyBonus
	}
	c.profBonus = b
	return b
}

func (c *Character) SetProficiencyBonusValue(b int) {
	c.profBonus = b
}

func (c *Character) ProficiencyBonus() int {
	return c.profBonus
}

func (c *Character) SetSavingThrowProficiency(a Ability, proficient bool) {
	c.saves[a] = proficient
}

func (c *Character) SavingThrowProficient(a Ability) bool {
	return c.saves[a]
}

// SavingThrow is the ability modifier plus the bonus when proficient.
func (c *Character) SavingThrow(a Ability) int {
	bonus := c.Modifier(a)
	if c.saves[a] {
		bonus += c.profBonus
	}
	return bonus
}

// SetSkillProficiency replaces the training level of a skill. Because the
// level is a single value, proficient and expertise can never coexist.
func (c *Character) SetSkillProficiency(skill string, level Proficiency) error {
	sk, ok := LookupSkill(skill)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSkill, skill)
	}
	c.skills[sk.Key] = level
	return nil
}

// MarkProficient follows checkbox semantics: checking it clears expertise,
// unchecking it only clears a plain proficiency.
func (c *Character) MarkProficient(skill string, on bool) error {
	return c.mark(skill, Proficient, on)
}

// MarkExpertise is the expertise counterpart of MarkProficient.
func (c *Character) MarkExpertise(skill string, on bool) error {
	return c.mark(skill, Expertise, on)
}

func (c *Character) mark(skill string, level Proficiency, on bool) error {
	sk, ok := LookupSkill(skill)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSkill, skill)
	}
	switch {
	case on:
		c.skills[sk.Key] = level
	case c.skills[sk.Key] == level:
		c.skills[sk.Key] = None
	}
	return nil
}

func (c *Character) SkillProficiency(skill string) Proficiency {
	sk, ok := LookupSkill(skill)
	if !ok {
		return None
	}
	return c.skills[sk.Key]
}

// SetScaling changes which ability governs a skill. Proficiency is left as is.
func (c *Character) SetScaling(skill string, a Ability) error {
	sk, ok := LookupSkill(skill)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSkill, skill)
	}
	parsed, ok := ParseAbility(string(a))
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAbility, a)
	}
	c.scaling[sk.Key] = parsed
	return nil
}

// Scaling returns the ability governing a skill, or "" for unknown skills.
func (c *Character) Scaling(skill string) Ability {
	sk, ok := LookupSkill(skill)
	if !ok {
		return ""
	}
	if a, ok := c.scaling[sk.Key]; ok {
		return a
	}
	return sk.Ability
}

// SkillBonus is the governing modifier plus the proficiency bonus, doubled
// for expertise.
func (c *Character) SkillBonus(skill string) (int, error) {
	sk, ok := LookupSkill(skill)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSkill, skill)
	}
	bonus := c.Modifier(c.Scaling(sk.Key))
	switch c.skills[sk.Key] {
	case Expertise:
		bonus += 2 * c.profBonus
	case Proficient:
		bonus += c.profBonus
	}
	return bonus, nil
}

// PassivePerception is 10 plus the perception skill bonus.
func (c *Character) PassivePerception() int {
	bonus, err := c.SkillBonus(PerceptionKey)
	if err != nil {
		panic(fmt.Sprintf("stats: perception missing from catalog: %v", err))
	}
	return 10 + bonus
}

// Initiative is the dexterity modifier.
func (c *Character) Initiative() int {
	return c.Modifier(Dexterity)
}

// parseLeadingInt reads an optionally signed integer prefix after leading
// whitespace, so "14", " 14" and "14abc" all yield 14.
func parseLeadingInt(raw string) (int, bool) {
	s := strings.TrimLeft(raw, " \t\r\n")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// LenientInt parses raw the way form fields are read, returning def when no
// leading integer is present.
func LenientInt(raw string, def int) int {
	if n, ok := parseLeadingInt(raw); ok {
		return n
	}
	return def
}
