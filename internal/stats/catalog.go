package stats

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Ability identifies one of the six base attributes.
type Ability string

const (
	Strength     Ability = "FOR"
	Dexterity    Ability = "DES"
	Constitution Ability = "COS"
	Intelligence Ability = "INT"
	Wisdom       Ability = "SAG"
	Charisma     Ability = "CAR"
)

// Abilities lists every ability in display order.
var Abilities = []Ability{Strength, Dexterity, Constitution, Intelligence, Wisdom, Charisma}

// ParseAbility resolves a case-insensitive ability key such as "des".
func ParseAbility(s string) (Ability, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, a := range Abilities {
		if string(a) == s {
			return a, true
		}
	}
	return "", false
}

// Skill is an immutable catalog entry.
type Skill struct {
	Key     string
	Name    string
	Ability Ability
}

// PerceptionKey is the catalog key that feeds passive perception.
const PerceptionKey = "percezione"

// Skills is the fixed skill catalog in display order.
var Skills = []Skill{
	{Key: "acrobazia", Name: "Acrobazia", Ability: Dexterity},
	{Key: "addestrare_animali", Name: "Addestrare Animali", Ability: Wisdom},
	{Key: "arcano", Name: "Arcano", Ability: Intelligence},
	{Key: "atletica", Name: "Atletica", Ability: Strength},
	{Key: "furtivita", Name: "Furtivita'", Ability: Dexterity},
	{Key: "indagare", Name: "Indagare", Ability: Intelligence},
	{Key: "inganno", Name: "Inganno", Ability: Charisma},
	{Key: "intimidire", Name: "Intimidire", Ability: Charisma},
	{Key: "intrattenere", Name: "Intrattenere", Ability: Charisma},
	{Key: "intuizione", Name: "Intuizione", Ability: Wisdom},
	{Key: "medicina", Name: "Medicina", Ability: Wisdom},
	{Key: "natura", Name: "Natura", Ability: Intelligence},
	{Key: PerceptionKey, Name: "Percezione", Ability: Wisdom},
	{Key: "persuasione", Name: "Persuasione", Ability: Charisma},
	{Key: "rapidita_di_mano", Name: "Rapidita' di mano", Ability: Dexterity},
	{Key: "religione", Name: "Religione", Ability: Intelligence},
	{Key: "sopravvivenza", Name: "Sopravvivenza", Ability: Wisdom},
	{Key: "storia", Name: "Storia", Ability: Intelligence},
}

var skillIndex = func() map[string]Skill {
	idx := make(map[string]Skill, len(Skills)*2)
	for _, sk := range Skills {
		idx[foldName(sk.Key)] = sk
		idx[foldName(sk.Name)] = sk
	}
	return idx
}()

// LookupSkill finds a skill by key or display name. Case, spacing,
// apostrophes, underscores and accents are ignored, so "Furtività" and
// "furtivita" resolve to the same entry.
func LookupSkill(name string) (Skill, bool) {
	sk, ok := skillIndex[foldName(name)]
	return sk, ok
}

func foldName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	var b strings.Builder
	for _, r := range strings.ToLower(folded) {
		switch r {
		case ' ', '\'', '_', '’':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
