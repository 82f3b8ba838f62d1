package models

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tatianab/char-sheet/internal/stats"
)

func sampleCharacter(t *testing.T) *stats.Character {
	t.Helper()
	c := stats.NewCharacter()
	c.SetAbility(stats.Strength, 8)
	c.SetAbility(stats.Dexterity, 16)
	c.SetAbility(stats.Wisdom, 13)
	c.SetAbility(stats.Charisma, 30)
	c.SetProficiencyBonusValue(3)
	c.SetSavingThrowProficiency(stats.Dexterity, true)
	c.SetSavingThrowProficiency(stats.Wisdom, true)
	require.NoError(t, c.SetSkillProficiency("furtivita", stats.Expertise))
	require.NoError(t, c.SetSkillProficiency("percezione", stats.Proficient))
	require.NoError(t, c.SetScaling("atletica", stats.Dexterity))
	require.NoError(t, c.SetScaling("intimidire", stats.Strength))
	return c
}

func assertSameCharacter(t *testing.T, want, got *stats.Character) {
	t.Helper()
	assert.Equal(t, want.ProficiencyBonus(), got.ProficiencyBonus())
	for _, a := range stats.Abilities {
		assert.Equal(t, want.Score(a), got.Score(a), "score %s", a)
		assert.Equal(t, want.SavingThrowProficient(a), got.SavingThrowProficient(a), "save %s", a)
	}
	for _, sk := range stats.Skills {
		assert.Equal(t, want.SkillProficiency(sk.Key), got.SkillProficiency(sk.Key), "skill %s", sk.Key)
		assert.Equal(t, want.Scaling(sk.Key), got.Scaling(sk.Key), "scaling %s", sk.Key)
	}
	assert.Equal(t, want.Snapshot(), got.Snapshot())
}

func TestSheetYAMLRoundTrip(t *testing.T) {
	want := sampleCharacter(t)
	sheet := NewSheet()
	sheet.CharacterInfo = CharacterInfo{Name: "Elara", Class: "Ladra", Level: "5"}
	sheet.Equipment = []Item{{Item: "Corda", Quantity: "1", Usage: "15 m"}}
	sheet.Combat.Weapons = []Weapon{{Name: "Pugnale", Bonus: "+6", Damage: "1d4+3"}}
	sheet.TextAreas.PlayerNotes = "Owes the guild 40 MO."
	sheet.SetCharacter(want)

	data, err := yaml.Marshal(sheet)
	require.NoError(t, err)

	var loaded Sheet
	require.NoError(t, yaml.Unmarshal(data, &loaded))

	assert.Equal(t, "Elara", loaded.CharacterInfo.Name)
	assert.Equal(t, 5, loaded.CharacterInfo.Level.Int(1))
	require.Len(t, loaded.Equipment, 1)
	assert.Equal(t, "Corda", loaded.Equipment[0].Item)
	assert.Equal(t, "1d4+3", loaded.Combat.Weapons[0].Damage)
	assert.Equal(t, sheet.TextAreas, loaded.TextAreas)
	assertSameCharacter(t, want, loaded.Character())
}

func TestSheetJSONRoundTrip(t *testing.T) {
	want := sampleCharacter(t)
	sheet := NewSheet()
	sheet.SetCharacter(want)

	var buf bytes.Buffer
	require.NoError(t, EncodeJSON(&buf, sheet))
	loaded, err := DecodeJSON(&buf)
	require.NoError(t, err)

	assertSameCharacter(t, want, loaded.Character())
}

func TestEncodeJSONUsesDisplayNames(t *testing.T) {
	c := stats.NewCharacter()
	require.NoError(t, c.MarkExpertise("furtivita", true))
	require.NoError(t, c.SetScaling("atletica", stats.Dexterity))
	sheet := NewSheet()
	sheet.SetCharacter(c)

	var buf bytes.Buffer
	require.NoError(t, EncodeJSON(&buf, sheet))

	var raw struct {
		Skills  map[string]SkillFlags `json:"skills"`
		Scaling map[string]string     `json:"scaling"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	assert.True(t, raw.Skills["Furtivita'"].Expertise.Checked())
	assert.Equal(t, "DES", raw.Scaling["Atletica"])
	assert.Contains(t, raw.Scaling, "Addestrare Animali")
	assert.NotContains(t, raw.Skills, "furtivita")
	assert.NotContains(t, raw.Scaling, "atletica")

	// The sheet itself keeps catalog keys.
	assert.Contains(t, sheet.Skills, "furtivita")

	loaded, err := DecodeJSON(&buf)
	require.NoError(t, err)
	assertSameCharacter(t, c, loaded.Character())
}

// A save produced by the browser page: values are strings, checkboxes are
// 0/1 and skills are keyed by display name.
const legacyJSON = `{
  "character_info": {"name": "Borin", "level": "3", "xp": 900},
  "abilities": {
    "scores": {"FOR": "17", "DES": "", "COS": "15", "INT": "abc", "SAG": "12", "CAR": "9"},
    "saving_throws": {"FOR": 1, "DES": 0, "COS": 1, "INT": 0, "SAG": 0, "CAR": 0}
  },
  "combat": {"proficiency": "", "hp_current": "28", "hit_dice": {"current": "3", "max": "3", "type": "d10"},
             "death_saves": {"success": [1, 0, 0], "failure": [0, 0, 0]}},
  "skills": {
    "Atletica": {"proficient": 1, "expertise": 0},
    "Furtivita'": {"proficient": 1, "expertise": 1},
    "Percezione": {"proficient": true, "expertise": false}
  },
  "coins": {"MO": "12", "MA": "", "MR": "x"},
  "spells": {"slots": [{"level": 1, "available": "2", "max": "3"}]},
  "scaling": {"Atletica": "COS", "Rapidita' di mano": "INT", "Storia": "nope"}
}`

func TestDecodeLegacyJSON(t *testing.T) {
	sheet, err := DecodeJSON(strings.NewReader(legacyJSON))
	require.NoError(t, err)

	assert.Equal(t, "Borin", sheet.CharacterInfo.Name)
	assert.Equal(t, 900, sheet.CharacterInfo.XP.Int(0))
	assert.Equal(t, 12, sheet.Coin("mo"))
	assert.Equal(t, 0, sheet.Coin("MA"))
	assert.Equal(t, 0, sheet.Coin("MR"))
	assert.Equal(t, 0, sheet.Coin("MP"))
	avail, maximum := sheet.SpellSlot(1)
	assert.Equal(t, 2, avail)
	assert.Equal(t, 3, maximum)
	assert.True(t, sheet.Combat.DeathSaves.Success[0].Checked())

	c := sheet.Character()
	assert.Equal(t, 17, c.Score(stats.Strength))
	assert.Equal(t, 10, c.Score(stats.Dexterity))
	assert.Equal(t, 10, c.Score(stats.Intelligence))
	assert.Equal(t, 2, c.ProficiencyBonus())
	assert.True(t, c.SavingThrowProficient(stats.Constitution))

	assert.Equal(t, stats.Proficient, c.SkillProficiency("atletica"))
	assert.Equal(t, stats.Expertise, c.SkillProficiency("furtivita"))
	assert.Equal(t, stats.Proficient, c.SkillProficiency("percezione"))
	assert.Equal(t, stats.Constitution, c.Scaling("atletica"))
	assert.Equal(t, stats.Intelligence, c.Scaling("rapidita_di_mano"))
	assert.Equal(t, stats.Intelligence, c.Scaling("storia"))

	// Skills are re-keyed by catalog key after decoding.
	assert.Len(t, sheet.Skills, len(stats.Skills))
	assert.Equal(t, "COS", sheet.Scaling["atletica"])
	_, legacyKey := sheet.Skills["Atletica"]
	assert.False(t, legacyKey)
}

func TestDecodeJSONRejectsGarbage(t *testing.T) {
	_, err := DecodeJSON(strings.NewReader("{not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode sheet")
}

func TestNewSheetDefaults(t *testing.T) {
	sheet := NewSheet()

	c := sheet.Character()
	assertSameCharacter(t, stats.NewCharacter(), c)
	assert.Len(t, sheet.Spells.Slots, SpellLevels)
	assert.Equal(t, 9, sheet.Spells.Slots[8].Level)
	assert.Len(t, sheet.Spells.Cantrips.List, CantripSlots)
	for _, coin := range Coins {
		assert.Equal(t, 0, sheet.Coin(coin))
	}
	assert.Equal(t, "personaggio_dnd_sheet.json", sheet.FileName())
}

func TestGMView(t *testing.T) {
	sheet := NewSheet()
	assert.Equal(t, 18, sheet.SetGMAbility(stats.Strength, "18"))
	assert.Equal(t, 30, sheet.SetGMAbility(stats.Dexterity, "40"))
	assert.Equal(t, 10, sheet.SetGMAbility(stats.Wisdom, "?"))

	mods := sheet.GMModifiers()
	assert.Equal(t, 4, mods[stats.Strength])
	assert.Equal(t, 10, mods[stats.Dexterity])
	assert.Equal(t, 0, mods[stats.Wisdom])

	// The GM mirror never leaks into the player's stats.
	assert.Equal(t, 10, sheet.Character().Score(stats.Strength))
}

func TestFlagAndValueDecoding(t *testing.T) {
	var doc struct {
		A Flag  `yaml:"a"`
		B Flag  `yaml:"b"`
		C Value `yaml:"c"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("a: true\nb: 1\nc: 14\n"), &doc))
	assert.True(t, doc.A.Checked())
	assert.True(t, doc.B.Checked())
	assert.Equal(t, 14, doc.C.Int(0))
}
