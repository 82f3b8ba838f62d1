package models

// Sheet is the persisted character sheet document.
type Sheet struct {
	CharacterInfo CharacterInfo         `yaml:"character_info" json:"character_info"`
	Abilities     Abilities             `yaml:"abilities" json:"abilities"`
	Combat        Combat                `yaml:"combat" json:"combat"`
	Skills        map[string]SkillFlags `yaml:"skills" json:"skills"`
	Equipment     []Item                `yaml:"equipment" json:"equipment"`
	Coins         map[string]Value      `yaml:"coins" json:"coins"` // MR, MA, ME, MO, MP
	Spells        Spells                `yaml:"spells" json:"spells"`
	TextAreas     TextAreas             `yaml:"text_areas" json:"text_areas"`
	Scaling       map[string]string     `yaml:"scaling" json:"scaling"` // skill key -> ability key
	DMData        DMData                `yaml:"dm_data" json:"dm_data"`
	Images        []string              `yaml:"images,omitempty" json:"images"`
}

// CharacterInfo is the identity block at the top of the sheet.
type CharacterInfo struct {
	Name       string `yaml:"name" json:"name"`
	Class      string `yaml:"class" json:"class"`
	Race       string `yaml:"race" json:"race"`
	Level      Value  `yaml:"level" json:"level"`
	Age        Value  `yaml:"age" json:"age"`
	Height     Value  `yaml:"height" json:"height"`
	SkinTone   string `yaml:"skin_tone" json:"skin_tone"`
	Background string `yaml:"background" json:"background"`
	Alignment  string `yaml:"alignment" json:"alignment"`
	XP         Value  `yaml:"xp" json:"xp"`
	Weight     Value  `yaml:"weight" json:"weight"`
	Hair       string `yaml:"hair" json:"hair"`
	Eyes       string `yaml:"eyes" json:"eyes"`
}

type Abilities struct {
	Scores       map[string]Value `yaml:"scores" json:"scores"`
	SavingThrows map[string]Flag  `yaml:"saving_throws" json:"saving_throws"`
}

type Combat struct {
	Speed       Value      `yaml:"speed" json:"speed"`
	Proficiency Value      `yaml:"proficiency" json:"proficiency"`
	HPCurrent   Value      `yaml:"hp_current" json:"hp_current"`
	HPMax       Value      `yaml:"hp_max" json:"hp_max"`
	HPTemp      Value      `yaml:"hp_temp" json:"hp_temp"`
	AC          Value      `yaml:"ac" json:"ac"`
	TempAC      Value      `yaml:"temp_ac" json:"temp_ac"`
	HitDice     HitDice    `yaml:"hit_dice" json:"hit_dice"`
	DeathSaves  DeathSaves `yaml:"death_saves" json:"death_saves"`
	Weapons     []Weapon   `yaml:"weapons" json:"weapons"`
}

type HitDice struct {
	Current Value  `yaml:"current" json:"current"`
	Max     Value  `yaml:"max" json:"max"`
	Type    string `yaml:"type" json:"type"` // e.g. "d8"
}

type DeathSaves struct {
	Success []Flag `yaml:"success" json:"success"`
	Failure []Flag `yaml:"failure" json:"failure"`
}

type Weapon struct {
	Name   string `yaml:"name" json:"name"`
	Bonus  string `yaml:"bonus" json:"bonus"`
	Damage string `yaml:"damage" json:"damage"` // dice command, e.g. "1d8+3"
}

// SkillFlags mirrors the two checkboxes of a skill row.
type SkillFlags struct {
	Proficient Flag `yaml:"proficient" json:"proficient"`
	Expertise  Flag `yaml:"expertise" json:"expertise"`
}

type Item struct {
	Item     string `yaml:"item" json:"item"`
	Quantity Value  `yaml:"quantity" json:"quantity"`
	Usage    string `yaml:"usage" json:"usage"`
}

type Spells struct {
	Spellcasting Spellcasting `yaml:"spellcasting" json:"spellcasting"`
	Cantrips     Cantrips     `yaml:"cantrips" json:"cantrips"`
	Slots        []SpellSlot  `yaml:"slots" json:"slots"`
	Spells       []SpellLevel `yaml:"spells" json:"spells"` // index 0 is level 1
}

type Spellcasting struct {
	Ability        string `yaml:"ability" json:"ability"`
	SaveDC         Value  `yaml:"save_dc" json:"save_dc"`
	AttackBonus    Value  `yaml:"attack_bonus" json:"attack_bonus"`
	SpellsKnown    Value  `yaml:"spells_known" json:"spells_known"`
	SpellsPrepared Value  `yaml:"spells_prepared" json:"spells_prepared"`
}

type Cantrips struct {
	Known Value    `yaml:"known" json:"known"`
	List  []string `yaml:"list" json:"list"`
}

type SpellSlot struct {
	Level     int   `yaml:"level" json:"level"`
	Available Value `yaml:"available" json:"available"`
	Max       Value `yaml:"max" json:"max"`
}

type SpellLevel struct {
	Spells []Spell `yaml:"spells" json:"spells"`
}

type Spell struct {
	Name     string `yaml:"name" json:"name"`
	Prepared Flag   `yaml:"prepared" json:"prepared"`
}

type TextAreas struct {
	FeaturesTraits string `yaml:"features_traits" json:"features_traits"`
	PlayerNotes    string `yaml:"player_notes" json:"player_notes"`
}

// DMData is the game-master view kept alongside the player's sheet.
type DMData struct {
	Notes  string   `yaml:"notes" json:"notes"`
	Stats  DMStats  `yaml:"stats" json:"stats"`
	Images []string `yaml:"images,omitempty" json:"images"`
}

type DMStats struct {
	HP          Value            `yaml:"hp" json:"hp"`
	AC          Value            `yaml:"ac" json:"ac"`
	Initiative  Value            `yaml:"initiative" json:"initiative"`
	Proficiency Value            `yaml:"proficiency" json:"proficiency"`
	Abilities   map[string]Value `yaml:"abilities" json:"abilities"`
}
