// Package command parses the one-line commands typed at the sheet prompt.
//
//	roll 3 d8-2            r d20+5
//	set DES 14             bonus 3
//	save DES on            prof percezione expertise
//	scale atletica DES     gm FOR 18
//	write [name]           load name
//	narrate                help       quit
package command

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var ErrUnknownCommand = errors.New("unknown command")

// Command is the parsed form of a line. Exactly one field is set.
type Command struct {
	Roll    *RollCmd
	Set     *SetCmd
	Bonus   *BonusCmd
	Save    *SaveCmd
	Prof    *ProfCmd
	Scale   *ScaleCmd
	GM      *GMCmd
	Write   *WriteCmd
	Load    *LoadCmd
	Narrate *NarrateCmd
	Help    *HelpCmd
	Quit    *QuitCmd
}

// grammar covers the commands whose arguments are tokens. roll, set, bonus
// and gm take raw text and bypass the lexer.
type grammar struct {
	Save    *SaveCmd    `parser:"( @@"`
	Prof    *ProfCmd    `parser:"| @@"`
	Scale   *ScaleCmd   `parser:"| @@"`
	Write   *WriteCmd   `parser:"| @@"`
	Load    *LoadCmd    `parser:"| @@"`
	Narrate *NarrateCmd `parser:"| @@"`
	Help    *HelpCmd    `parser:"| @@"`
	Quit    *QuitCmd    `parser:"| @@ )"`
}

// RollCmd keeps the dice text exactly as typed; the space before "d" is
// significant to the dice interpreter.
type RollCmd struct {
	Expr string
}

// SetCmd stores an ability score. Value is the rest of the line as typed;
// the stat setters decide what it means.
type SetCmd struct {
	Ability string
	Value   string
}

type BonusCmd struct {
	Value string
}

type SaveCmd struct {
	Keyword string `parser:"@\"save\""`
	Ability string `parser:"@Ident"`
	State   string `parser:"@Ident"`
}

type ProfCmd struct {
	Keyword string `parser:"@\"prof\""`
	Skill   string `parser:"@Ident"`
	Level   string `parser:"@(Ident|Keyword)"`
}

type ScaleCmd struct {
	Keyword string `parser:"@\"scale\""`
	Skill   string `parser:"@Ident"`
	Ability string `parser:"@Ident"`
}

// GMCmd stores a score in the game-master view.
type GMCmd struct {
	Ability string
	Value   string
}

type WriteCmd struct {
	Keyword string `parser:"@\"write\""`
	Name    string `parser:"@Ident?"`
}

type LoadCmd struct {
	Keyword string `parser:"@\"load\""`
	Name    string `parser:"@Ident"`
}

type NarrateCmd struct {
	Keyword string `parser:"@\"narrate\""`
}

type HelpCmd struct {
	Keyword string `parser:"@\"help\""`
}

type QuitCmd struct {
	Keyword string `parser:"@(\"quit\"|\"exit\")"`
}

// Lexer tokens. Idents cover skill keys, accented display names written
// without spaces, ability keys and sheet names.
var Lexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Keyword", Pattern: `(?i)\b(?:save|prof|scale|write|load|narrate|help|quit|exit)\b`},
	{Name: "Int", Pattern: `[-+]?[0-9]+`},
	{Name: "Ident", Pattern: `[\p{L}_][\p{L}0-9_'’-]*`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var parser = participle.MustBuild[grammar](
	participle.Lexer(Lexer),
	participle.Elide("Whitespace"),
	participle.CaseInsensitive("Keyword"),
)

// Parse reads one command line.
func Parse(line string) (*Command, error) {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "/")
	if line == "" {
		return nil, fmt.Errorf("%w: empty input", ErrUnknownCommand)
	}

	verb, rest := line, ""
	if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
		verb, rest = line[:i], strings.TrimSpace(line[i:])
	}
	switch strings.ToLower(verb) {
	case "roll", "r":
		return &Command{Roll: &RollCmd{Expr: rest}}, nil
	case "bonus":
		return &Command{Bonus: &BonusCmd{Value: rest}}, nil
	case "set", "gm":
		ability, value := rest, ""
		if i := strings.IndexFunc(rest, unicode.IsSpace); i >= 0 {
			ability, value = rest[:i], strings.TrimSpace(rest[i:])
		}
		if ability == "" {
			return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, usage(verb))
		}
		if strings.EqualFold(verb, "gm") {
			return &Command{GM: &GMCmd{Ability: ability, Value: value}}, nil
		}
		return &Command{Set: &SetCmd{Ability: ability, Value: value}}, nil
	}

	g, err := parser.ParseString("", line)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, usage(verb))
	}
	return &Command{
		Save:    g.Save,
		Prof:    g.Prof,
		Scale:   g.Scale,
		Write:   g.Write,
		Load:    g.Load,
		Narrate: g.Narrate,
		Help:    g.Help,
		Quit:    g.Quit,
	}, nil
}

func usage(verb string) string {
	switch strings.ToLower(verb) {
	case "set":
		return "set <ability> <score>"
	case "bonus":
		return "bonus <value>"
	case "save":
		return "save <ability> on|off"
	case "prof":
		return "prof <skill> none|proficient|expertise"
	case "scale":
		return "scale <skill> <ability>"
	case "gm":
		return "gm <ability> <score>"
	case "write":
		return "write [name]"
	case "load":
		return "load <name>"
	}
	return fmt.Sprintf("%q (try help)", verb)
}

// Help is the text shown by the help command.
const Help = `roll <dice>       roll dice: 2d6+3 sums, "3 d8" lists each die
set <ab> <score>  set an ability score (FOR DES COS INT SAG CAR)
bonus <n>         set the proficiency bonus
save <ab> on|off  toggle saving throw proficiency
prof <skill> <l>  none, proficient or expertise
scale <skill> <ab> change the ability behind a skill
gm <ab> <score>   set a score in the GM view
write [name]      save the sheet
load <name>       open another sheet
narrate           write a backstory into the notes
quit              leave`
