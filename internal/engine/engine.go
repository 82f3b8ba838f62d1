// Package engine runs one character sheet session: it owns the sheet
// document, the stat state derived from it, the dice source and the roll
// history, and executes the commands typed at the prompt.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/tatianab/char-sheet/internal/command"
	"github.com/tatianab/char-sheet/internal/dice"
	"github.com/tatianab/char-sheet/internal/models"
	"github.com/tatianab/char-sheet/internal/stats"
)

const DefaultSheetName = "current"

// Result is what a command produced.
type Result struct {
	Output string
	// Changed is set when the sheet should be saved.
	Changed bool
	Quit    bool
	// Pending is slow work (narration) to run off the UI loop. Its text is
	// handed back through AppendNotes.
	Pending func(ctx context.Context) (string, error)
}

type Engine struct {
	store    *models.Store
	src      dice.Source
	narrator *Narrator

	name    string
	sheet   *models.Sheet
	char    *stats.Character
	history []string
}

type Option func(*Engine)

func WithNarrator(n *Narrator) Option {
	return func(e *Engine) { e.narrator = n }
}

// New starts a blank sheet named "current".
func New(store *models.Store, src dice.Source, opts ...Option) *Engine {
	e := &Engine{
		store: store,
		src:   src,
		name:  DefaultSheetName,
		sheet: models.NewSheet(),
	}
	e.char = e.sheet.Character()
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Open loads a saved sheet. An unknown name starts a blank sheet under it.
func (e *Engine) Open(name string) error {
	sheet, err := e.store.Load(name)
	if errors.Is(err, models.ErrSheetNotFound) {
		sheet = models.NewSheet()
	} else if err != nil {
		return err
	}
	e.name = name
	e.sheet = sheet
	e.char = sheet.Character()
	e.history = nil
	return nil
}

// Save syncs the stat state into the document and writes it.
func (e *Engine) Save() error {
	e.sheet.SetCharacter(e.char)
	return e.store.Save(e.name, e.sheet)
}

func (e *Engine) Name() string                { return e.name }
func (e *Engine) Sheet() *models.Sheet        { return e.sheet }
func (e *Engine) Character() *stats.Character { return e.char }
func (e *Engine) Snapshot() stats.Snapshot    { return e.char.Snapshot() }

// History returns the roll log, oldest first.
func (e *Engine) History() []string {
	return append([]string(nil), e.history...)
}

// Roll runs a dice command and records it in the history.
func (e *Engine) Roll(expr string) (dice.RollResult, error) {
	res, err := dice.RollCommand(expr, e.src)
	if err != nil {
		return dice.RollResult{}, err
	}
	e.history = append(e.history, fmt.Sprintf("%s: %s", strings.TrimSpace(expr), res))
	return res, nil
}

// Execute parses and applies one command line.
func (e *Engine) Execute(ctx context.Context, line string) (Result, error) {
	cmd, err := command.Parse(line)
	if err != nil {
		return Result{}, err
	}

	switch {
	case cmd.Roll != nil:
		if _, err := e.Roll(cmd.Roll.Expr); err != nil {
			return Result{}, err
		}
		return Result{Output: e.history[len(e.history)-1]}, nil

	case cmd.Set != nil:
		a, err := parseAbility(cmd.Set.Ability)
		if err != nil {
			return Result{}, err
		}
		score := e.char.SetAbilityScore(a, cmd.Set.Value)
		return e.changed("%s %d (%s)", a, score, stats.FormatBonus(e.char.Modifier(a))), nil

	case cmd.Bonus != nil:
		b := e.char.SetProficiencyBonus(cmd.Bonus.Value)
		return e.changed("proficiency bonus %s", stats.FormatBonus(b)), nil

	case cmd.Save != nil:
		a, err := parseAbility(cmd.Save.Ability)
		if err != nil {
			return Result{}, err
		}
		on, err := parseSwitch(cmd.Save.State)
		if err != nil {
			return Result{}, err
		}
		e.char.SetSavingThrowProficiency(a, on)
		return e.changed("%s save %s", a, stats.FormatBonus(e.char.SavingThrow(a))), nil

	case cmd.Prof != nil:
		level, ok := stats.ParseProficiency(cmd.Prof.Level)
		if !ok {
			return Result{}, fmt.Errorf("%w: proficiency must be none, proficient or expertise, got %q", command.ErrUnknownCommand, cmd.Prof.Level)
		}
		if err := e.char.SetSkillProficiency(cmd.Prof.Skill, level); err != nil {
			return Result{}, err
		}
		sk, _ := stats.LookupSkill(cmd.Prof.Skill)
		bonus, _ := e.char.SkillBonus(sk.Key)
		return e.changed("%s %s %s", sk.Name, level, stats.FormatBonus(bonus)), nil

	case cmd.Scale != nil:
		a, err := parseAbility(cmd.Scale.Ability)
		if err != nil {
			return Result{}, err
		}
		if err := e.char.SetScaling(cmd.Scale.Skill, a); err != nil {
			return Result{}, err
		}
		sk, _ := stats.LookupSkill(cmd.Scale.Skill)
		bonus, _ := e.char.SkillBonus(sk.Key)
		return e.changed("%s uses %s %s", sk.Name, a, stats.FormatBonus(bonus)), nil

	case cmd.GM != nil:
		a, err := parseAbility(cmd.GM.Ability)
		if err != nil {
			return Result{}, err
		}
		score := e.sheet.SetGMAbility(a, cmd.GM.Value)
		return e.changed("GM %s %d (%s)", a, score, stats.FormatBonus(stats.ComputeModifier(score))), nil

	case cmd.Write != nil:
		prev := e.name
		if cmd.Write.Name != "" {
			e.name = cmd.Write.Name
		}
		if err := e.Save(); err != nil {
			e.name = prev
			return Result{}, err
		}
		return Result{Output: "saved " + e.name}, nil

	case cmd.Load != nil:
		if err := e.Open(cmd.Load.Name); err != nil {
			return Result{}, err
		}
		return Result{Output: "loaded " + e.name}, nil

	case cmd.Narrate != nil:
		if e.narrator == nil {
			return Result{}, ErrNarratorDisabled
		}
		prompt, err := BackstoryPrompt(e.sheet, e.char)
		if err != nil {
			return Result{}, fmt.Errorf("render backstory prompt: %w", err)
		}
		n := e.narrator
		return Result{
			Output: "asking the narrator...",
			Pending: func(ctx context.Context) (string, error) {
				return n.Backstory(ctx, prompt)
			},
		}, nil

	case cmd.Help != nil:
		return Result{Output: command.Help}, nil

	case cmd.Quit != nil:
		return Result{Quit: true}, nil
	}

	return Result{}, command.ErrUnknownCommand
}

// Narrate runs the narrate command to completion.
func (e *Engine) Narrate(ctx context.Context) (string, error) {
	res, err := e.Execute(ctx, "narrate")
	if err != nil {
		return "", err
	}
	text, err := res.Pending(ctx)
	if err != nil {
		return "", err
	}
	e.AppendNotes(text)
	return text, nil
}

// AppendNotes adds a paragraph to the player notes.
func (e *Engine) AppendNotes(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	notes := strings.TrimSpace(e.sheet.TextAreas.PlayerNotes)
	if notes != "" {
		notes += "\n\n"
	}
	e.sheet.TextAreas.PlayerNotes = notes + text
	log.Printf("engine: appended %d bytes of narration to %q", len(text), e.name)
}

func (e *Engine) changed(format string, args ...any) Result {
	e.sheet.SetCharacter(e.char)
	return Result{Output: fmt.Sprintf(format, args...), Changed: true}
}

func parseAbility(s string) (stats.Ability, error) {
	a, ok := stats.ParseAbility(s)
	if !ok {
		return "", fmt.Errorf("%w: %q (use FOR DES COS INT SAG CAR)", stats.ErrUnknownAbility, s)
	}
	return a, nil
}

func parseSwitch(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "yes", "si", "true":
		return true, nil
	case "off", "no", "false":
		return false, nil
	}
	return false, fmt.Errorf("%w: expected on or off, got %q", command.ErrUnknownCommand, s)
}
