package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tatianab/char-sheet/internal/command"
	"github.com/tatianab/char-sheet/internal/dice"
	"github.com/tatianab/char-sheet/internal/models"
	"github.com/tatianab/char-sheet/internal/stats"
)

type fakeGenerator struct {
	prompts []string
	reply   string
	err     error
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func newEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	return New(models.NewStore(t.TempDir()), dice.Fixed(0.34, 0.7), opts...)
}

func run(t *testing.T, e *Engine, line string) Result {
	t.Helper()
	res, err := e.Execute(context.Background(), line)
	require.NoError(t, err, line)
	return res
}

func TestRollHistory(t *testing.T) {
	e := newEngine(t)

	res := run(t, e, "roll 2d6+2")
	assert.Equal(t, "2d6+2: 10 (3 + 5 = 8 +2)", res.Output)
	assert.False(t, res.Changed)

	run(t, e, "r d20")
	assert.Equal(t, []string{"2d6+2: 10 (3 + 5 = 8 +2)", "d20: 7"}, e.History())

	_, err := e.Execute(context.Background(), "roll 0d6")
	require.ErrorIs(t, err, dice.ErrInvalidExpression)
	assert.Len(t, e.History(), 2)
}

func TestStatCommands(t *testing.T) {
	e := newEngine(t)

	assert.Equal(t, "DES 16 (+3)", run(t, e, "set des 16").Output)
	assert.Equal(t, "proficiency bonus +3", run(t, e, "bonus 3").Output)
	assert.Equal(t, "DES save +6", run(t, e, "save DES on").Output)
	assert.Equal(t, "Percezione expertise +6", run(t, e, "prof percezione expertise").Output)
	assert.Equal(t, "Atletica uses DES +3", run(t, e, "scale atletica DES").Output)

	snap := e.Snapshot()
	assert.Equal(t, 16, snap.Scores[stats.Dexterity])
	assert.Equal(t, 16, snap.PassivePerception)
	assert.Equal(t, 3, snap.Initiative)

	// The document follows every change.
	assert.Equal(t, "16", string(e.Sheet().Abilities.Scores["DES"]))
	assert.True(t, e.Sheet().Abilities.SavingThrows["DES"].Checked())
	assert.Equal(t, "DES", e.Sheet().Scaling["atletica"])
}

func TestSetLenientScore(t *testing.T) {
	e := newEngine(t)
	assert.Equal(t, "FOR 10 (+0)", run(t, e, "set FOR abc").Output)
	assert.Equal(t, "FOR 1 (-5)", run(t, e, "set FOR 0").Output)
	assert.Equal(t, "FOR 10 (+0)", run(t, e, "set FOR").Output)
	assert.Equal(t, "DES 14 (+2)", run(t, e, "set DES 14abc").Output)
	assert.Equal(t, "DES 14 (+2)", run(t, e, "set DES 14.5").Output)
	assert.Equal(t, "proficiency bonus +3", run(t, e, "bonus 3x").Output)
	assert.Equal(t, 3, e.Character().ProficiencyBonus())
}

func TestGMCommandLeavesPlayerStats(t *testing.T) {
	e := newEngine(t)
	assert.Equal(t, "GM FOR 18 (+4)", run(t, e, "gm FOR 18").Output)
	assert.Equal(t, 10, e.Snapshot().Scores[stats.Strength])
	assert.Equal(t, 4, e.Sheet().GMModifiers()[stats.Strength])
}

func TestCommandErrors(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	_, err := e.Execute(ctx, "set XYZ 12")
	require.ErrorIs(t, err, stats.ErrUnknownAbility)

	_, err = e.Execute(ctx, "prof volare proficient")
	require.ErrorIs(t, err, stats.ErrUnknownSkill)

	_, err = e.Execute(ctx, "prof atletica maybe")
	require.ErrorIs(t, err, command.ErrUnknownCommand)

	_, err = e.Execute(ctx, "save DES sometimes")
	require.ErrorIs(t, err, command.ErrUnknownCommand)

	_, err = e.Execute(ctx, "dance")
	require.ErrorIs(t, err, command.ErrUnknownCommand)
}

func TestWriteAndLoad(t *testing.T) {
	store := models.NewStore(t.TempDir())
	e := New(store, dice.Fixed(0.5))

	run(t, e, "set INT 18")
	assert.Equal(t, "saved wizard", run(t, e, "write wizard").Output)
	assert.Equal(t, "wizard", e.Name())

	names, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"wizard"}, names)

	other := New(store, dice.Fixed(0.5))
	assert.Equal(t, "loaded wizard", run(t, other, "load wizard").Output)
	assert.Equal(t, 18, other.Snapshot().Scores[stats.Intelligence])

	// Unknown names open a blank sheet.
	run(t, other, "load nuovo")
	assert.Equal(t, "nuovo", other.Name())
	assert.Equal(t, 10, other.Snapshot().Scores[stats.Intelligence])
}

func TestFailedWriteKeepsName(t *testing.T) {
	// A plain file where the save directory should be makes every save fail.
	blocked := filepath.Join(t.TempDir(), "blocked")
	require.NoError(t, os.WriteFile(blocked, nil, 0644))
	e := New(models.NewStore(blocked), dice.Fixed(0.5))

	_, err := e.Execute(context.Background(), "write wizard")
	require.Error(t, err)
	assert.Equal(t, DefaultSheetName, e.Name())
}

func TestHelpAndQuit(t *testing.T) {
	e := newEngine(t)
	assert.Equal(t, command.Help, run(t, e, "help").Output)
	assert.True(t, run(t, e, "quit").Quit)
	assert.True(t, run(t, e, "/exit").Quit)
}

func TestNarrateDisabled(t *testing.T) {
	e := newEngine(t)
	_, err := e.Execute(context.Background(), "narrate")
	require.ErrorIs(t, err, ErrNarratorDisabled)
}

func TestNarrateAppendsNotes(t *testing.T) {
	gen := &fakeGenerator{reply: "```\nBorn in a mining town.\n```"}
	e := newEngine(t, WithNarrator(NewNarrator(gen)))
	e.Sheet().CharacterInfo.Name = "Borin"
	e.Sheet().TextAreas.PlayerNotes = "Hates goblins."
	run(t, e, "set FOR 17")

	text, err := e.Narrate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Born in a mining town.", text)
	assert.Equal(t, "Hates goblins.\n\nBorn in a mining town.", e.Sheet().TextAreas.PlayerNotes)

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "Borin")
	assert.Contains(t, gen.prompts[0], "FOR 17 (+3)")
}

func TestNarrateError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota")}
	e := newEngine(t, WithNarrator(NewNarrator(gen)))

	_, err := e.Narrate(context.Background())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "quota"))
	assert.Empty(t, e.Sheet().TextAreas.PlayerNotes)
}
