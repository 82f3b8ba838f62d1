package engine

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/tatianab/char-sheet/internal/models"
	"github.com/tatianab/char-sheet/internal/stats"
)

//go:embed prompts/backstory.txt
var backstoryPrompt string

var backstoryTemplate = template.Must(template.New("backstory").Parse(backstoryPrompt))

var ErrNarratorDisabled = errors.New("narration disabled: GEMINI_API_KEY is not set")

// Generator turns a prompt into text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiGenerator calls a Gemini model.
type GeminiGenerator struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiGenerator{
		client: client,
		model:  client.GenerativeModel(model),
	}, nil
}

func (g *GeminiGenerator) Close() {
	g.client.Close()
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content returned from Gemini")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response type from Gemini")
	}
	return string(text), nil
}

// Narrator writes character backstories.
type Narrator struct {
	gen Generator
}

func NewNarrator(gen Generator) *Narrator {
	return &Narrator{gen: gen}
}

type abilityLine struct {
	Key      stats.Ability
	Score    int
	Modifier string
}

// BackstoryPrompt renders the prompt for a sheet and its derived stats.
func BackstoryPrompt(sheet *models.Sheet, c *stats.Character) (string, error) {
	snap := c.Snapshot()

	lines := make([]abilityLine, 0, len(stats.Abilities))
	weakest := stats.Abilities[0]
	for _, a := range stats.Abilities {
		lines = append(lines, abilityLine{Key: a, Score: snap.Scores[a], Modifier: stats.FormatBonus(snap.Modifiers[a])})
		if snap.Scores[a] < snap.Scores[weakest] {
			weakest = a
		}
	}

	best := stats.Skills[0]
	for _, sk := range stats.Skills {
		if snap.Skills[sk.Key] > snap.Skills[best.Key] {
			best = sk
		}
	}

	info := sheet.CharacterInfo
	data := struct {
		Name, Class, Race, Background, Alignment string
		Level                                    int
		Abilities                                []abilityLine
		BestSkill                                string
		WeakestAbility                           stats.Ability
		Notes                                    string
	}{
		Name:           info.Name,
		Class:          info.Class,
		Race:           info.Race,
		Background:     info.Background,
		Alignment:      info.Alignment,
		Level:          info.Level.Int(1),
		Abilities:      lines,
		BestSkill:      fmt.Sprintf("%s %s", best.Name, stats.FormatBonus(snap.Skills[best.Key])),
		WeakestAbility: weakest,
		Notes:          strings.TrimSpace(sheet.TextAreas.PlayerNotes),
	}

	var buf bytes.Buffer
	if err := backstoryTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Backstory sends a rendered prompt to the generator and returns the
// trimmed text.
func (n *Narrator) Backstory(ctx context.Context, prompt string) (string, error) {
	text, err := n.gen.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generate backstory: %w", err)
	}
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text), nil
}
