package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/tatianab/char-sheet/internal/config"
	"github.com/tatianab/char-sheet/internal/dice"
	"github.com/tatianab/char-sheet/internal/engine"
	"github.com/tatianab/char-sheet/internal/models"
	"github.com/tatianab/char-sheet/internal/stats"
)

const seed = 20240601

// script builds a level 5 rogue and rolls a few checks.
var script = []string{
	"set FOR 8",
	"set DES 17",
	"set COS 14",
	"set INT 12",
	"set SAG 13",
	"set CAR 10",
	"bonus 3",
	"save DES on",
	"save INT on",
	"prof furtivita expertise",
	"prof percezione proficient",
	"prof rapidita_di_mano proficient",
	"prof acrobazia proficient",
	"scale atletica DES",
	"gm FOR 16",
	"roll d20+6",
	"roll 2d6+3",
	"roll 4 d6",
	"roll 0d6",
	"roll d1",
}

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	dir, err := os.MkdirTemp("", "charsheet-sim-")
	if err != nil {
		log.Fatalf("Failed to create save dir: %v", err)
	}
	defer os.RemoveAll(dir)

	var opts []engine.Option
	if cfg.NarrationEnabled() {
		gen, err := engine.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatalf("Failed to create narrator: %v", err)
		}
		defer gen.Close()
		opts = append(opts, engine.WithNarrator(engine.NewNarrator(gen)))
	}

	eng := engine.New(models.NewStore(dir), dice.NewSource(seed), opts...)
	eng.Sheet().CharacterInfo = models.CharacterInfo{Name: "Elara", Class: "Ladra", Race: "Mezzelfa", Level: "5"}

	fmt.Println("--- Step 1: Running the script ---")
	for _, line := range script {
		res, err := eng.Execute(ctx, line)
		if err != nil {
			fmt.Printf("> %s\n  error: %v\n", line, err)
			continue
		}
		fmt.Printf("> %s\n  %s\n", line, res.Output)
	}

	fmt.Println("\n--- Step 2: Derived numbers ---")
	snap := eng.Snapshot()
	for _, a := range stats.Abilities {
		fmt.Printf("%s %2d (%s) save %s\n", a, snap.Scores[a], stats.FormatBonus(snap.Modifiers[a]), stats.FormatBonus(snap.Saves[a]))
	}
	fmt.Printf("Initiative %s, passive perception %d\n", stats.FormatBonus(snap.Initiative), snap.PassivePerception)
	for _, sk := range stats.Skills {
		fmt.Printf("  %-20s %s\n", sk.Name, stats.FormatBonus(snap.Skills[sk.Key]))
	}

	fmt.Println("\n--- Step 3: Save and reload ---")
	if _, err := eng.Execute(ctx, "write elara"); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	reloaded := engine.New(models.NewStore(dir), dice.NewSource(seed))
	if err := reloaded.Open("elara"); err != nil {
		log.Fatalf("Failed to reload: %v", err)
	}
	fmt.Printf("Snapshot survives reload: %v\n", fmt.Sprint(reloaded.Snapshot()) == fmt.Sprint(snap))

	if !cfg.NarrationEnabled() {
		fmt.Println("\nGEMINI_API_KEY not set, skipping narration.")
		return
	}
	fmt.Println("\n--- Step 4: Narration ---")
	text, err := eng.Narrate(ctx)
	if err != nil {
		log.Fatalf("Failed to narrate: %v", err)
	}
	fmt.Println(text)
}
