package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yclai/readquest/internal/config"
	"github.com/yclai/readquest/internal/grading"
	"github.com/yclai/readquest/internal/llm"
	"github.com/yclai/readquest/internal/quiz"
	"github.com/yclai/readquest/internal/quizgen"
	"github.com/yclai/readquest/internal/record"
	"github.com/yclai/readquest/internal/store"
	"github.com/yclai/readquest/internal/story"
)

// noGenerator always fails so WithFallback serves the built-in quiz.
type noGenerator struct{}

func (noGenerator) Generate(context.Context, quiz.Level, string) (*quiz.Quiz, error) {
	return nil, errors.New("no model provider configured")
}

// deps bundles everything a frontend command needs to run attempts.
type deps struct {
	cfg       *config.Config
	store     *store.Store
	generator quizgen.Generator
	engine    *grading.Engine
	story     string
	sink      *record.CSVSink
}

// buildDeps loads config, opens the store, and wires the generation and
// grading stack. A missing provider is not fatal: the built-in quiz and
// label-match grading keep the flow usable offline.
func buildDeps(cmd *cobra.Command) (*deps, error) {
	configDir, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if p, _ := cmd.Flags().GetString("story"); p != "" {
		cfg.Story.Path = p
	}
	if p, _ := cmd.Flags().GetString("records"); p != "" {
		cfg.Records.Path = p
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath, err = resolveDBPath(cmd)
		if err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	d := &deps{
		cfg:   cfg,
		store: st,
		story: story.Loader{Path: cfg.Story.Path, MaxChars: cfg.Story.MaxChars}.Load(),
		sink:  record.NewCSVSink(cfg.Records.Path),
	}

	provider, err := llm.NewProviderFromEnv(cmd.Context(), st.EventRepo())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Using the built-in quiz; open responses will not be auto-graded.")
		d.generator = quizgen.WithFallback(noGenerator{})
		d.engine = grading.NewEngine(grading.UnavailableGrader{})
		return d, nil
	}

	d.generator = quizgen.WithFallback(quizgen.New(provider, quizgen.DefaultConfig()))
	d.engine = grading.NewEngine(grading.NewLLMGrader(provider, grading.DefaultConfig()))
	return d, nil
}

func (d *deps) Close() {
	if d.store != nil {
		d.store.Close()
	}
}
