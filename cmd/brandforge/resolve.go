package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brandforge/brandforge/internal/cli"
	"github.com/brandforge/brandforge/internal/engine"
	"github.com/brandforge/brandforge/internal/match"
	"github.com/brandforge/brandforge/internal/model"
)

func resolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [description]",
		Short: "Resolve a business description to a category and profile",
		Long: `Resolve free-form business text to a catalog category, confirming
uncertain detections interactively, then fetch or generate the
category's content profile.

Examples:
  brandforge resolve "family owned plumbing company in Austin"
  brandforge resolve --code 238220`,
		Args: cobra.ArbitraryArgs,
		RunE: runResolve,
	}

	cmd.Flags().String("code", "", "resolve an explicit category code instead of text")
	cmd.Flags().Bool("yes", false, "accept detected categories without prompting")

	return cmd
}

func runResolve(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	code, _ := cmd.Flags().GetString("code")
	autoAccept, _ := cmd.Flags().GetBool("yes")
	text := strings.TrimSpace(strings.Join(args, " "))

	if code == "" && text == "" {
		return fmt.Errorf("provide a business description or --code")
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	cat := loadCatalog(ctx, store)

	var classifier engine.Classifier
	if detector := initDetector(); detector != nil {
		classifier = detector
		defer func() { _ = detector.Close() }()
	}

	var generator engine.Generator
	if gen := initGenerator(store); gen != nil {
		generator = gen
	}

	var prompter engine.Prompter
	if autoAccept {
		prompter = autoAcceptPrompter{}
	} else {
		prompter = cli.NewPrompter(os.Stdin, os.Stdout)
	}

	progress := cli.NewGenerationProgress(os.Stdout)

	eng := engine.NewWithConfig(store, cat, match.NewEngine(cat), classifier, generator, prompter, engine.Config{
		OnProgress: progress.Update,
	})

	result, err := eng.Resolve(ctx, engine.Input{Text: text, Code: code})
	if err != nil {
		return err
	}

	printResolution(result)
	return nil
}

func printResolution(result model.ResolutionResult) {
	switch result.Status {
	case model.StatusConfirmed:
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Resolved to %s (%s) via %s, confidence %.0f%%",
			result.DisplayName, result.Code, result.Source, result.Confidence*100)))
		if result.ProfileAvailable {
			fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("Profile ready. Run: brandforge profiles show %s", result.Code)))
		} else {
			fmt.Println(cli.FormatWarning("Profile unavailable; continuing with generic content."))
		}
	case model.StatusCorrected:
		fmt.Println(cli.FormatWarning("Detection rejected. Pick a category with: brandforge categories list"))
	case model.StatusDetectionFailed:
		fmt.Println(cli.FormatWarning("Could not detect a category. Pick one with: brandforge categories list"))
	}
}

// autoAcceptPrompter confirms every detection without user interaction.
type autoAcceptPrompter struct{}

func (autoAcceptPrompter) ConfirmDetection(_ context.Context, _ model.DetectionResult) (model.ConfirmationDecision, error) {
	return model.DecisionConfirm, nil
}
