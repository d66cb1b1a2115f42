package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/brandforge/brandforge/internal/model"
	"github.com/schollz/progressbar/v3"
)

// GenerationProgress renders profile generation progress on a terminal
// progress bar. It implements model.ProgressFunc via its Update method.
type GenerationProgress struct {
	writer io.Writer
	bar    *progressbar.ProgressBar
}

// NewGenerationProgress creates a progress renderer writing to writer.
func NewGenerationProgress(writer io.Writer) *GenerationProgress {
	bar := progressbar.NewOptions(100,
		progressbar.OptionSetWriter(writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Generating profile...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(writer); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)

	return &GenerationProgress{writer: writer, bar: bar}
}

// Update advances the bar to match the reported progress event.
func (g *GenerationProgress) Update(progress model.GenerationProgress) {
	description := fmt.Sprintf("[cyan][bold]%s[reset]", progress.Message)
	if progress.ETASeconds > 0 {
		description = fmt.Sprintf("[cyan][bold]%s[reset] (~%ds left)", progress.Message, progress.ETASeconds)
	}
	g.bar.Describe(description)

	if err := g.bar.Set(progress.Percent); err != nil {
		slog.Warn("Failed to update progress bar", "error", err)
	}

	if progress.Stage == model.StageFailed {
		if _, err := fmt.Fprintln(g.writer); err != nil {
			slog.Warn("Failed to write newline after progress bar", "error", err)
		}
	}
}
