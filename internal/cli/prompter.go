package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/brandforge/brandforge/internal/model"
)

// Prompter implements interactive confirmation of detected business
// categories on a terminal.
type Prompter struct {
	writer io.Writer
	reader *bufio.Reader
}

// NewPrompter creates a prompter reading from reader and writing to writer.
// Nil arguments default to stdin and stdout.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}

	return &Prompter{
		reader: bufio.NewReader(reader),
		writer: writer,
	}
}

// ConfirmDetection shows a detected category and asks the user to accept it
// or pick a category manually instead.
func (p *Prompter) ConfirmDetection(ctx context.Context, detection model.DetectionResult) (model.ConfirmationDecision, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	content := p.formatDetection(detection)
	if _, err := fmt.Fprintln(p.writer, RenderBox("Detected Category", content)); err != nil {
		return "", fmt.Errorf("failed to write detection box: %w", err)
	}

	if _, err := fmt.Fprintf(p.writer, "  [A] Accept: %s\n", SuccessStyle.Render(detection.DisplayName)); err != nil {
		return "", fmt.Errorf("failed to write accept option: %w", err)
	}
	if _, err := fmt.Fprintln(p.writer, "  [C] Choose a different category"); err != nil {
		return "", fmt.Errorf("failed to write choose option: %w", err)
	}
	if _, err := fmt.Fprintln(p.writer); err != nil {
		return "", fmt.Errorf("failed to write newline: %w", err)
	}

	choice, err := p.promptChoice(ctx, "Choice", []string{"a", "c"})
	if err != nil {
		return "", err
	}

	switch choice {
	case "a":
		return model.DecisionConfirm, nil
	default:
		return model.DecisionCorrect, nil
	}
}

func (p *Prompter) formatDetection(detection model.DetectionResult) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Category:   %s\n", detection.DisplayName))
	sb.WriteString(fmt.Sprintf("Code:       %s\n", detection.Code))
	if detection.Group != "" {
		sb.WriteString(fmt.Sprintf("Group:      %s\n", detection.Group))
	}
	sb.WriteString(fmt.Sprintf("Confidence: %.0f%%", detection.Confidence*100))
	if detection.Reasoning != "" {
		sb.WriteString("\n\n")
		sb.WriteString(SubtleStyle.Render(detection.Reasoning))
	}

	return sb.String()
}

func (p *Prompter) promptChoice(ctx context.Context, prompt string, validChoices []string) (string, error) {
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		if _, err := fmt.Fprintf(p.writer, "%s: ", FormatPrompt(prompt)); err != nil {
			return "", fmt.Errorf("failed to write prompt: %w", err)
		}

		input, err := p.reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return "", fmt.Errorf("input terminated")
			}
			return "", err
		}

		choice := strings.ToLower(strings.TrimSpace(input))

		for _, valid := range validChoices {
			if choice == valid {
				return choice, nil
			}
		}

		if _, err := fmt.Fprintln(p.writer, FormatError("Invalid choice. Please try again.")); err != nil {
			slog.Warn("Failed to write error message", "error", err)
		}
	}
}
