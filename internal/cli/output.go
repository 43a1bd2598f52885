package cli

import (
	"fmt"
	"strings"

	"github.com/fmueller/distill/internal/output"
	"go.uber.org/zap"
)

const (
	outputTerminal = "terminal"
	outputText     = "text"
	outputWord     = "word"
	outputMarkdown = "markdown"
)

// Fixed output file names, one per non-terminal output type.
const (
	textFileName     = "summary.txt"
	wordFileName     = "summary.docx"
	markdownFileName = "summary.md"
)

func validateOutputType(outputType string) error {
	switch normalizeOutputType(outputType) {
	case outputTerminal, outputText, outputWord, outputMarkdown:
		return nil
	default:
		return fmt.Errorf("unknown output type %q (terminal|text|word|markdown)", outputType)
	}
}

func (a *appState) writeOutput(summary, transcript string) error {
	switch normalizeOutputType(a.outputType) {
	case outputTerminal:
		fmt.Fprintf(a.outWriter(), "Summary:\n%s\n\nTranscription:\n%s\n", summary, transcript)
		return nil
	case outputText:
		if err := output.WriteText(textFileName, summary, transcript); err != nil {
			return err
		}
		a.log().Info("summary and transcription written", zap.String("path", textFileName))
		return nil
	case outputWord:
		if err := output.WriteWord(wordFileName, summary, transcript); err != nil {
			return err
		}
		a.log().Info("summary and transcription written", zap.String("path", wordFileName))
		return nil
	case outputMarkdown:
		if err := output.WriteMarkdown(markdownFileName, summary, transcript); err != nil {
			return err
		}
		a.log().Info("summary and transcription written", zap.String("path", markdownFileName))
		return nil
	default:
		return fmt.Errorf("unknown output type %q (terminal|text|word|markdown)", a.outputType)
	}
}

func normalizeOutputType(outputType string) string {
	normalized := strings.ToLower(strings.TrimSpace(outputType))
	if normalized == "" {
		return outputTerminal
	}
	return normalized
}
