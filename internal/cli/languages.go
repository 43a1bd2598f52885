package cli

import (
	"fmt"

	"github.com/fmueller/distill/internal/transcribe"
	"github.com/spf13/cobra"
)

func newLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List supported language codes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, code := range transcribe.LanguageCodes() {
				fmt.Fprintln(cmd.OutOrStdout(), code)
			}
			return nil
		},
	}
}
