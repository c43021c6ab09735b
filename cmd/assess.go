/*
Copyright (c) 2026 moyaru <rbffo@icloud.com>
*/

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MOYARU/cyberchecklist/internal/app/assess"
	msges "github.com/MOYARU/cyberchecklist/internal/messages"
)

var (
	jsonOutput bool
	csvOutput  bool
	htmlOutput bool
)

var assessCmd = &cobra.Command{
	Use:   "assess <answers-file>",
	Short: "Score an answers file (YAML or JSON) and optionally export the results",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bank, err := loadBank()
		if err != nil {
			return err
		}
		_, err = assess.RunAssessment(assess.Options{
			AnswersPath: args[0],
			Bank:        bank,
			OutputDir:   settings.OutputDir,
			BaseName:    settings.ExportBaseName,
			JSON:        jsonOutput,
			CSV:         csvOutput,
			HTML:        htmlOutput,
			Out:         cmd.OutOrStdout(),
			Logger:      logger,
		})
		if err != nil {
			return fmt.Errorf("%s: %w", msges.GetUIMessage("AssessFailed"), err)
		}
		return nil
	},
}

func init() {
	assessCmd.Flags().BoolVar(&jsonOutput, "json", false, "Export results as JSON")
	assessCmd.Flags().BoolVar(&csvOutput, "csv", false, "Export results as CSV")
	assessCmd.Flags().BoolVar(&htmlOutput, "html", false, "Export results as HTML")
	rootCmd.AddCommand(assessCmd)
}
