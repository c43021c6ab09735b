/*
Copyright (c) 2026 moyaru <rbffo@icloud.com>
*/

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/MOYARU/cyberchecklist/internal/app/ui"
	"github.com/MOYARU/cyberchecklist/internal/checklist"
	msges "github.com/MOYARU/cyberchecklist/internal/messages"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: msges.GetUIMessage("BankUsage"),
}

var bankShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active question bank as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		bank, err := loadBank()
		if err != nil {
			return err
		}
		data, err := bank.EncodeYAML()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var bankExportCmd = &cobra.Command{
	Use:   "export <form.html> [out.yaml]",
	Short: "Convert an HTML checklist form into a YAML question bank",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		bank, err := checklist.Load(args[0])
		if err != nil {
			return err
		}
		data, err := bank.EncodeYAML()
		if err != nil {
			return err
		}
		if len(args) == 1 {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(args[1], data, 0o644); err != nil {
			return fmt.Errorf("write question bank: %w", err)
		}
		logger.Info("question bank exported",
			zap.String("source", args[0]),
			zap.String("path", args[1]),
			zap.Int("questions", bank.Len()))
		fmt.Fprintf(cmd.OutOrStdout(), "%s%s%s\n", ui.ColorGreen, msges.GetUIMessage("BankExported", args[1]), ui.ColorReset)
		return nil
	},
}

func init() {
	bankCmd.AddCommand(bankShowCmd, bankExportCmd)
	rootCmd.AddCommand(bankCmd)
}
