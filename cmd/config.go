/*
Copyright (c) 2026 moyaru <rbffo@icloud.com>
*/

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MOYARU/cyberchecklist/internal/app/ui"
	"github.com/MOYARU/cyberchecklist/internal/config"
	msges "github.com/MOYARU/cyberchecklist/internal/messages"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: msges.GetUIMessage("ConfigUsage"),
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%sConfig (%s):%s\n", ui.ColorGreen, configPath, ui.ColorReset)
		for _, f := range settings.Fields() {
			fmt.Fprintf(w, " - %s: %s\n", f.Key, f.Value)
		}
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Update one key in the configuration file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SetKey(configPath, args[0], args[1]); err != nil {
			return fmt.Errorf("failed to update config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s%s%s\n", ui.ColorGreen, msges.GetUIMessage("ConfigUpdated", args[0], configPath), ui.ColorReset)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}
