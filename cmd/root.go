/*
Copyright (c) 2026 moyaru <rbffo@icloud.com>
*/

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/MOYARU/cyberchecklist/internal/app/interactive"
	"github.com/MOYARU/cyberchecklist/internal/app/ui"
	"github.com/MOYARU/cyberchecklist/internal/checklist"
	"github.com/MOYARU/cyberchecklist/internal/config"
	appver "github.com/MOYARU/cyberchecklist/internal/version"
)

var (
	version = appver.Value

	configPath string
	bankPath   string
	outputDir  string
	baseName   string
	verbose    bool

	logger   = zap.NewNop()
	settings = config.Default()
)

var rootCmd = &cobra.Command{
	Use:           "cyberchecklist",
	Short:         "cyberchecklist is a household cyber security self-assessment that scores your answers and lists the most urgent fixes.",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The questionnaire owns the terminal; only log there when asked to.
		if cmd == cmd.Root() && !verbose {
			logger = zap.NewNop()
		} else {
			zcfg := zap.NewProductionConfig()
			if verbose {
				zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			l, err := zcfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger = l
		}

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if flags.Changed("bank") {
			cfg.QuestionBank = bankPath
		}
		if flags.Changed("out") {
			cfg.OutputDir = outputDir
		}
		if flags.Changed("name") {
			cfg.ExportBaseName = baseName
		}
		settings = cfg
		logger.Debug("settings resolved",
			zap.String("question_bank", cfg.QuestionBank),
			zap.String("output_dir", cfg.OutputDir),
			zap.Duration("highlight", cfg.Highlight()))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		bank, err := loadBank()
		if err != nil {
			return err
		}
		return interactive.RunInteractiveMode(interactive.Options{
			Bank:      bank,
			Logger:    logger,
			Highlight: settings.Highlight(),
			OutputDir: settings.OutputDir,
			BaseName:  settings.ExportBaseName,
			Banner:    strings.Replace(cmd.Long, ui.AsciiArt, "", 1),
		})
	},
}

func loadBank() (*checklist.Bank, error) {
	bank, err := checklist.Load(settings.QuestionBank)
	if err != nil {
		return nil, err
	}
	logger.Debug("question bank loaded",
		zap.String("name", bank.Name),
		zap.Int("pages", len(bank.Pages)),
		zap.Int("questions", bank.Len()))
	return bank, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Printf("%s%v%s\n", ui.ColorRed, err, ui.ColorReset)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(appver.String() + "\n")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", config.DefaultPath, "Path to the configuration file")
	pf.StringVar(&bankPath, "bank", "", "Question bank file (.yaml, or an .html checklist form)")
	pf.StringVar(&outputDir, "out", "", "Directory for exported results")
	pf.StringVar(&baseName, "name", "", "Base file name for exported results")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.Long = ui.AsciiArt + `
cyberchecklist walks you through a short household security checklist
(smart home, passwords, home network, privacy, phishing), scores the
answers and tells you what to fix first.

Usage:
   cyberchecklist                      start the interactive checklist
   cyberchecklist assess <answers>     score an answers file
   cyberchecklist bank show|export     inspect or convert a question bank
   cyberchecklist config show|set      inspect or edit .cyberchecklist.yaml

Example:
  cyberchecklist
  cyberchecklist assess answers.yaml --json --csv
  cyberchecklist --bank my-bank.yaml --out ./exports

Flags:
  --bank        Question bank file (.yaml or .html)
  --out         Directory for exported results
  --name        Base file name for exported results
  --config      Path to the configuration file
  --verbose     Enable debug logging

Answers are kept in memory only and nothing leaves this machine.
`
}
