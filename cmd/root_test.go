package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetOut(nil) })
	require.NoError(t, rootCmd.Execute())
	return buf.String()
}

func TestConfigSetAndShow(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "settings.yaml")

	out := execute(t, "--config", cfgPath, "config", "set", "export_basename", "home")
	require.Contains(t, out, "Updated export_basename in "+cfgPath)

	out = execute(t, "--config", cfgPath, "config", "show")
	require.Contains(t, out, " - export_basename: home")
	require.Contains(t, out, " - highlight_seconds: 3")
}

func TestBankShowPrintsDefaultBank(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "settings.yaml")
	out := execute(t, "--config", cfgPath, "bank", "show")
	require.Contains(t, out, "Password manager in use")
	require.Contains(t, out, "id: page5")
}

func TestAssessCommandExports(t *testing.T) {
	dir := t.TempDir()
	answers := filepath.Join(dir, "answers.yaml")
	require.NoError(t, os.WriteFile(answers, []byte("q1: yes\nq5: no\n"), 0o644))

	out := execute(t, "--config", filepath.Join(dir, "settings.yaml"), "--out", dir, "--name", "run", "assess", answers, "--csv")
	require.Contains(t, out, "You scored 1 out of 2 (50%)")
	require.Contains(t, out, "CSV results saved")

	_, err := os.Stat(filepath.Join(dir, "run.csv"))
	require.NoError(t, err)
}
