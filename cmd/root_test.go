package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestSetVersion(t *testing.T) {
	// Test setting version
	testVersion := "1.2.3-test"
	SetVersion(testVersion)

	if rootCmd.Version != testVersion {
		t.Errorf("Expected version to be %s, got %s", testVersion, rootCmd.Version)
	}
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "nlterm" {
		t.Errorf("Expected Use to be 'nlterm', got %s", rootCmd.Use)
	}

	if rootCmd.Short == "" {
		t.Error("Expected Short description to be set")
	}

	if rootCmd.Long == "" {
		t.Error("Expected Long description to be set")
	}

	if !rootCmd.SilenceUsage {
		t.Error("Expected SilenceUsage to be true")
	}

	for _, name := range []string{"config", "debug"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("Expected persistent flag --%s", name)
		}
	}
}

func TestVersionTemplate(t *testing.T) {
	testCmd := &cobra.Command{
		Use:     "test",
		Version: "1.0.0",
	}

	// Set the same version template as in Execute()
	testCmd.SetVersionTemplate(`{{printf "nlterm version %s\n" .Version}}`)

	var buf bytes.Buffer
	testCmd.SetOut(&buf)

	testCmd.SetArgs([]string{"--version"})
	err := testCmd.Execute()
	if err != nil {
		t.Fatalf("Error executing version command: %v", err)
	}

	output := buf.String()
	expected := "nlterm version 1.0.0\n"
	if output != expected {
		t.Errorf("Expected version output %q, got %q", expected, output)
	}
}

func TestVersionCommand(t *testing.T) {
	SetVersion("4.5.6")

	var buf bytes.Buffer
	cmd := newVersionCmd()
	cmd.SetOut(&buf)
	cmd.Run(cmd, nil)

	if got := buf.String(); got != "nlterm version 4.5.6\n" {
		t.Errorf("Expected version output, got %q", got)
	}
}

func TestSubcommands(t *testing.T) {
	commands := rootCmd.Commands()

	expectedCommands := []string{"open", "serve", "mcp", "visits", "version", "self-update"}
	foundCommands := make(map[string]bool)

	for _, cmd := range commands {
		foundCommands[cmd.Name()] = true
	}

	for _, expected := range expectedCommands {
		if !foundCommands[expected] {
			t.Errorf("Expected subcommand %s to be registered", expected)
		}
	}
}

func TestOpenFlags(t *testing.T) {
	cmd := newOpenCmd()
	for _, name := range []string{"plain", "elevated"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("Expected open flag --%s", name)
		}
	}
	if newServeCmd().Flags().Lookup("addr") == nil {
		t.Error("Expected serve flag --addr")
	}
	if newVisitsCmd().Flags().Lookup("record") == nil {
		t.Error("Expected visits flag --record")
	}
}

func TestVisitsCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	config := "globalSettings:\n  logLevel: error\nstorage:\n  dataDir: " + filepath.Join(dir, "data") + "\n"
	if err := os.WriteFile(path, []byte(config), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"visits", "--record", "--config", path})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		visitsRecord = false
		configPath = ""
	})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Error executing visits command: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "VISITOR LOG") {
		t.Errorf("Expected the visitor log box. Got: %q", output)
	}
	if _, err := os.Stat(filepath.Join(dir, "data", "storage.json")); err != nil {
		t.Errorf("Expected the visit to be persisted: %v", err)
	}
}

func TestRootCommandHelp(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"--help"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	if err != nil {
		t.Fatalf("Error executing help command: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "nlterm") {
		t.Errorf("Help output should contain 'nlterm'. Got: %q", output)
	}

	if !strings.Contains(output, "portfolio") {
		t.Errorf("Help output should contain the long description. Got: %q", output)
	}
}
