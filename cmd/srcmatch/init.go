package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ludo-technologies/srcmatch/internal/config"
	"github.com/ludo-technologies/srcmatch/internal/constants"
	"github.com/spf13/cobra"
)

// InitCommand represents the init command
type InitCommand struct {
	force      bool
	configPath string
}

// NewInitCommand creates a new init command
func NewInitCommand() *InitCommand {
	return &InitCommand{
		configPath: constants.ConfigFileName,
	}
}

// CreateCobraCommand creates the cobra command for configuration initialization
func (i *InitCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize srcmatch configuration file",
		Long: `Create a commented .srcmatch.toml in the current directory.

srcmatch looks for this file in the target directory and its parents.
Command line flags always override values set in it.

Examples:
  srcmatch init
  srcmatch init --config tools/srcmatch.toml
  srcmatch init --force`,
		RunE: i.runInit,
	}

	cmd.Flags().BoolVarP(&i.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().StringVarP(&i.configPath, "config", "c", constants.ConfigFileName, "Configuration file path")

	return cmd
}

func (i *InitCommand) runInit(cmd *cobra.Command, args []string) error {
	configPath, err := filepath.Abs(i.configPath)
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}

	if _, err := os.Stat(configPath); err == nil && !i.force {
		return fmt.Errorf("configuration file already exists: %s\nUse --force to overwrite", configPath)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", configDir, err)
	}

	configData, err := config.GenerateDefaultConfigTOML()
	if err != nil {
		return err
	}

	if err := os.WriteFile(configPath, []byte(configData), 0o644); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	relPath, err := filepath.Rel(".", configPath)
	if err != nil {
		relPath = configPath
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✅ Configuration file created: %s\n", relPath)
	fmt.Fprintf(out, "\nTo customize srcmatch for your project:\n")
	fmt.Fprintf(out, "  1. Edit %s\n", relPath)
	fmt.Fprintf(out, "  2. Uncomment and modify settings as needed\n")
	fmt.Fprintf(out, "  3. Run 'srcmatch match --snippet FILE .' to use your configuration\n")

	return nil
}

// NewInitCmd creates and returns the init cobra command
func NewInitCmd() *cobra.Command {
	return NewInitCommand().CreateCobraCommand()
}
