// Package init provides the init command for twc.
package init

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-story-collective/twine-cli/internal/config"
)

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	var dialect string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize twc configuration",
		Long: `Initialize twc with your preferred defaults.

This command walks you through choosing a default dialect, output
format and extraction options. The configuration is saved to
~/.config/twc/config.yml and every value can still be overridden per
invocation with flags or TWC_* environment variables.`,
		Example: `  # Interactive setup
  twc init

  # Pre-select the dialect
  twc init --dialect sugarcube`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(dialect)
		},
	}

	cmd.Flags().StringVar(&dialect, "dialect", "", "default story dialect: harlowe, sugarcube")

	return cmd
}

func runInit(prefillDialect string) error {
	configPath := config.DefaultConfigPath()

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		var overwrite bool
		err := huh.NewConfirm().
			Title("Configuration already exists").
			Description(fmt.Sprintf("Overwrite %s?", configPath)).
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Println("Initialization cancelled.")
			return nil
		}
	}

	cfg := &config.Config{OutputFormat: "table"}

	if prefillDialect != "" {
		cfg.Dialect = prefillDialect
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Default dialect").
				Description("Used when the story format cannot be detected").
				Options(
					huh.NewOption("Auto-detect", config.DialectAuto),
					huh.NewOption("Harlowe", config.DialectHarlowe),
					huh.NewOption("SugarCube", config.DialectSugarCube),
				).
				Value(&cfg.Dialect),

			huh.NewSelect[string]().
				Title("Output format").
				Options(
					huh.NewOption("Table", "table"),
					huh.NewOption("JSON", "json"),
					huh.NewOption("Plain", "plain"),
				).
				Value(&cfg.OutputFormat),

			huh.NewConfirm().
				Title("Normalize HTML in passage text?").
				Description("Converts HTML markup to plain prose during extraction").
				Value(&cfg.NormalizeHTML),

			huh.NewConfirm().
				Title("Strict mode?").
				Description("Exit non-zero when a conversion produces error nodes").
				Value(&cfg.Strict),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Save(configPath); err != nil {
		return err
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	fmt.Println("\nYou're all set! Try running:")
	fmt.Println("  twc convert story.html --summary")
	fmt.Println("  twc validate story.html")

	return nil
}
