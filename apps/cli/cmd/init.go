package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/reqx/packages/core/config"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new reqx project",
	Long: `Initialize a new reqx project in the current directory.

This creates:
  - reqx.yaml     - Configuration file
  - example.reqx  - Example request file

Examples:
  reqx init
  reqx init --force`,
	RunE: initCommand,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite existing files")
}

func initCommand(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	configFile := filepath.Join(cwd, "reqx.yaml")
	exampleFile := filepath.Join(cwd, "example.reqx")

	if !forceInit {
		for _, f := range []string{configFile, exampleFile} {
			if _, err := os.Stat(f); err == nil {
				return fmt.Errorf("file already exists: %s (use --force to overwrite)", f)
			}
		}
	}

	cfg := config.DefaultConfig()
	cfg.Headers = map[string]string{
		"User-Agent": "reqx/1.0",
	}
	if err := cfg.SaveConfig(configFile); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", configFile)

	exampleContent := `@host = :3000

# Check if the API is running
GET {{host}}/health

###

# Create a user and keep its id
POST {{host}}/users
Content-Type: application/json

{
  "name": "Test User"
}

@userId = id

###

# Fetch the user we just created
GET {{host}}/users/{{userId}}
`

	if err := os.WriteFile(exampleFile, []byte(exampleContent), 0o644); err != nil {
		return fmt.Errorf("failed to create example file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", exampleFile)

	fmt.Fprintf(cmd.OutOrStdout(), "\nreqx project initialized!\n")
	fmt.Fprintf(cmd.OutOrStdout(), "Run 'reqx run example.reqx' to execute the example requests.\n")

	return nil
}
