package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sorakthunly/modelsafe/internal/paths"
	"github.com/sorakthunly/modelsafe/internal/schemafile"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	SchemaFile string `yaml:"schema_file"`
}

// starterSchemaYAML is the schema file written on first init: a minimal
// mutually referencing pair of models to start from.
const starterSchemaYAML = `# Modelsafe schema definitions.
models:
  user:
    attributes:
      id:
        type: uuid
      name:
        type: string
        max_length: 120
      email:
        type: string
      createdAt:
        type: date
        default: now
    associations:
      posts:
        kind: many
        target: post
  post:
    attributes:
      id:
        type: uuid
      title:
        type: string
      body:
        type: string
        optional: true
    associations:
      author:
        kind: one
        target: user
`

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize modelsafe configuration",
		Long:  "Create the configuration directory, a default config.yaml, and a starter schema file.",
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	// Init is local-first: without an explicit flag it sets up the
	// CWD-relative config directory rather than the platform one.
	configDir := flags.configDir
	if configDir == "" {
		configDir = paths.LocalConfigDirName
	}

	schemaPath := flags.schemaPath
	if schemaPath == "" {
		schemaPath = defaultSchemaFile
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return exitError(cmd, exitSysError, fmt.Sprintf("create config directory: %s", err))
	}

	configPath := filepath.Join(configDir, "config.yaml")
	if err := writeConfigIfMissing(configPath, schemaPath); err != nil {
		return exitError(cmd, exitSysError, fmt.Sprintf("write config: %s", err))
	}

	if err := writeSchemaIfMissing(schemaPath); err != nil {
		return exitError(cmd, exitSysError, fmt.Sprintf("write schema: %s", err))
	}

	// Parse the schema file back so a broken starting point surfaces now.
	if _, err := schemafile.Load(schemaPath); err != nil {
		return exitError(cmd, exitSysError, fmt.Sprintf("verify schema: %s", err))
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Modelsafe initialized successfully")
	return nil
}

// writeConfigIfMissing creates config.yaml with default values if the file
// does not exist. If it already exists, the function returns nil (idempotent).
func writeConfigIfMissing(path, schemaPath string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	cfg := configFile{SchemaFile: schemaPath}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// writeSchemaIfMissing creates the starter schema file if it does not exist.
func writeSchemaIfMissing(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return os.WriteFile(path, []byte(starterSchemaYAML), 0o644)
}
