// Package cli implements the modelsafe command-line interface: schema
// inspection and document validation against a declarative schema file.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sorakthunly/modelsafe/internal/paths"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir  string
	schemaPath string
	jsonMode   bool
}

var flags rootFlags

// NewRootCmd creates the top-level "modelsafe" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "modelsafe",
		Short: "Validate and inspect modelsafe schemas",
		Long:  "Modelsafe governs the shape, validity, and serialized representation\nof data models defined in a declarative schema file.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: .modelsafe)")
	root.PersistentFlags().StringVar(&flags.schemaPath, "schema", "", "schema file (default: from config or modelsafe.yaml)")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newInspectCmd())
	root.AddCommand(newValidateCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(exitUserError)
	}
}

// resolveConfigDir returns the config directory from flag, env, the local
// .modelsafe directory, or the platform default.
func resolveConfigDir() string {
	dir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return paths.LocalConfigDirName
	}
	return dir
}

// resolveSchemaPath returns the schema file path from flag, env, config
// file, or default, in that order.
func resolveSchemaPath() string {
	if flags.schemaPath != "" {
		return flags.schemaPath
	}
	if v := os.Getenv(paths.EnvSchema); v != "" {
		return v
	}
	if cfg, err := loadConfig(resolveConfigDir()); err == nil {
		if p := cfg.GetString(cfgKeySchemaFile); p != "" {
			return p
		}
	}
	return defaultSchemaFile
}

// exitError prints the error to stderr and terminates with the given code.
func exitError(cmd *cobra.Command, code int, msg string) error {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(code)
	return nil // unreachable
}
