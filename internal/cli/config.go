// Config loading for the modelsafe CLI.
package cli

import (
	"fmt"

	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	// Config keys.
	cfgKeySchemaFile = "schema_file"

	// defaultSchemaFile is used when no schema file is specified by flag,
	// env, or config.
	defaultSchemaFile = "modelsafe.yaml"
)

// loadConfig reads config.yaml from the given config directory using Viper.
// A missing config file is not an error; defaults apply.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeySchemaFile, defaultSchemaFile)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}
