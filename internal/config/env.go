package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment variable read by dupmeta.
const EnvPrefix = "DUPMETA"

// DefaultEnvFile is the dotenv file loaded before the environment is read.
const DefaultEnvFile = ".env"

// Env holds the settings that can be given as environment variables.
type Env struct {
	// OutputDir is read from DUPMETA_OUTPUT_DIR.
	OutputDir string `envconfig:"OUTPUT_DIR"`

	// SQLiteTable is read from DUPMETA_SQLITE_TABLE.
	SQLiteTable string `envconfig:"SQLITE_TABLE"`

	// Verbose is read from DUPMETA_VERBOSE.
	Verbose bool `envconfig:"VERBOSE" default:"false"`
}

// LoadEnv loads dotenvPath if it exists and then reads the DUPMETA_
// variables. Variables already set in the process environment win over the
// dotenv file. An empty dotenvPath skips the file.
func LoadEnv(dotenvPath string) (*Env, error) {
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", dotenvPath, err)
		}
	}

	var env Env
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	return &env, nil
}
