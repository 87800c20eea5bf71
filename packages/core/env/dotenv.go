package env

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv reads a dotenv file and merges its entries into the
// environment, overwriting any names already present. A missing file is an
// error; callers that treat the file as optional should stat it first.
func (e *Env) LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("env file %s: %w", path, err)
	}

	vars, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("parsing env file %s: %w", path, err)
	}

	e.SetAll(vars)
	return nil
}
