package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Env holds the values that must come from the process environment.
type Env struct {
	APIURL string `envconfig:"API_URL" required:"true"`
}

// ErrMissingAPIURL is returned when WALLET_API_URL is not set.
var ErrMissingAPIURL = errors.New("WALLET_API_URL is not set; point it at the wallet backend, e.g. http://localhost:5000")

// LoadEnv reads the optional dotenv files and then the required environment.
// Files that do not exist are skipped; variables already set win.
func LoadEnv(dotenvFiles ...string) (Env, error) {
	if len(dotenvFiles) == 0 {
		dotenvFiles = []string{".env"}
	}
	for _, f := range dotenvFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return Env{}, fmt.Errorf("error loading %s: %w", f, err)
		}
	}

	var env Env
	if err := envconfig.Process("wallet", &env); err != nil {
		return Env{}, ErrMissingAPIURL
	}
	env.APIURL = strings.TrimSpace(env.APIURL)
	if env.APIURL == "" {
		return Env{}, ErrMissingAPIURL
	}
	return env, nil
}
