package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const envFileVar = "ENV_FILE"

func Parse() (Config, error) {
	if path := envFile(); path != "" {
		if err := godotenv.Load(path); err != nil {
			return Config{}, fmt.Errorf("load env file %s: %v", path, err)
		}
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse cfg: %v", err)
	}

	return cfg, nil
}

// ParseFile reads a yaml, json, toml or env file. Environment variables
// override values from the file.
func ParseFile(path string) (Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse cfg file %s: %v", path, err)
	}

	return cfg, nil
}

func Usage(w io.Writer) {
	var cfg Config
	cleanenv.FUsage(w, &cfg, nil)()
}

func envFile() string {
	if path := os.Getenv(envFileVar); path != "" {
		return path
	}

	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	root := projectRoot(cwd)
	path := filepath.Join(root, ".env")
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return ""
	}

	return path
}

// projectRoot walks up from dir to the first directory holding a .env or a
// README.md. dir itself is returned when nothing is found.
func projectRoot(dir string) string {
	for cur := dir; ; {
		for _, marker := range []string{".env", "README.md"} {
			if _, err := os.Stat(filepath.Join(cur, marker)); err == nil {
				return cur
			}
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return dir
		}
		cur = parent
	}
}
