package configparser

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrNoFilePath = errors.New("no file path provided")

// LoadYamlFile reads a YAML file and loads its values into the environment.
// Nested keys are joined with "_" and upper-cased, so redis.enabled becomes
// REDIS_ENABLED. Variables that are already set are left untouched.
func LoadYamlFile(filepath string) error {
	if filepath == "" {
		return ErrNoFilePath
	}

	data, err := os.ReadFile(filepath)
	if err != nil {
		return fmt.Errorf("could not open YAML file: %w", err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("error reading YAML file: %w", err)
	}

	return setEnv(nil, doc)
}

func setEnv(prefix []string, node map[string]any) error {
	for _, key := range slices.Sorted(maps.Keys(node)) {
		path := append(slices.Clone(prefix), key)

		switch v := node[key].(type) {
		case nil:
			// empty section or key without a value
			continue
		case map[string]any:
			if err := setEnv(path, v); err != nil {
				return err
			}
		default:
			name := strings.ToUpper(strings.Join(path, "_"))
			if os.Getenv(name) != "" {
				continue
			}
			if err := os.Setenv(name, expand(scalar(v))); err != nil {
				return fmt.Errorf("could not set env var %s: %w", name, err)
			}
		}
	}
	return nil
}

func scalar(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case []any:
		parts := make([]string, 0, len(x))
		for _, item := range x {
			parts = append(parts, scalar(item))
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(x)
	}
}

// expand resolves the ${VAR:-default} form: the value of VAR when it is set,
// default otherwise. Any other value is returned as is.
func expand(value string) string {
	if !strings.HasPrefix(value, "${") || !strings.HasSuffix(value, "}") {
		return value
	}

	name, def, ok := strings.Cut(value[2:len(value)-1], ":-")
	if !ok {
		return value
	}
	if env := os.Getenv(strings.TrimSpace(name)); env != "" {
		return env
	}
	return strings.TrimSpace(def)
}
