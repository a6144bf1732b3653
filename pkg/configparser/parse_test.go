package configparser

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type testConfig struct {
	Server struct {
		Port    string        `env:"TESTCFG_SERVER_PORT" default:"3000"`
		Timeout time.Duration `env:"TESTCFG_SERVER_TIMEOUT" default:"5s"`
	}
	Chart struct {
		Path  string  `env:"TESTCFG_CHART_PATH"`
		Scale float64 `env:"TESTCFG_CHART_SCALE" default:"1.5"`
	}
	MaxBody int64 `env:"TESTCFG_MAX_BODY" default:"1024"`
	Debug   bool  `env:"TESTCFG_DEBUG" default:"false"`
}

func TestParseEnv_Defaults(t *testing.T) {
	var cfg testConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != "3000" || cfg.Server.Timeout != 5*time.Second {
		t.Fatalf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Chart.Scale != 1.5 || cfg.Chart.Path != "" {
		t.Fatalf("unexpected chart config: %+v", cfg.Chart)
	}
	if cfg.MaxBody != 1024 || cfg.Debug {
		t.Fatalf("unexpected top-level config: %+v", cfg)
	}
}

func TestParseEnv_EnvOverrides(t *testing.T) {
	t.Setenv("TESTCFG_SERVER_PORT", "8080")
	t.Setenv("TESTCFG_DEBUG", "true")

	var cfg testConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != "8080" || !cfg.Debug {
		t.Fatalf("env must override defaults: %+v", cfg)
	}
}

func TestParseEnv_BadValue(t *testing.T) {
	t.Setenv("TESTCFG_MAX_BODY", "lots")

	var cfg testConfig
	if err := ParseEnv(&cfg); err == nil {
		t.Fatalf("expected error for non-numeric value")
	}
}

func TestParseEnv_NotPointer(t *testing.T) {
	if err := ParseEnv(testConfig{}); err != ErrNotStructPointer {
		t.Fatalf("got %v, want ErrNotStructPointer", err)
	}
}

func TestLoadAndParseYaml(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "testcfg:\n  chart:\n    path: \"${TESTCFG_UNSET_VAR:-charts/mileage.csv}\"\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("TESTCFG_CHART_PATH") })

	var cfg testConfig
	if err := LoadAndParseYaml(path, &cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Chart.Path != "charts/mileage.csv" {
		t.Fatalf("got chart path %q", cfg.Chart.Path)
	}
}

func TestLoadAndParseYaml_MissingFile(t *testing.T) {
	var cfg testConfig
	if err := LoadAndParseYaml(filepath.Join(t.TempDir(), "absent.yaml"), &cfg); err != nil {
		t.Fatalf("missing file must fall back to env/defaults: %v", err)
	}
}

func TestLoadYamlFile_Sections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "testyml:\n" +
		"  chart:\n" +
		"  redis:\n" +
		"    enabled: true\n" +
		"    ttl: 24h\n" +
		"  server:\n" +
		"    port: 3000\n" +
		"    limits:\n" +
		"      max_body: 4194304\n" +
		"  level: INFO\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("TESTYML_LEVEL", "DEBUG")
	for _, name := range []string{"TESTYML_CHART", "TESTYML_REDIS_ENABLED", "TESTYML_REDIS_TTL", "TESTYML_SERVER_PORT", "TESTYML_SERVER_LIMITS_MAX_BODY", "TESTYML_CHART_REDIS_ENABLED"} {
		t.Cleanup(func() { os.Unsetenv(name) })
	}

	if err := LoadYamlFile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]string{
		"TESTYML_REDIS_ENABLED":          "true",
		"TESTYML_REDIS_TTL":              "24h",
		"TESTYML_SERVER_PORT":            "3000",
		"TESTYML_SERVER_LIMITS_MAX_BODY": "4194304",
		"TESTYML_LEVEL":                  "DEBUG",
	}
	for name, v := range want {
		if got := os.Getenv(name); got != v {
			t.Errorf("%s = %q, want %q", name, got, v)
		}
	}

	for _, name := range []string{"TESTYML_CHART", "TESTYML_CHART_REDIS_ENABLED"} {
		if _, ok := os.LookupEnv(name); ok {
			t.Errorf("%s must not be set", name)
		}
	}
}

func TestLoadYamlFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [unclosed\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := LoadYamlFile(path); err == nil {
		t.Fatal("expected a decode error")
	}
}
