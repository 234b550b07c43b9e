package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[systems]
namespace = "engine"
scripts_dir = "lua"

[loop]
tick_rate = "50ms"
frame_rate = "0s"

[logging]
level = "debug"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Systems.Namespace != "engine" || cfg.Systems.ScriptsDir != "lua" {
		t.Errorf("systems = %+v", cfg.Systems)
	}
	if cfg.Systems.ScriptNamespace != "script" {
		t.Errorf("unset keys should keep defaults, got %q", cfg.Systems.ScriptNamespace)
	}
	if cfg.Loop.TickRate != 50*time.Millisecond || cfg.Loop.FrameRate != 0 {
		t.Errorf("loop = %+v", cfg.Loop)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
	if cfg.Server.StartTime == 0 {
		t.Error("StartTime not set")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Systems.Namespace != "core" || cfg.Loop.TickRate != 200*time.Millisecond {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Database.DSN != "" {
		t.Error("database must be disabled by default")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"tick_rate": "[loop]\ntick_rate = \"0s\"\n",
		"namespace": "[systems]\nnamespace = \"\"\n",
		"syntax":    "[loop\n",
	}
	for name, body := range cases {
		if _, err := Load(writeConfig(t, body)); err == nil {
			t.Errorf("%s: expected error", name)
		} else if !strings.Contains(err.Error(), "server.toml") {
			t.Errorf("%s: error should name the file, got %v", name, err)
		}
	}
}
