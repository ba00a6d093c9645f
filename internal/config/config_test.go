package config

import (
	"os"
	"path/filepath"
	"testing"
)

// chdir switches the working directory for the duration of the test and
// restores it on cleanup, standing in for testing.T.Chdir on toolchains
// that predate it.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restore Chdir: %v", err)
		}
	})
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.StorageDir != ".observe" {
		t.Errorf("StorageDir = %q, want .observe", cfg.StorageDir)
	}
	if cfg.Source != "founder-pm" {
		t.Errorf("Source = %q, want founder-pm", cfg.Source)
	}
	if cfg.Actor != "" {
		t.Errorf("Actor = %q, want empty", cfg.Actor)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "observe.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.StorageDir != DefaultDir || cfg.Source != DefaultSource {
		t.Errorf("missing file config = %+v, want defaults", cfg)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "observe.yaml")
	content := "storage_dir: /data/observe\nactor: alice\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.StorageDir != "/data/observe" {
		t.Errorf("StorageDir = %q, want /data/observe", cfg.StorageDir)
	}
	if cfg.Actor != "alice" {
		t.Errorf("Actor = %q, want alice", cfg.Actor)
	}
	// Unset fields backfill from defaults.
	if cfg.Source != DefaultSource {
		t.Errorf("Source = %q, want %q", cfg.Source, DefaultSource)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "observe.yaml")
	if err := os.WriteFile(path, []byte("storage_dir: [oops\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig on malformed yaml succeeded, want error")
	}
}

func TestResolvePrecedence(t *testing.T) {
	dir := t.TempDir()
	content := "storage_dir: from-file\n"
	if err := os.WriteFile(filepath.Join(dir, DefaultFile), []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	chdir(t, dir)

	t.Run("file beats default", func(t *testing.T) {
		cfg, err := Resolve("")
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if cfg.StorageDir != "from-file" {
			t.Errorf("StorageDir = %q, want from-file", cfg.StorageDir)
		}
	})

	t.Run("env beats file", func(t *testing.T) {
		t.Setenv(EnvDir, "from-env")
		cfg, err := Resolve("")
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if cfg.StorageDir != "from-env" {
			t.Errorf("StorageDir = %q, want from-env", cfg.StorageDir)
		}
	})

	t.Run("flag beats env", func(t *testing.T) {
		t.Setenv(EnvDir, "from-env")
		cfg, err := Resolve("from-flag")
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if cfg.StorageDir != "from-flag" {
			t.Errorf("StorageDir = %q, want from-flag", cfg.StorageDir)
		}
	})
}

func TestResolveDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(EnvDir+"=from-dotenv\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	chdir(t, dir)
	// Setenv registers restoration of any outer value; unset so the .env
	// entry is the only source.
	t.Setenv(EnvDir, "placeholder")
	os.Unsetenv(EnvDir)

	cfg, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.StorageDir != "from-dotenv" {
		t.Errorf("StorageDir = %q, want from-dotenv", cfg.StorageDir)
	}
}

func TestResolveActor(t *testing.T) {
	chdir(t, t.TempDir())

	t.Run("falls back to USER", func(t *testing.T) {
		t.Setenv("USER", "carol")
		cfg, err := Resolve("")
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if cfg.Actor != "carol" {
			t.Errorf("Actor = %q, want carol", cfg.Actor)
		}
	})

	t.Run("config file wins over USER", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, DefaultFile), []byte("actor: dave\n"), 0644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		chdir(t, dir)
		t.Setenv("USER", "carol")

		cfg, err := Resolve("")
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if cfg.Actor != "dave" {
			t.Errorf("Actor = %q, want dave", cfg.Actor)
		}
	})
}

func TestResolveMalformedConfigFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, DefaultFile), []byte(": not yaml ["), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	chdir(t, dir)

	if _, err := Resolve(""); err == nil {
		t.Error("Resolve with malformed observe.yaml succeeded, want error")
	}
}
