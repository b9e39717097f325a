package types

import (
	"testing"
)

func TestAppConfig_Structure(t *testing.T) {
	config := AppConfig{
		Verbose: true,
		Data: DataConfig{
			Dir:  "/home/user/.taskkeep",
			File: "tasks.json",
		},
	}

	if config.Data.Dir != "/home/user/.taskkeep" {
		t.Errorf("Data.Dir mismatch: got %q, want %q", config.Data.Dir, "/home/user/.taskkeep")
	}
	if config.Data.File != "tasks.json" {
		t.Errorf("Data.File mismatch: got %q, want %q", config.Data.File, "tasks.json")
	}
	if !config.Verbose {
		t.Error("Verbose flag lost")
	}
}

func TestDataConfig_Defaults(t *testing.T) {
	var config DataConfig

	if config.FileLock {
		t.Error("FileLock should default to off")
	}
}
