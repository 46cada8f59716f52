package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("SHOOTER_TEST_VALUE", "hello")
	if got := GetEnv("SHOOTER_TEST_VALUE", "x"); got != "hello" {
		t.Fatalf("GetEnv = %q, want hello", got)
	}
	if got := GetEnv("SHOOTER_TEST_UNSET", "fallback"); got != "fallback" {
		t.Fatalf("GetEnv unset = %q, want fallback", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("SHOOTER_TEST_PORT", "2222")
	t.Setenv("SHOOTER_TEST_BAD", "twenty")
	if got := GetEnvInt("SHOOTER_TEST_PORT", 1); got != 2222 {
		t.Fatalf("GetEnvInt = %d, want 2222", got)
	}
	if got := GetEnvInt("SHOOTER_TEST_BAD", 7); got != 7 {
		t.Fatalf("GetEnvInt bad = %d, want fallback 7", got)
	}
}

func TestListenAddr(t *testing.T) {
	t.Setenv("SHOOTER_TEST_HOST", "127.0.0.1")
	t.Setenv("SHOOTER_TEST_PORT", "9000")
	if got := ListenAddr("SHOOTER_TEST_HOST", "::", "SHOOTER_TEST_PORT", 2222); got != "127.0.0.1:9000" {
		t.Fatalf("ListenAddr = %q, want 127.0.0.1:9000", got)
	}

	t.Setenv("SHOOTER_TEST_PORT", "70000")
	if got := ListenAddr("SHOOTER_TEST_UNSET", "::", "SHOOTER_TEST_PORT", 2222); got != "[::]:2222" {
		t.Fatalf("ListenAddr out of range = %q, want [::]:2222", got)
	}
	t.Setenv("SHOOTER_TEST_PORT", "ssh")
	if got := ListenAddr("SHOOTER_TEST_HOST", "::", "SHOOTER_TEST_PORT", 2222); got != "127.0.0.1:2222" {
		t.Fatalf("ListenAddr bad = %q, want 127.0.0.1:2222", got)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("SHOOTER_DOTENV_A=from-file\nSHOOTER_DOTENV_B=from-file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SHOOTER_DOTENV_B", "from-env")
	t.Cleanup(func() { os.Unsetenv("SHOOTER_DOTENV_A") })

	if err := LoadDotEnv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv("SHOOTER_DOTENV_A"); got != "from-file" {
		t.Fatalf("A = %q, want from-file", got)
	}
	if got := os.Getenv("SHOOTER_DOTENV_B"); got != "from-env" {
		t.Fatalf("B = %q, existing env must win", got)
	}
}

func TestBootstrapReadsTuningFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.yaml")
	if err := os.WriteFile(path, []byte("width: 400\nheight: 300\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvTuningFile, path)
	t.Setenv(EnvScoreStore, "memory")

	tuning, board := Bootstrap()
	if tuning.Width != 400 || tuning.Height != 300 {
		t.Fatalf("playfield = %vx%v, want 400x300", tuning.Width, tuning.Height)
	}
	if got := board.High(); got != 0 {
		t.Fatalf("fresh board high = %d, want 0", got)
	}
}

func TestBootstrapFallsBackOnBadTuning(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.yaml")
	if err := os.WriteFile(path, []byte("width: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvTuningFile, path)
	t.Setenv(EnvScoreStore, "memory")

	tuning, _ := Bootstrap()
	if tuning.Width != 960 {
		t.Fatalf("width = %v, want default 960", tuning.Width)
	}
}
