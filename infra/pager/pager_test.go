package pager

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCmd_UsesPagerAndWritesContent(t *testing.T) {
	t.Setenv("PAGER", "cat -n")
	p := NewEnvPager()

	cmd, path, err := p.Cmd("Long BTC\n\nbody")
	if err != nil {
		t.Fatalf("cmd failed: %v", err)
	}
	defer os.Remove(path)
	if len(cmd.Args) != 3 || filepath.Base(cmd.Args[0]) != "cat" || cmd.Args[1] != "-n" || cmd.Args[2] != path {
		t.Fatalf("unexpected args: %v", cmd.Args)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read temp file failed: %v", err)
	}
	if string(data) != "Long BTC\n\nbody" {
		t.Fatalf("unexpected content: %q", data)
	}
}

func TestCmd_DefaultsToLess(t *testing.T) {
	t.Setenv("PAGER", "")
	cmd, path, err := NewEnvPager().Cmd("x")
	if err != nil {
		t.Fatalf("cmd failed: %v", err)
	}
	defer os.Remove(path)
	if cmd.Args[0] != "less" {
		t.Fatalf("expected less fallback, got %v", cmd.Args)
	}
}

func TestCleanup_RemovesFileAndToleratesMissing(t *testing.T) {
	p := NewEnvPager()
	_, path, err := p.Cmd("x")
	if err != nil {
		t.Fatalf("cmd failed: %v", err)
	}
	if err := p.Cleanup(path); err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected temp file to be deleted")
	}
	if err := p.Cleanup(path); err != nil {
		t.Fatalf("second cleanup should be a no-op: %v", err)
	}
}
