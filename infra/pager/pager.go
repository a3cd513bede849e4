// Package pager prepares an external pager for reading a full post.
package pager

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// EnvPager prepares a pager command using $PAGER (fallback: "less").
// It does NOT run the pager itself. Callers hand the returned *exec.Cmd to
// tea.ExecProcess so Bubble Tea suspends raw terminal mode.
type EnvPager struct{}

// NewEnvPager creates an EnvPager.
func NewEnvPager() *EnvPager {
	return &EnvPager{}
}

// Cmd writes content to a temp file and returns the command that pages it.
func (p *EnvPager) Cmd(content string) (*exec.Cmd, string, error) {
	fields := strings.Fields(os.Getenv("PAGER"))
	if len(fields) == 0 {
		fields = []string{"less", "-R"}
	}

	tmpFile, err := os.CreateTemp("", "tradefeed-*.txt")
	if err != nil {
		return nil, "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer tmpFile.Close()

	if _, err := tmpFile.WriteString(content); err != nil {
		os.Remove(tmpPath)
		return nil, "", fmt.Errorf("writing to temp file: %w", err)
	}

	args := append(fields[1:], tmpPath)
	cmd := exec.Command(fields[0], args...)
	return cmd, tmpPath, nil
}

// Cleanup removes the temp file created by Cmd.
func (p *EnvPager) Cleanup(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing temp file: %w", err)
	}
	return nil
}
