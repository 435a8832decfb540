package probe

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// FFprobeConfig holds configuration for the ffprobe-based prober.
type FFprobeConfig struct {
	// FFprobePath is the path to the ffprobe binary.
	// If empty, "ffprobe" will be used (assumes it's in PATH).
	FFprobePath string
}

// FFprobe implements Prober using the ffprobe CLI.
type FFprobe struct {
	config FFprobeConfig
}

// Compile-time verification that FFprobe implements Prober.
var _ Prober = (*FFprobe)(nil)

// NewFFprobe creates a new ffprobe-based prober.
func NewFFprobe(cfg FFprobeConfig) *FFprobe {
	if cfg.FFprobePath == "" {
		cfg.FFprobePath = "ffprobe"
	}
	return &FFprobe{
		config: cfg,
	}
}

// Duration runs ffprobe against path and parses the container duration.
func (p *FFprobe) Duration(ctx context.Context, path string) (float64, error) {
	if err := validateInput(path); err != nil {
		return 0, err
	}

	cmd := exec.CommandContext(ctx, p.config.FFprobePath, buildArgs(path)...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = nil

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return 0, fmt.Errorf("probe cancelled: %w", ctx.Err())
		}
		return 0, fmt.Errorf("ffprobe execution failed: %w", err)
	}

	return parseDuration(stdout.String())
}

// buildArgs asks ffprobe for the bare format duration only.
func buildArgs(path string) []string {
	return []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	}
}

// parseDuration parses ffprobe output. "N/A" (streams without a known length) is zero.
func parseDuration(out string) (float64, error) {
	s := strings.TrimSpace(out)
	if s == "" || s == "N/A" {
		return 0, nil
	}
	d, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("unexpected ffprobe output %q: %w", s, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %v", d)
	}
	return d, nil
}

// validateInput checks if the input file exists and is readable.
func validateInput(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("input file does not exist: %s", path)
		}
		return fmt.Errorf("failed to access input file: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("input path is a directory, expected a file: %s", path)
	}

	return nil
}
