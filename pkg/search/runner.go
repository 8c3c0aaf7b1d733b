package search

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner performs the raw platform search and returns yt-dlp's JSON output.
type Runner interface {
	Run(ctx context.Context, query string, limit int) ([]byte, error)
}

// YtDlpRunner shells out to the yt-dlp binary.
type YtDlpRunner struct {
	Path string
}

func NewYtDlpRunner(path string) *YtDlpRunner {
	if path == "" {
		path = "yt-dlp"
	}
	return &YtDlpRunner{Path: path}
}

func (y *YtDlpRunner) Run(ctx context.Context, query string, limit int) ([]byte, error) {
	cmd := exec.CommandContext(ctx, y.Path,
		"--flat-playlist",
		"--dump-single-json",
		"--skip-download",
		"--no-warnings",
		"--quiet",
		fmt.Sprintf("ytsearch%d:%s", limit, query),
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("yt-dlp failed: %w: %s", err, msg)
		}
		return nil, fmt.Errorf("yt-dlp failed: %w", err)
	}
	return stdout.Bytes(), nil
}
