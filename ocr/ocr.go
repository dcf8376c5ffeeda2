// Package ocr is the boundary to the text recognizer. Recognition itself
// happens outside this module; callers only ever see the text fragments.
package ocr

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Recognizer turns a screenshot into text fragments. Fragment order follows
// the recognizer, not the screen layout. Recognition may take arbitrarily
// long; only ctx bounds it.
type Recognizer interface {
	Recognize(ctx context.Context, image io.Reader) ([]string, error)
}

// Command runs an external OCR binary with the image on stdin and reads the
// recognized text from stdout, one fragment per line. The default is
// `tesseract stdin stdout`.
type Command struct {
	Path string
	Args []string
}

func NewCommand(path string, args ...string) *Command {
	return &Command{Path: path, Args: args}
}

func (c *Command) Recognize(ctx context.Context, image io.Reader) ([]string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Stdin = image
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("ocr %s: %w: %s", c.Path, err, msg)
		}
		return nil, fmt.Errorf("ocr %s: %w", c.Path, err)
	}
	return Lines(&stdout)
}

// Transcript treats its input as text that was already recognized, e.g. a
// sidecar .txt saved next to the screenshot.
type Transcript struct{}

func (Transcript) Recognize(_ context.Context, text io.Reader) ([]string, error) {
	return Lines(text)
}

// Lines splits r into non-empty, trimmed lines.
func Lines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			out = append(out, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read recognized text: %w", err)
	}
	return out, nil
}
