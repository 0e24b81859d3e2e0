// Package shell opens paths and URLs with the desktop's default handler
// and writes to the system clipboard.
package shell

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/atotto/clipboard"

	"github.com/custodia-labs/swordfish/internal/core/domain"
	"github.com/custodia-labs/swordfish/internal/core/ports/driven"
)

// Ensure Shell implements the interface.
var _ driven.Shell = (*Shell)(nil)

// Shell implements driven.Shell for the host OS.
type Shell struct {
	goos  string
	start func(ctx context.Context, name string, args ...string) error
	copy  func(text string) error
}

// New creates a shell for the running OS.
func New() *Shell {
	return &Shell{
		goos:  runtime.GOOS,
		start: startDetached,
		copy:  writeClipboard,
	}
}

// Open hands target to the OS default handler. It does not wait for the
// launched program to exit.
func (s *Shell) Open(ctx context.Context, target string) error {
	if target == "" {
		return fmt.Errorf("%w: empty target", domain.ErrInvalidInput)
	}
	name, args, err := OpenCommand(s.goos, target)
	if err != nil {
		return err
	}
	if err := s.start(ctx, name, args...); err != nil {
		return fmt.Errorf("open %s: %w", target, err)
	}
	return nil
}

// CopyText writes text to the system clipboard.
func (s *Shell) CopyText(_ context.Context, text string) error {
	if err := s.copy(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}

// OpenCommand returns the command that opens target on goos.
func OpenCommand(goos, target string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{target}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{target}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}, nil
	default:
		return "", nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedPlatform, goos)
	}
}

func startDetached(_ context.Context, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait() //nolint:errcheck // reap the child; its exit status is irrelevant
	return nil
}

func writeClipboard(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("%w: no clipboard utility found", domain.ErrUnsupportedPlatform)
	}
	return clipboard.WriteAll(text)
}
