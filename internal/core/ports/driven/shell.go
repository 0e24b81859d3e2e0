package driven

import "context"

// Shell wraps the OS integrations used when a result is opened.
type Shell interface {
	// Open opens a path or URL with the default application.
	Open(ctx context.Context, target string) error

	// CopyText places text on the system clipboard.
	CopyText(ctx context.Context, text string) error
}
