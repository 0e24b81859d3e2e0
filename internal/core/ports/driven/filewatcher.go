package driven

import "context"

// FileWatcher reports changes below a set of directories.
type FileWatcher interface {
	// Watch sends the path of every changed entry below roots until ctx
	// is cancelled, then closes the channel.
	Watch(ctx context.Context, roots []string) (<-chan string, error)
}
