package ports

import (
	"context"
	"io"
)

// Staging hands out job-scoped temporary workspaces. Each workspace is owned
// by exactly one job; two Acquire calls never share storage.
type Staging interface {
	// Acquire creates a new, empty workspace for the job.
	Acquire(ctx context.Context, jobID string) (Workspace, error)

	// OnDisk reports whether workspace paths refer to real files that an
	// external process can open.
	OnDisk() bool
}

// Workspace is a private scratch area. Release must be called on every exit
// path; it removes everything the workspace holds.
type Workspace interface {
	// Path returns the location of name inside the workspace.
	Path(name string) string

	// Create opens name for writing, truncating any previous content.
	Create(name string) (io.WriteCloser, error)

	// WriteFile stores data under name.
	WriteFile(name string, data []byte) error

	// ReadFile returns the content stored under name.
	ReadFile(name string) ([]byte, error)

	// Release deletes the workspace and all of its files.
	Release() error
}
