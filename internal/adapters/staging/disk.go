package staging

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/iamNilotpal/squash/internal/core/ports"
	"github.com/iamNilotpal/squash/pkg/fs"
)

// Disk hands out workspaces backed by uniquely named temporary directories.
type Disk struct {
	fs     *fs.LocalFileSystem
	parent string // Parent directory, empty for os.TempDir().
	prefix string // Directory name prefix.
}

func NewDisk(parent, prefix string) *Disk {
	return &Disk{fs: fs.NewLocalFileSystem(), parent: parent, prefix: prefix}
}

// Acquire creates a fresh directory named after the job. The random suffix
// added by the filesystem keeps concurrent jobs apart even if they share an id.
func (d *Disk) Acquire(ctx context.Context, jobID string) (ports.Workspace, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir, err := d.fs.CreateTempDir(d.parent, d.prefix+jobID+"-")
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	return &diskWorkspace{fs: d.fs, dir: dir}, nil
}

func (d *Disk) OnDisk() bool { return true }

type diskWorkspace struct {
	fs   *fs.LocalFileSystem
	dir  string
	once sync.Once
	err  error
}

func (w *diskWorkspace) Path(name string) string {
	return filepath.Join(w.dir, filepath.Base(name))
}

func (w *diskWorkspace) Create(name string) (io.WriteCloser, error) {
	path, err := w.fs.Join(w.dir, name)
	if err != nil {
		return nil, err
	}
	return w.fs.CreateFile(path)
}

func (w *diskWorkspace) WriteFile(name string, data []byte) error {
	path, err := w.fs.Join(w.dir, name)
	if err != nil {
		return err
	}
	return w.fs.WriteFile(path, 0o600, data)
}

func (w *diskWorkspace) ReadFile(name string) ([]byte, error) {
	path, err := w.fs.Join(w.dir, name)
	if err != nil {
		return nil, err
	}
	return w.fs.ReadFile(path)
}

// Release removes the directory. It is safe to call more than once.
func (w *diskWorkspace) Release() error {
	w.once.Do(func() {
		w.err = w.fs.DeleteDir(w.dir)
	})
	return w.err
}
