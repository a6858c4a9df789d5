package staging

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/iamNilotpal/squash/internal/core/ports"
)

var ErrWorkspaceReleased = errors.New("workspace has been released")

// Memory hands out workspaces that live entirely in memory. Paths are
// synthetic, so external processes cannot use them.
type Memory struct {
	prefix string
	seq    atomic.Uint64
	live   atomic.Int64 // Workspaces acquired but not yet released.
}

func NewMemory(prefix string) *Memory {
	return &Memory{prefix: prefix}
}

func (m *Memory) Acquire(ctx context.Context, jobID string) (ports.Workspace, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.live.Add(1)
	id := fmt.Sprintf("%s%s-%d", m.prefix, jobID, m.seq.Add(1))
	return &memoryWorkspace{owner: m, id: id, files: make(map[string][]byte)}, nil
}

func (m *Memory) OnDisk() bool { return false }

// Live returns how many workspaces are currently held. Tests use it to
// check that every exit path releases its workspace.
func (m *Memory) Live() int64 {
	return m.live.Load()
}

type memoryWorkspace struct {
	owner    *Memory
	id       string
	mu       sync.Mutex
	files    map[string][]byte
	released bool
}

func (w *memoryWorkspace) Path(name string) string {
	return "mem://" + w.id + "/" + name
}

func (w *memoryWorkspace) Create(name string) (io.WriteCloser, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.released {
		return nil, ErrWorkspaceReleased
	}
	w.files[name] = nil
	return &memoryFile{ws: w, name: name}, nil
}

func (w *memoryWorkspace) WriteFile(name string, data []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.released {
		return ErrWorkspaceReleased
	}
	w.files[name] = bytes.Clone(data)
	return nil
}

func (w *memoryWorkspace) ReadFile(name string) ([]byte, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.released {
		return nil, ErrWorkspaceReleased
	}

	data, ok := w.files[name]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", w.Path(name), os.ErrNotExist)
	}
	return bytes.Clone(data), nil
}

func (w *memoryWorkspace) Release() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.released {
		return nil
	}

	w.released = true
	w.files = nil
	w.owner.live.Add(-1)
	return nil
}

// memoryFile buffers writes and publishes them on Close.
type memoryFile struct {
	ws   *memoryWorkspace
	name string
	buf  bytes.Buffer
}

func (f *memoryFile) Write(p []byte) (int, error) {
	return f.buf.Write(p)
}

func (f *memoryFile) Close() error {
	return f.ws.WriteFile(f.name, f.buf.Bytes())
}
