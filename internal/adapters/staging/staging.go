// Package staging provides job-scoped scratch workspaces for strategies that
// cannot work purely in memory: the archive repackager and the media
// transcoder.
package staging

import (
	"fmt"
	"strings"

	"github.com/iamNilotpal/squash/internal/core/domain"
	"github.com/iamNilotpal/squash/internal/core/ports"
)

const DefaultPrefix = "squash-"

// Returns StagingOptions with recommended defaults: disk workspaces under
// the system temp directory.
func DefaultOptions() *domain.StagingOptions {
	return &domain.StagingOptions{Mode: domain.StagingDisk, Prefix: DefaultPrefix}
}

func Validate(input *domain.StagingOptions) error {
	switch input.Mode {
	case domain.StagingDisk, domain.StagingMemory:
	default:
		return fmt.Errorf("unsupported staging mode: %q", input.Mode)
	}

	if strings.ContainsAny(input.Prefix, `/\`) {
		return fmt.Errorf("staging prefix must not contain path separators, got %q", input.Prefix)
	}

	return nil
}

// New builds the staging adapter selected by opts.
func New(opts *domain.StagingOptions) (ports.Staging, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	if err := Validate(opts); err != nil {
		return nil, err
	}

	prefix := opts.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}

	if opts.Mode == domain.StagingMemory {
		return NewMemory(prefix), nil
	}
	return NewDisk(opts.Directory, prefix), nil
}
