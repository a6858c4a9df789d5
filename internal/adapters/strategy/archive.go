package strategy

import (
	"context"
	"io"
	"strings"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
	"go.uber.org/multierr"

	"github.com/iamNilotpal/squash/internal/core/ports"
	"github.com/iamNilotpal/squash/pkg/errors"
)

const archiveOutput = "archive.zip"

// Archive wraps the upload as the single entry of a new ZIP container at
// maximum deflate level. Nested archives are not unpacked, so the result is
// usually larger and the Size-Guard keeps the original.
type Archive struct {
	staging ports.Staging
}

func NewArchive(staging ports.Staging) *Archive {
	return &Archive{staging: staging}
}

func (a *Archive) Name() string { return NameArchive }

func (a *Archive) Compress(ctx context.Context, data []byte, params ports.StrategyParams) (out []byte, err error) {
	ws, err := a.staging.Acquire(ctx, params.JobID)
	if err != nil {
		return nil, fail(errors.ErrorStorage, NameArchive, params, err)
	}
	defer func() {
		if rerr := ws.Release(); rerr != nil {
			err = multierr.Append(err, fail(errors.ErrorStorage, NameArchive, params, rerr))
			out = nil
		}
	}()

	f, err := ws.Create(archiveOutput)
	if err != nil {
		return nil, fail(errors.ErrorStorage, NameArchive, params, err)
	}

	if err := writeZip(f, EntryName(params.Format.String()), data); err != nil {
		f.Close()
		return nil, fail(errors.ErrorCompression, NameArchive, params, err)
	}
	if err := f.Close(); err != nil {
		return nil, fail(errors.ErrorStorage, NameArchive, params, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, fail(errors.ErrorTimeout, NameArchive, params, err)
	}

	out, err = ws.ReadFile(archiveOutput)
	if err != nil {
		return nil, fail(errors.ErrorStorage, NameArchive, params, err)
	}
	return out, nil
}

// EntryName is the name the upload is stored under inside the container.
func EntryName(format string) string {
	if format == "" {
		return "file"
	}
	return "file." + strings.ToLower(format)
}

func writeZip(w io.Writer, name string, data []byte) error {
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})

	entry, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return multierr.Append(err, zw.Close())
	}
	if _, err := entry.Write(data); err != nil {
		return multierr.Append(err, zw.Close())
	}
	return zw.Close()
}
