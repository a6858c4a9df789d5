package main

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/iamNilotpal/squash/internal/adapters/compression"
	"github.com/iamNilotpal/squash/internal/adapters/strategy"
	"github.com/iamNilotpal/squash/internal/core/domain"
	"github.com/iamNilotpal/squash/internal/core/services/engine"
	"github.com/iamNilotpal/squash/internal/core/services/quality"
	"github.com/iamNilotpal/squash/pkg/fs"
)

const DefaultOutputDir = "compressed_files"

type compressFlags struct {
	level       string
	quality     string
	outDir      string
	mediaType   string
	concurrency int
}

// Result is one line of the JSON summary, shaped like the upload API's
// response.
type Result struct {
	File                    string `json:"file"`
	Output                  string `json:"output,omitempty"`
	FileType                string `json:"fileType,omitempty"`
	Format                  string `json:"format,omitempty"`
	Strategy                string `json:"strategy,omitempty"`
	Quality                 int    `json:"quality,omitempty"`
	OriginalSize            int    `json:"originalSize"`
	CompressedSize          int    `json:"compressedSize"`
	OriginalSizeFormatted   string `json:"originalSizeFormatted"`
	CompressedSizeFormatted string `json:"compressedSizeFormatted"`
	CompressionRatio        int    `json:"compressionRatio"`
	Nullified               bool   `json:"nullified"`
	Error                   string `json:"error,omitempty"`
}

func newCompressCmd(a *app) *cobra.Command {
	f := &compressFlags{}

	cmd := &cobra.Command{
		Use:   "compress <file>...",
		Short: "Compress one or more files",
		Long: `Compress one or more files and write the results to an output directory.

Examples:
  # Compress a photo with the default level
  squash compress photo.jpg

  # Squeeze a video as hard as possible
  squash compress --level maximum clip.mov

  # Override the level's quality
  squash compress --level low --quality 60 scan.png report.pdf`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCompress(cmd, f, args)
		},
	}

	cmd.Flags().StringVarP(&f.level, "level", "l", "", "compression level: low, medium, high, maximum")
	cmd.Flags().StringVarP(&f.quality, "quality", "q", "", "explicit quality 1-100, overrides the level")
	cmd.Flags().StringVarP(&f.outDir, "out", "o", DefaultOutputDir, "output directory")
	cmd.Flags().StringVar(&f.mediaType, "type", "", "declared media type, detected from content when empty")
	cmd.Flags().IntVarP(&f.concurrency, "concurrency", "c", 4, "files compressed in parallel")

	return cmd
}

func (a *app) runCompress(cmd *cobra.Command, f *compressFlags, files []string) error {
	if f.concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", f.concurrency)
	}

	lfs := fs.NewLocalFileSystem()
	if err := lfs.CreateDir(f.outDir, 0o755); err != nil {
		return err
	}

	eng, err := engine.New(a.cfg.EngineOptions(), a.log)
	if err != nil {
		a.reportError("Failed to create engine", err)
		return err
	}
	defer eng.Close()

	explicit := quality.Parse(f.quality)
	algo := eng.Options().GenericOptions.Algorithm
	results := make([]Result, len(files))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(f.concurrency)

	for i, path := range files {
		g.Go(func() error {
			results[i] = a.compressFile(ctx, eng, lfs, f, path, explicit, algo)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return err
	}

	for _, r := range results {
		if r.Error != "" {
			return fmt.Errorf("one or more files failed to compress")
		}
	}
	return nil
}

func (a *app) compressFile(
	ctx context.Context,
	eng *engine.Engine,
	lfs *fs.LocalFileSystem,
	f *compressFlags,
	path string,
	explicit *int,
	algo domain.Algorithm,
) Result {
	res := Result{File: path}

	data, err := lfs.ReadFile(path)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	name := filepath.Base(path)
	outcome, err := eng.Compress(ctx, engine.Input{
		Content:           data,
		DeclaredMediaType: detectMediaType(name, data, f.mediaType),
		FileName:          name,
		CompressionLevel:  f.level,
		ExplicitQuality:   explicit,
	})
	if err != nil {
		res.Error = err.Error()
		res.OriginalSize = len(data)
		return res
	}

	out, err := lfs.Join(f.outDir, outputName(name, outcome, algo))
	if err == nil {
		err = lfs.WriteFile(out, 0o644, outcome.Content)
	}
	if err != nil {
		a.reportError("Failed to write output", err)
		res.Error = err.Error()
		return res
	}

	res.Output = out
	res.FileType = outcome.FileType.String()
	res.Format = outcome.Format.String()
	res.Strategy = outcome.Strategy
	res.Quality = outcome.Quality
	res.OriginalSize = outcome.OriginalSize
	res.CompressedSize = outcome.Size
	res.OriginalSizeFormatted = domain.FormatSize(int64(outcome.OriginalSize))
	res.CompressedSizeFormatted = domain.FormatSize(int64(outcome.Size))
	res.CompressionRatio = outcome.Ratio()
	res.Nullified = outcome.Nullified
	return res
}

// detectMediaType prefers an explicit override, then magic-number sniffing,
// then the extension. Parameters such as charset are dropped.
func detectMediaType(name string, data []byte, override string) string {
	if override != "" {
		return override
	}

	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
		return kind.MIME.Value
	}

	mediaType := mime.TypeByExtension(filepath.Ext(name))
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		mediaType = mediaType[:i]
	}
	return strings.TrimSpace(mediaType)
}

// outputName names the written file after what it now contains. Nullified
// results are the untouched input and keep their name.
func outputName(name string, outcome *domain.CompressionOutcome, algo domain.Algorithm) string {
	if outcome.Nullified {
		return name
	}

	switch {
	case outcome.Strategy == strategy.NameMedia:
		return strings.TrimSuffix(name, filepath.Ext(name)) + ".mp4"
	case outcome.Strategy == strategy.NameArchive:
		return name + ".zip"
	case outcome.Strategy == strategy.NameGeneric,
		outcome.Strategy == strategy.NameDocument && outcome.Format != domain.FormatPDF:
		return name + compression.Extension(algo)
	default:
		return name
	}
}
