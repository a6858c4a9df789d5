package strategy

import (
	"bytes"
	"context"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/iamNilotpal/squash/internal/core/domain"
	"github.com/iamNilotpal/squash/internal/core/ports"
	"github.com/iamNilotpal/squash/pkg/errors"
)

func init() {
	// Keep pdfcpu from creating a config directory under the user's home.
	api.DisableConfigDir()
}

// infoKeys are the document information entries cleared from PDFs.
var infoKeys = []string{"Title", "Author", "Subject", "Keywords", "Producer", "Creator"}

// Document strips identifying metadata from PDFs and hands every other
// document format to the generic compressor. Embedded images are left as is.
type Document struct {
	fallback *Generic
}

func NewDocument(fallback *Generic) *Document {
	return &Document{fallback: fallback}
}

func (d *Document) Name() string { return NameDocument }

func (d *Document) Compress(ctx context.Context, data []byte, params ports.StrategyParams) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fail(errors.ErrorTimeout, NameDocument, params, err)
	}

	if params.Format != domain.FormatPDF {
		out, err := d.fallback.Compress(ctx, data, params)
		if se := errors.AsStrategyError(err); se != nil {
			return nil, fail(se.Category, NameDocument, params, se.Err)
		}
		return out, err
	}

	return d.sanitizePDF(data, params)
}

// sanitizePDF removes the information dictionary entries and the XMP
// metadata stream and rewrites the file; content objects are left as they
// are. pdfcpu stamps its own Producer on write, so the input's producer is
// gone but the key comes back holding pdfcpu's version string.
func (d *Document) sanitizePDF(data []byte, params ports.StrategyParams) ([]byte, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	pdf, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fail(errors.ErrorDecode, NameDocument, params, err)
	}
	if err := api.ValidateContext(pdf); err != nil {
		return nil, fail(errors.ErrorDecode, NameDocument, params, err)
	}

	if pdf.Info != nil {
		info, err := pdf.DereferenceDict(*pdf.Info)
		if err != nil {
			return nil, fail(errors.ErrorDecode, NameDocument, params, err)
		}
		for _, key := range infoKeys {
			info.Delete(key)
		}
	}

	root, err := pdf.Catalog()
	if err != nil {
		return nil, fail(errors.ErrorDecode, NameDocument, params, err)
	}
	root.Delete("Metadata")

	var out bytes.Buffer
	if err := api.WriteContext(pdf, &out); err != nil {
		return nil, fail(errors.ErrorCompression, NameDocument, params, err)
	}
	return out.Bytes(), nil
}
