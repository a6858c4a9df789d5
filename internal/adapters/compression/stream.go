package compression

import (
	"bytes"
	"fmt"
	"io"
)

// encodeStream runs data through a streaming encoder built by newWriter and
// returns an independent copy of the encoded bytes.
func encodeStream(data []byte, newWriter func(io.Writer) (io.WriteCloser, error)) ([]byte, error) {
	buf := buffers.Get()

	w, err := newWriter(buf)
	if err != nil {
		buffers.Put(buf)
		return nil, fmt.Errorf("failed to create encoder: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		w.Close()
		buffers.Put(buf)
		return nil, fmt.Errorf("failed to write compressed data: %w", err)
	}

	if err := w.Close(); err != nil {
		buffers.Put(buf)
		return nil, fmt.Errorf("failed to flush encoder: %w", err)
	}

	return buffers.Detach(buf), nil
}

// decodeStream reads all of data through a streaming decoder built by newReader.
func decodeStream(data []byte, newReader func(io.Reader) (io.Reader, error)) ([]byte, error) {
	r, err := newReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	if c, ok := r.(io.Closer); ok {
		defer c.Close()
	}

	buf := buffers.Get()
	if _, err := buf.ReadFrom(r); err != nil {
		buffers.Put(buf)
		return nil, fmt.Errorf("decompression failed: %w", err)
	}

	return buffers.Detach(buf), nil
}
