package strategy

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamNilotpal/squash/internal/adapters/compression"
	"github.com/iamNilotpal/squash/internal/core/domain"
	"github.com/iamNilotpal/squash/internal/core/ports"
	"github.com/iamNilotpal/squash/pkg/errors"
)

func TestGenericCompressesWithConfiguredCodec(t *testing.T) {
	input := bytes.Repeat([]byte("squash me "), 300)
	params := ports.StrategyParams{FileType: domain.FileTypeDocument, Format: domain.FormatTXT, JobID: "job"}

	for _, algo := range compression.Algorithms() {
		t.Run(string(algo), func(t *testing.T) {
			codec, err := compression.New(&domain.GenericOptions{Algorithm: algo})
			require.NoError(t, err)
			defer codec.Close()

			g := NewGeneric(codec)
			assert.Equal(t, NameGeneric, g.Name())
			assert.Equal(t, string(algo), g.Algorithm())

			out, err := g.Compress(context.Background(), input, params)
			require.NoError(t, err)
			assert.Less(t, len(out), len(input))

			back, err := codec.Decompress(out)
			require.NoError(t, err)
			assert.Equal(t, input, back)
		})
	}
}

func TestGenericHonoursCancellation(t *testing.T) {
	codec, err := compression.New(compression.DefaultOptions())
	require.NoError(t, err)
	defer codec.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = NewGeneric(codec).Compress(ctx, []byte("x"), ports.StrategyParams{})
	se := errors.AsStrategyError(err)
	require.NotNil(t, se)
	assert.Equal(t, errors.ErrorTimeout, se.Category)
}
