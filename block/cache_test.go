package block

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fetchCall struct {
	start, count int64
}

// fakeSource serves deterministic block contents and records every fetch,
// so tests can assert both what was returned and what it cost.
type fakeSource struct {
	blockSize int
	calls     []fetchCall
	err       error
	short     bool
}

func (f *fakeSource) BlockSize() int { return f.blockSize }

func (f *fakeSource) ReadBlocks(start, count int64) ([]byte, error) {
	f.calls = append(f.calls, fetchCall{start, count})
	if f.err != nil {
		return nil, f.err
	}
	n := int(count) * f.blockSize
	if f.short {
		n--
	}
	data := make([]byte, n)
	base := start * int64(f.blockSize)
	for i := range data {
		data[i] = byte(base + int64(i))
	}
	return data, nil
}

// wantBlocks is the byte sequence fakeSource serves for the given run.
func wantBlocks(start, count int64, blockSize int) []byte {
	data := make([]byte, int(count)*blockSize)
	base := start * int64(blockSize)
	for i := range data {
		data[i] = byte(base + int64(i))
	}
	return data
}

func TestReadBlocksFetchesAndMemoizes(t *testing.T) {
	src := &fakeSource{blockSize: 16}
	cache := NewCache(src)

	got, err := cache.ReadBlocks(0, 4)
	require.NoError(t, err)
	assert.Equal(t, wantBlocks(0, 4, 16), got)
	assert.Equal(t, []fetchCall{{0, 4}}, src.calls)

	// A repeat of the same window is served entirely from memory.
	got, err = cache.ReadBlocks(0, 4)
	require.NoError(t, err)
	assert.Equal(t, wantBlocks(0, 4, 16), got)
	assert.Equal(t, []fetchCall{{0, 4}}, src.calls)
}

func TestReadBlocksCoalescesMissingRuns(t *testing.T) {
	src := &fakeSource{blockSize: 8}
	cache := NewCache(src)

	_, err := cache.ReadBlocks(2, 2)
	require.NoError(t, err)
	require.Equal(t, []fetchCall{{2, 2}}, src.calls)

	// Blocks 2 and 3 are cached, so [0,6) has two missing runs on either
	// side of them, each fetched with one call.
	got, err := cache.ReadBlocks(0, 6)
	require.NoError(t, err)
	assert.Equal(t, wantBlocks(0, 6, 8), got)
	assert.Equal(t, []fetchCall{{2, 2}, {0, 2}, {4, 2}}, src.calls)
}

func TestReadBlocksInterleavedHits(t *testing.T) {
	src := &fakeSource{blockSize: 4}
	cache := NewCache(src)

	for _, idx := range []int64{1, 3} {
		_, err := cache.ReadBlocks(idx, 1)
		require.NoError(t, err)
	}
	src.calls = nil

	got, err := cache.ReadBlocks(0, 5)
	require.NoError(t, err)
	assert.Equal(t, wantBlocks(0, 5, 4), got)
	assert.Equal(t, []fetchCall{{0, 1}, {2, 1}, {4, 1}}, src.calls)
}

func TestReadBlocksZeroCount(t *testing.T) {
	src := &fakeSource{blockSize: 512}
	cache := NewCache(src)

	got, err := cache.ReadBlocks(5, 0)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = cache.ReadBlocks(5, -3)
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.Empty(t, src.calls)
}

func TestReadBlocksSourceError(t *testing.T) {
	boom := errors.New("console lost")
	src := &fakeSource{blockSize: 16, err: boom}
	cache := NewCache(src)

	_, err := cache.ReadBlocks(0, 2)
	assert.ErrorIs(t, err, boom)
}

func TestReadBlocksShortSource(t *testing.T) {
	src := &fakeSource{blockSize: 16, short: true}
	cache := NewCache(src)

	_, err := cache.ReadBlocks(0, 2)
	require.ErrorIs(t, err, ErrFetchLength)

	// Nothing from the bad fetch may be cached: once the source recovers,
	// the same window is fetched again in full.
	src.short = false
	src.calls = nil
	got, err := cache.ReadBlocks(0, 2)
	require.NoError(t, err)
	assert.Equal(t, wantBlocks(0, 2, 16), got)
	assert.Equal(t, []fetchCall{{0, 2}}, src.calls)
}

func TestBlockSizePassthrough(t *testing.T) {
	cache := NewCache(&fakeSource{blockSize: 2048})
	assert.Equal(t, 2048, cache.BlockSize())
}
