package block

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ardnew/ubootfs/pkg"
)

// Reader fetches runs of storage blocks by index.
type Reader interface {
	// BlockSize returns the size of one block in bytes.
	BlockSize() int

	// ReadBlocks returns the contents of count consecutive blocks starting
	// at block index start. The result must be exactly count*BlockSize()
	// bytes; a count of zero or less returns nil.
	ReadBlocks(start, count int64) ([]byte, error)
}

// ErrFetchLength reports a source that returned a different byte count than
// the blocks it was asked for. The cache refuses to store or serve such
// data since every entry must be exactly one block.
var ErrFetchLength = errors.New("source returned wrong byte count")

// Cache is a Reader that memoizes blocks from an underlying source. Blocks
// are cached forever; the backing medium is assumed read-only for the life
// of the process.
//
// Cache performs no locking and must be confined to one goroutine or
// serialized by the caller.
type Cache struct {
	source Reader
	blocks map[int64][]byte
}

// NewCache returns an empty cache over the given source.
func NewCache(source Reader) *Cache {
	return &Cache{
		source: source,
		blocks: make(map[int64][]byte),
	}
}

// BlockSize returns the block size of the underlying source.
func (c *Cache) BlockSize() int {
	return c.source.BlockSize()
}

// ReadBlocks returns the contents of count consecutive blocks starting at
// block index start, which must not be negative. Cached blocks are served
// from memory; each maximal run of consecutive uncached blocks is fetched
// from the source with one call and cached before being returned.
//
// Any source error aborts the whole request, even when some of the
// requested blocks were already cached.
func (c *Cache) ReadBlocks(start, count int64) ([]byte, error) {
	if count <= 0 {
		return nil, nil
	}
	var out bytes.Buffer
	out.Grow(int(count) * c.BlockSize())

	runStart := int64(-1)
	for idx := start; idx < start+count; idx++ {
		cached, ok := c.blocks[idx]
		if !ok {
			if runStart < 0 {
				runStart = idx
			}
			continue
		}
		if runStart >= 0 {
			if err := c.fetch(runStart, idx-runStart, &out); err != nil {
				return nil, err
			}
			runStart = -1
		}
		out.Write(cached)
	}
	if runStart >= 0 {
		if err := c.fetch(runStart, start+count-runStart, &out); err != nil {
			return nil, err
		}
	}
	return out.Bytes(), nil
}

// fetch reads one run of blocks from the source, verifies its length,
// caches each block, and appends the run to out. Cached entries alias the
// fetched slice rather than copying it.
func (c *Cache) fetch(start, count int64, out *bytes.Buffer) error {
	data, err := c.source.ReadBlocks(start, count)
	if err != nil {
		return err
	}
	bs := int64(c.BlockSize())
	if int64(len(data)) != count*bs {
		return fmt.Errorf("block: %w: want %d, got %d", ErrFetchLength, count*bs, len(data))
	}
	for i := int64(0); i < count; i++ {
		c.blocks[start+i] = data[i*bs : (i+1)*bs]
	}
	pkg.LogDebug(pkg.ComponentBlock, "fetched blocks",
		"start", start, "count", count, "cached", len(c.blocks))
	out.Write(data)
	return nil
}
