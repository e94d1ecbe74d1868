package vdisk

import (
	"strconv"

	"github.com/ardnew/ubootfs/block"
	"github.com/ardnew/ubootfs/uboot"
)

// Disk translates byte-range reads on partitions into block reads on an
// underlying reader. It also owns the partition table shown by the mount
// and the handle counter for open files.
type Disk struct {
	parts     []uboot.Partition
	blockSize int
	reader    block.Reader
	handles   uint64
}

// NewDisk returns a Disk over the given partitions and block reader. The
// partition order determines directory listing order.
func NewDisk(parts []uboot.Partition, blockSize int, reader block.Reader) *Disk {
	return &Disk{
		parts:     parts,
		blockSize: blockSize,
		reader:    reader,
	}
}

// Partitions returns the partition table in listing order.
func (d *Disk) Partitions() []uboot.Partition {
	return d.parts
}

// Lookup resolves a directory entry name to its partition. Names are
// partition numbers in decimal; anything unparseable or unknown misses.
func (d *Disk) Lookup(name string) (uboot.Partition, bool) {
	number, err := strconv.Atoi(name)
	if err != nil {
		return uboot.Partition{}, false
	}
	for _, p := range d.parts {
		if p.Number == number {
			return p, true
		}
	}
	return uboot.Partition{}, false
}

// SizeOf returns the partition's size in bytes.
func (d *Disk) SizeOf(p uboot.Partition) int64 {
	return p.Size(d.blockSize)
}

// nextHandle issues a fresh file handle. Handles carry no state; they only
// need to be distinct while open.
func (d *Disk) nextHandle() uint64 {
	d.handles++
	return d.handles
}

// ReadRange returns up to size bytes of partition p starting at byte offset
// off, which must not be negative. Reads beyond the end of the partition
// return nil, and reads crossing the end are truncated to it.
//
// The range is widened to whole blocks for the underlying reader and the
// exact span sliced out of the result, so a one byte read costs one block
// on a cold cache and nothing on a warm one.
func (d *Disk) ReadRange(p uboot.Partition, off int64, size int) ([]byte, error) {
	psize := p.Size(d.blockSize)
	if off >= psize || size <= 0 {
		return nil, nil
	}
	bs := int64(d.blockSize)

	startBlock := off/bs + p.Start
	blockOff := off % bs

	endByte := off + int64(size)
	if endByte > psize {
		endByte = psize
	}
	endBlock := endByte/bs + p.Start
	if endByte%bs != 0 {
		endBlock++
	}

	data, err := d.reader.ReadBlocks(startBlock, endBlock-startBlock)
	if err != nil {
		return nil, err
	}
	byteCount := endByte - off
	return data[blockOff : blockOff+byteCount], nil
}
