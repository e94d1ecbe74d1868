package vdisk

import (
	"context"
	"strconv"
	"syscall"

	"github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"

	"github.com/ardnew/ubootfs/pkg"
	"github.com/ardnew/ubootfs/uboot"
)

// Root is the mount point directory, one regular file per partition.
type Root struct {
	fs.Inode
	disk *Disk
}

var _ = (fs.NodeGetattrer)((*Root)(nil))
var _ = (fs.NodeReaddirer)((*Root)(nil))
var _ = (fs.NodeLookuper)((*Root)(nil))

// NewRoot returns the root node for a mount of disk.
func NewRoot(disk *Disk) *Root {
	return &Root{disk: disk}
}

func (r *Root) Getattr(ctx context.Context, f fs.FileHandle, out *fuse.AttrOut) syscall.Errno {
	out.Mode = fuse.S_IFDIR | 0o555
	out.Nlink = 2
	return fs.OK
}

func (r *Root) Readdir(ctx context.Context) (fs.DirStream, syscall.Errno) {
	parts := r.disk.Partitions()
	entries := make([]fuse.DirEntry, 0, len(parts))
	for i, p := range parts {
		entries = append(entries, fuse.DirEntry{
			Name: strconv.Itoa(p.Number),
			Mode: fuse.S_IFREG,
			Ino:  inodeOf(i),
		})
	}
	return fs.NewListDirStream(entries), fs.OK
}

func (r *Root) Lookup(ctx context.Context, name string, out *fuse.EntryOut) (*fs.Inode, syscall.Errno) {
	p, ok := r.disk.Lookup(name)
	if !ok {
		return nil, syscall.ENOENT
	}
	r.disk.fillAttr(p, &out.Attr)
	node := &partFile{disk: r.disk, part: p}
	stable := fs.StableAttr{Mode: fuse.S_IFREG, Ino: r.disk.inodeFor(p)}
	return r.NewInode(ctx, node, stable), fs.OK
}

// partFile is one partition exposed as a read-only regular file.
type partFile struct {
	fs.Inode
	disk *Disk
	part uboot.Partition
}

var _ = (fs.NodeGetattrer)((*partFile)(nil))
var _ = (fs.NodeOpener)((*partFile)(nil))
var _ = (fs.NodeReader)((*partFile)(nil))

func (f *partFile) Getattr(ctx context.Context, fh fs.FileHandle, out *fuse.AttrOut) syscall.Errno {
	f.disk.fillAttr(f.part, &out.Attr)
	return fs.OK
}

func (f *partFile) Open(ctx context.Context, flags uint32) (fs.FileHandle, uint32, syscall.Errno) {
	if flags&syscall.O_ACCMODE != syscall.O_RDONLY {
		return nil, 0, syscall.EACCES
	}
	return fileHandle(f.disk.nextHandle()), 0, fs.OK
}

func (f *partFile) Read(ctx context.Context, fh fs.FileHandle, dest []byte, off int64) (fuse.ReadResult, syscall.Errno) {
	if off < 0 {
		return nil, syscall.EINVAL
	}
	data, err := f.disk.ReadRange(f.part, off, len(dest))
	if err != nil {
		pkg.LogError(pkg.ComponentVDisk, "partition read failed",
			"partition", f.part.Number, "offset", off, "size", len(dest), "err", err)
		return nil, syscall.EIO
	}
	return fuse.ReadResultData(data), fs.OK
}

// fileHandle is an opaque open-file token. Opens carry no state, so a
// serial number is enough to keep handles distinct.
type fileHandle uint64

// fillAttr populates the attributes of a partition file.
func (d *Disk) fillAttr(p uboot.Partition, out *fuse.Attr) {
	size := p.Size(d.blockSize)
	out.Mode = fuse.S_IFREG | 0o444
	out.Nlink = 1
	out.Size = uint64(size)
	out.Blocks = uint64((size + 511) / 512)
	out.Blksize = uint32(d.blockSize)
}

// inodeFor returns the stable inode number of a partition, derived from its
// position in the table. Inode 1 is the root.
func (d *Disk) inodeFor(p uboot.Partition) uint64 {
	for i, q := range d.parts {
		if q.Number == p.Number {
			return inodeOf(i)
		}
	}
	return 0
}

func inodeOf(index int) uint64 {
	return uint64(index) + 2
}
