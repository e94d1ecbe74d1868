package vdisk

import (
	"fmt"
	"time"

	"github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"

	"github.com/ardnew/ubootfs/pkg"
)

// MountConfig carries the mount options a caller may vary. Everything else
// about the mount is fixed: read-only semantics, single-threaded dispatch,
// and one-second attribute caching.
type MountConfig struct {
	// FsName is the source name shown in the mount table.
	FsName string

	// AllowOther permits access by users other than the mount owner.
	// Requires user_allow_other in /etc/fuse.conf when run unprivileged.
	AllowOther bool

	// Debug logs the raw FUSE message traffic to stderr.
	Debug bool
}

// Mount exposes the disk at dir and returns the serving FUSE server. The
// caller shuts down with Unmount and blocks in Wait.
//
// Dispatch is single threaded so that request handling never interleaves
// command/response pairs on the console beneath the disk.
func Mount(dir string, disk *Disk, cfg MountConfig) (*fuse.Server, error) {
	ttl := time.Second
	opts := &fs.Options{
		AttrTimeout:  &ttl,
		EntryTimeout: &ttl,
		MountOptions: fuse.MountOptions{
			Name:           "ubootfs",
			FsName:         cfg.FsName,
			AllowOther:     cfg.AllowOther,
			Debug:          cfg.Debug,
			SingleThreaded: true,
		},
	}
	server, err := fs.Mount(dir, NewRoot(disk), opts)
	if err != nil {
		return nil, fmt.Errorf("vdisk: mount %s: %w", dir, err)
	}
	pkg.LogInfo(pkg.ComponentVDisk, "filesystem mounted",
		"dir", dir, "partitions", len(disk.Partitions()))
	return server, nil
}
