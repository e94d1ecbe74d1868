// Package vdisk presents MMC partitions as a read-only FUSE filesystem.
//
// The mount point is a flat directory with one regular file per partition,
// named by partition number. Each file is exactly the partition's size and
// serves raw device bytes, so partition 1 of a disk mounted at /mnt/vdisk
// can itself be loop-mounted:
//
//	mount -o loop,ro,norecovery /mnt/vdisk/1 /mnt/part1
//
// # Concurrency
//
// The FUSE server runs single threaded. Requests arrive one at a time, so
// the disk, cache, and console below this package need no locking and
// command/response pairs on the serial link cannot interleave. Throughput
// is bounded by the console anyway; parallel dispatch would add hazards
// and no speed.
//
// # Semantics
//
// All files are read-only. Opens for writing fail with EACCES, reads past
// the end of a partition return empty, and short reads at the boundary
// truncate to the partition size. Console failures during a read surface
// as EIO.
package vdisk
