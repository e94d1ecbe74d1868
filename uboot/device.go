package uboot

import "github.com/ardnew/ubootfs/console"

// Device is an MMC device that has been probed through a U-Boot console.
// Its geometry and partition table are captured once at probe time; U-Boot
// sessions are not expected to re-partition storage underneath a mount.
type Device struct {
	console    *console.Console
	staging    uint32
	blockSize  int
	partitions []Partition
}

// BlockSize returns the device's read block length in bytes.
func (d *Device) BlockSize() int {
	return d.blockSize
}

// Partitions returns the partition table ordered by partition number.
func (d *Device) Partitions() []Partition {
	parts := make([]Partition, len(d.partitions))
	copy(parts, d.partitions)
	return parts
}

// Partition returns the table entry with the given partition number.
func (d *Device) Partition(number int) (Partition, bool) {
	for _, p := range d.partitions {
		if p.Number == number {
			return p, true
		}
	}
	return Partition{}, false
}
