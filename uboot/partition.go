package uboot

import "sort"

// Partition describes one entry of an MMC partition table as reported by
// "mmc part". Start and Length are in blocks, not bytes.
type Partition struct {
	Number int
	Start  int64
	Length int64
}

// Size returns the partition's capacity in bytes for the given block size.
func (p Partition) Size(blockSize int) int64 {
	return p.Length * int64(blockSize)
}

// sortPartitions orders partitions by table number ascending.
func sortPartitions(parts []Partition) {
	sort.Slice(parts, func(i, j int) bool {
		return parts[i].Number < parts[j].Number
	})
}
