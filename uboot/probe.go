package uboot

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/ardnew/ubootfs/console"
	"github.com/ardnew/ubootfs/pkg"
)

// Probe failure modes. Both indicate output that scrolled past without the
// expected shape, typically a wrong console device or an unselected MMC
// controller rather than a transport fault.
var (
	ErrBlockSizeNotFound = errors.New("no read block length in device info")
	ErrNoPartitions      = errors.New("no partitions in partition table")
)

var (
	// blockLenPattern matches the "Rd Block Len: 512" line of "mmc info".
	blockLenPattern = regexp.MustCompile(`^Rd Block Len:\s*(\d+)`)

	// partitionPattern matches one "mmc part" table row: partition number,
	// start block, and length in blocks, each in decimal. Header and blank
	// lines fail the match and are skipped.
	partitionPattern = regexp.MustCompile(`^\s*(\d+)\s+(\d+)\s+(\d+)\s+`)
)

// Option adjusts how Probe interrogates the device.
type Option func(*probeConfig)

type probeConfig struct {
	staging uint32
	mmcDev  int
}

// WithStagingAddr overrides [DefaultStagingAddr] as the RAM address used to
// stage blocks before dumping.
func WithStagingAddr(addr uint32) Option {
	return func(cfg *probeConfig) { cfg.staging = addr }
}

// WithMMCDev selects the given MMC controller with "mmc dev" before
// probing. Without this option the controller U-Boot last selected is used.
func WithMMCDev(n int) Option {
	return func(cfg *probeConfig) { cfg.mmcDev = n }
}

// Probe interrogates the MMC device behind the console and returns a Device
// holding its block size and partition table.
//
// Rows of "mmc part" output that do not parse as a partition entry are
// skipped, and when the table repeats a partition number the last row wins.
func Probe(con *console.Console, opts ...Option) (*Device, error) {
	cfg := probeConfig{staging: DefaultStagingAddr, mmcDev: -1}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.mmcDev >= 0 {
		cmd := fmt.Sprintf(cmdSelectDev, cfg.mmcDev)
		if _, err := con.Exchange(cmd); err != nil {
			return nil, fmt.Errorf("uboot: select mmc device %d: %w", cfg.mmcDev, err)
		}
	}

	blockSize, err := probeBlockSize(con)
	if err != nil {
		return nil, err
	}
	pkg.LogInfo(pkg.ComponentUBoot, "probed device geometry", "blockSize", blockSize)

	parts, err := probePartitions(con)
	if err != nil {
		return nil, err
	}
	for _, p := range parts {
		pkg.LogInfo(pkg.ComponentUBoot, "found partition",
			"number", p.Number, "start", p.Start, "blocks", p.Length)
	}

	return &Device{
		console:    con,
		staging:    cfg.staging,
		blockSize:  blockSize,
		partitions: parts,
	}, nil
}

func probeBlockSize(con *console.Console) (int, error) {
	lines, err := con.Exchange(cmdDeviceInfo)
	if err != nil {
		return 0, fmt.Errorf("uboot: query device info: %w", err)
	}
	blockSize := 0
	for _, line := range lines {
		m := blockLenPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 {
			continue
		}
		blockSize = n
	}
	if blockSize == 0 {
		return 0, fmt.Errorf("uboot: %w", ErrBlockSizeNotFound)
	}
	return blockSize, nil
}

func probePartitions(con *console.Console) ([]Partition, error) {
	lines, err := con.Exchange(cmdListParts)
	if err != nil {
		return nil, fmt.Errorf("uboot: query partition table: %w", err)
	}
	byNumber := make(map[int]Partition)
	for _, line := range lines {
		m := partitionPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		number, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		start, err := strconv.ParseInt(m[2], 10, 64)
		if err != nil {
			continue
		}
		length, err := strconv.ParseInt(m[3], 10, 64)
		if err != nil {
			continue
		}
		byNumber[number] = Partition{Number: number, Start: start, Length: length}
	}
	if len(byNumber) == 0 {
		return nil, fmt.Errorf("uboot: %w", ErrNoPartitions)
	}
	parts := make([]Partition, 0, len(byNumber))
	for _, p := range byNumber {
		parts = append(parts, p)
	}
	sortPartitions(parts)
	return parts, nil
}
