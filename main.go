// Command ubootfs mounts the MMC partitions behind a U-Boot serial console
// as a read-only filesystem.
//
// The bootloader on the far end of the serial line must be sitting at its
// interactive prompt with the "mmc" and "md.b" commands available. Each
// partition appears as one file named by its partition number, sized to the
// partition, and serving raw device bytes. A partition holding a filesystem
// can then be loop-mounted:
//
//	ubootfs /mnt/vdisk /dev/ttyUSB0 &
//	mount -o loop,ro,norecovery /mnt/vdisk/1 /mnt/part1
//
// Usage:
//
//	ubootfs [options] <mountpoint> <serial-device>
//
// Options:
//
//	-baud N        serial line speed (default 115200)
//	-timeout D     quiet period that ends a console response (default 100ms)
//	-staging ADDR  RAM address in hex where blocks are staged (default 90000000)
//	-mmc N         select MMC controller N before probing (default: current)
//	-allow-other   permit filesystem access by other users
//	-fuse-debug    log raw FUSE message traffic
//	-debug         enable verbose logging
//	-log-json      write logs as JSON
//
// The staging address and console commands match mainline U-Boot defaults
// but vary by firmware; adjust -staging, and expect to adjust the command
// set in package uboot, when pointing this at exotic boards.
//
// Every uncached byte crosses the console as a hex dump, roughly 4x payload
// size on the wire, so throughput at 115200 baud is a few KiB/s. Treat it
// like a dial-up link: mount, read what you need, let the cache work.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/ardnew/ubootfs/block"
	"github.com/ardnew/ubootfs/console"
	"github.com/ardnew/ubootfs/pkg"
	_ "github.com/ardnew/ubootfs/pkg/prof" // pprof server when built with -tags profile
	"github.com/ardnew/ubootfs/uboot"
	"github.com/ardnew/ubootfs/vdisk"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [options] <mountpoint> <serial-device>\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	baud := flag.Int("baud", 115200, "serial line speed")
	timeout := flag.Duration("timeout", 100*time.Millisecond, "quiet period that ends a console response")
	staging := flag.String("staging", "90000000", "RAM address in hex where blocks are staged")
	mmcDev := flag.Int("mmc", -1, "MMC controller to select before probing (-1 keeps current)")
	allowOther := flag.Bool("allow-other", false, "permit filesystem access by other users")
	fuseDebug := flag.Bool("fuse-debug", false, "log raw FUSE message traffic")
	debug := flag.Bool("debug", false, "enable verbose logging")
	logJSON := flag.Bool("log-json", false, "write logs as JSON")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 2 {
		usage()
		os.Exit(2)
	}
	mountpoint, device := flag.Arg(0), flag.Arg(1)

	if *logJSON {
		pkg.SetLogFormat(pkg.LogFormatJSON)
	}
	if *debug {
		pkg.SetLogLevel(slog.LevelDebug)
	} else {
		pkg.SetLogLevel(slog.LevelInfo)
	}

	stagingAddr, err := parseStagingAddr(*staging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", os.Args[0], err)
		os.Exit(2)
	}

	con, err := console.Open(device, *baud, *timeout)
	if err != nil {
		pkg.LogError(pkg.ComponentMain, "opening console failed", "err", err)
		os.Exit(1)
	}
	defer con.Close()

	opts := []uboot.Option{uboot.WithStagingAddr(stagingAddr)}
	if *mmcDev >= 0 {
		opts = append(opts, uboot.WithMMCDev(*mmcDev))
	}
	dev, err := uboot.Probe(con, opts...)
	if err != nil {
		pkg.LogError(pkg.ComponentMain, "probing device failed", "err", err)
		os.Exit(1)
	}

	disk := vdisk.NewDisk(dev.Partitions(), dev.BlockSize(), block.NewCache(dev))
	server, err := vdisk.Mount(mountpoint, disk, vdisk.MountConfig{
		FsName:     device,
		AllowOther: *allowOther,
		Debug:      *fuseDebug,
	})
	if err != nil {
		pkg.LogError(pkg.ComponentMain, "mounting filesystem failed", "err", err)
		os.Exit(1)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		pkg.LogInfo(pkg.ComponentMain, "unmounting on signal", "signal", sig.String())
		if err := server.Unmount(); err != nil {
			pkg.LogError(pkg.ComponentMain, "unmount failed", "err", err)
		}
	}()

	server.Wait()
}

// parseStagingAddr parses a RAM address as hex, with or without the 0x
// prefix U-Boot itself would accept.
func parseStagingAddr(s string) (uint32, error) {
	trimmed := strings.TrimPrefix(strings.ToLower(s), "0x")
	addr, err := strconv.ParseUint(trimmed, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid staging address %q: %w", s, err)
	}
	return uint32(addr), nil
}
