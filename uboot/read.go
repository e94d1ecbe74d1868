package uboot

import (
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ardnew/ubootfs/pkg"
)

// Dump parse failure modes. Any of these means the transcript coming back
// over the console did not describe the staged region, so the read must be
// discarded rather than padded or truncated.
var (
	// ErrDumpAddress reports a dump line whose address does not continue
	// the sequence from the staging address. Dropped bytes on the wire and
	// firmware console noise both surface this way.
	ErrDumpAddress = errors.New("dump line address out of sequence")

	// ErrDumpEmpty reports a response containing no dump lines at all,
	// typically an "md.b" command rejected by the shell.
	ErrDumpEmpty = errors.New("no dump lines in response")

	// ErrDumpLength reports a dump that decoded to a different byte count
	// than was requested, such as a response truncated by a read timeout
	// shorter than the dump transmission time.
	ErrDumpLength = errors.New("dump length mismatch")
)

// dumpLinePattern matches one full "md.b" output line: an 8-digit hex
// address, the 16-byte data column (47 characters of hex digits and single
// spaces), and the 16-character ASCII gutter. Echoed commands, prompts, and
// the status line of "mmc read" all fail the match.
var dumpLinePattern = regexp.MustCompile(`^([0-9a-f]{8}):\s*([0-9a-f ]{47})\s*.{16}$`)

// ReadBlocks stages count blocks beginning at block index start into RAM
// and returns their contents. The result is exactly count*BlockSize()
// bytes. A count of zero or less returns nil without touching the console.
//
// Both shell commands are sent back to back and their output is collected
// as one transcript, so the quiet-line timeout is paid once per call
// rather than once per command.
func (d *Device) ReadBlocks(start, count int64) ([]byte, error) {
	if count <= 0 {
		return nil, nil
	}
	byteCount := count * int64(d.blockSize)
	pkg.LogDebug(pkg.ComponentUBoot, "read blocks",
		"start", start, "count", count, "bytes", byteCount)

	if err := d.console.Send(fmt.Sprintf(cmdStageBlocks, d.staging, start, count)); err != nil {
		return nil, fmt.Errorf("uboot: stage blocks %d+%d: %w", start, count, err)
	}
	if err := d.console.Send(fmt.Sprintf(cmdDumpBytes, d.staging, byteCount)); err != nil {
		return nil, fmt.Errorf("uboot: dump staged bytes: %w", err)
	}
	lines, err := d.console.Collect()
	if err != nil {
		return nil, fmt.Errorf("uboot: read dump response: %w", err)
	}

	data, err := parseDump(lines, uint64(d.staging))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) != byteCount {
		return nil, fmt.Errorf("uboot: %w: want %d bytes, got %d",
			ErrDumpLength, byteCount, len(data))
	}
	return data, nil
}

// parseDump reassembles the data column of an "md.b" transcript, verifying
// that line addresses advance by [dumpLineSpan] from the staging address.
func parseDump(lines []string, staging uint64) ([]byte, error) {
	var hexdump strings.Builder
	next := staging
	matched := 0
	for _, line := range lines {
		m := dumpLinePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		addr, _ := strconv.ParseUint(m[1], 16, 64)
		if addr != next {
			return nil, fmt.Errorf("uboot: %w: want %08x, got %08x",
				ErrDumpAddress, next, addr)
		}
		hexdump.WriteString(strings.ReplaceAll(m[2], " ", ""))
		next += dumpLineSpan
		matched++
	}
	if matched == 0 {
		return nil, fmt.Errorf("uboot: %w", ErrDumpEmpty)
	}
	data, err := hex.DecodeString(hexdump.String())
	if err != nil {
		return nil, fmt.Errorf("uboot: decode dump data: %w", err)
	}
	return data, nil
}
