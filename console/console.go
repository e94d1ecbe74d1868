package console

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ardnew/ubootfs/pkg"
)

// readChunk is the transfer size for a single transport read. Responses
// larger than this are collected across multiple reads.
const readChunk = 4096

// Console exchanges commands and responses with a remote shell over a byte
// stream transport.
//
// Console performs no locking. Callers that share one Console across
// goroutines must serialize access themselves, since a command and its
// response are only correlated by their position on the wire.
type Console struct {
	rw io.ReadWriter
}

// New returns a Console that reads and writes the given transport.
//
// For Collect to terminate, the transport's Read must return (0, nil) or
// [io.EOF] once the remote side goes quiet. Serial ports opened with [Open]
// behave this way; in-memory transports used in tests must emulate it.
func New(rw io.ReadWriter) *Console {
	return &Console{rw: rw}
}

// Send transmits one command line to the remote shell.
func (c *Console) Send(cmd string) error {
	pkg.LogDebug(pkg.ComponentConsole, "send command", "cmd", cmd)
	if _, err := io.WriteString(c.rw, cmd+"\n"); err != nil {
		return fmt.Errorf("console: send %q: %w", cmd, err)
	}
	return nil
}

// Collect reads the transport until it goes quiet and returns the transcript
// split into lines.
//
// Line endings are normalized: both "\r\n" and "\n" terminate a line, and a
// trailing unterminated fragment is returned as a final line. The transcript
// typically begins with the echo of the command that produced it.
func (c *Console) Collect() ([]string, error) {
	var raw strings.Builder
	buf := make([]byte, readChunk)
	for {
		n, err := c.rw.Read(buf)
		if n > 0 {
			raw.Write(buf[:n])
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("console: collect: %w", err)
		}
		if n == 0 {
			break
		}
	}
	lines := splitLines(raw.String())
	pkg.LogDebug(pkg.ComponentConsole, "collected response", "lines", len(lines), "bytes", raw.Len())
	return lines, nil
}

// Exchange sends one command and collects its response.
func (c *Console) Exchange(cmd string) ([]string, error) {
	if err := c.Send(cmd); err != nil {
		return nil, err
	}
	return c.Collect()
}

// Close releases the underlying transport if it supports closing.
func (c *Console) Close() error {
	if closer, ok := c.rw.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// splitLines splits a raw transcript into lines, stripping carriage returns
// and dropping the empty fragment after a trailing newline.
func splitLines(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	for i, p := range parts {
		parts[i] = strings.TrimSuffix(p, "\r")
	}
	return parts
}
