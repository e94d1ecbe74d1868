package console

import (
	"fmt"
	"time"

	"go.bug.st/serial"

	"github.com/ardnew/ubootfs/pkg"
)

// Open opens the named serial device and returns a Console bound to it.
//
// The port is configured for 8 data bits, no parity, and one stop bit at the
// given baud rate. The read timeout bounds how long Collect waits for more
// output after the last byte arrives, so it acts as the end-of-response
// delimiter: too short and multi-line responses are truncated, too long and
// every command pays the full wait.
//
// Any bytes already pending on the port, such as boot messages printed
// before the shell prompt, are discarded.
func Open(device string, baud int, timeout time.Duration) (*Console, error) {
	port, err := serial.Open(device, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("console: open %s: %w", device, err)
	}
	if err := port.SetReadTimeout(timeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("console: set read timeout on %s: %w", device, err)
	}
	if err := port.ResetInputBuffer(); err != nil {
		port.Close()
		return nil, fmt.Errorf("console: flush input on %s: %w", device, err)
	}
	pkg.LogInfo(pkg.ComponentConsole, "serial console open",
		"device", device, "baud", baud, "timeout", timeout)
	return New(port), nil
}
