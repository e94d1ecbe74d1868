// Package console drives a line-oriented command shell over a serial byte
// stream.
//
// The console model is deliberately simple: a command is one line of text,
// and the response is whatever the remote shell prints before going quiet.
// There is no framing, no prompt detection, and no echo suppression. Callers
// that need structure parse the returned lines themselves.
//
// # Transport
//
// A [Console] wraps any [io.ReadWriter]. The production transport is a
// serial port opened with [Open], which configures the port so that a read
// blocking longer than the configured timeout returns zero bytes. That
// quiet period is the only end-of-response signal this package relies on,
// so the timeout must comfortably exceed the remote shell's inter-line
// delay at the configured baud rate.
//
// # Usage
//
//	con, err := console.Open("/dev/ttyUSB0", 115200, 100*time.Millisecond)
//	if err != nil {
//	    return err
//	}
//	defer con.Close()
//
//	lines, err := con.Exchange("mmc part")
//
// The returned lines include the echoed command when the remote shell
// echoes input, so callers must not assume the first line is response
// payload.
package console
