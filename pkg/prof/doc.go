// Package prof provides on-demand profiling for the filesystem daemon.
//
// The mounted filesystem spends most of its life waiting on the serial
// line, and profiling is how to verify that: time attributed to the dump
// parser or the FUSE layer instead of transport reads indicates a bug
// worth chasing. The package is conditionally compiled with the "profile"
// build tag:
//
//	go build -tags profile
//
// Without the tag every exported function is a no-op, so call sites stay
// in place at zero cost.
//
// # HTTP Profiling
//
// Built with the tag, the package starts an HTTP server on localhost:6060
// serving [net/http/pprof] at /debug/pprof/. Importing the package is
// enough; the daemon does this, so a profiled build can be inspected while
// mounted:
//
//	go tool pprof http://localhost:6060/debug/pprof/heap
//
// # CPU Profiling
//
// CPU profiling streams samples to a file and requires explicit start and
// stop:
//
//	prof.StartCPU("cpu.prof")
//	defer prof.StopCPU()
//
// Starting while already active returns [ErrCPUProfileActive].
//
// # Snapshot Profiles
//
// Other profiles capture a point-in-time snapshot:
//
//	prof.Write(prof.ProfileHeap, "heap.prof")
//
// [ProfileCPU] cannot be used with [Write]; use [StartCPU] and [StopCPU].
// Contention profiles are omitted entirely, as the daemon dispatches
// requests on a single thread.
package prof
