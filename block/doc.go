// Package block memoizes storage blocks fetched from a slow block source.
//
// The cache is write-never and evict-never: every block fetched is kept for
// the life of the process, which suits read-only media behind a transport
// so slow that refetching is always worse than holding the bytes. Requests
// spanning cached and uncached blocks fetch each contiguous run of missing
// blocks with a single source call, since per-call overhead on a serial
// console dwarfs the cost of the extra payload bytes.
package block
