// Package uboot reads MMC storage through a U-Boot interactive shell.
//
// U-Boot exposes no byte-granular storage API over its console, only shell
// commands that operate on whole blocks and memory regions. This package
// composes those commands into a block reader:
//
//  1. "mmc info" reports the device geometry, including the read block
//     length in bytes.
//  2. "mmc part" prints the partition table, one row per partition with
//     its number, start block, and length in blocks.
//  3. "mmc read <addr> <blk#> <cnt>" stages a run of blocks into RAM at a
//     scratch address.
//  4. "md.b <addr> <count>" dumps that RAM region as a hex listing, which
//     is the only way the block contents ever cross the serial link.
//
// # Dump format
//
// Each "md.b" output line carries a 32-bit address, sixteen data bytes in
// hex, and an ASCII gutter:
//
//	90000000: eb 63 90 10 8e d0 bc 00 b0 b8 00 00 8e d8 8e c0    .c..............
//
// [Device.ReadBlocks] reassembles the data column and verifies that line
// addresses advance contiguously from the staging address, so a dropped or
// mangled line surfaces as an error instead of silently corrupted data.
//
// # Staging memory
//
// Staged blocks overwrite RAM at [DefaultStagingAddr] (or the address given
// via [WithStagingAddr]). The address must point at DRAM that U-Boot is not
// itself using; the default suits boards whose U-Boot relocates away from
// 0x90000000, but it is firmware-specific and has no universally safe
// value.
//
// # Performance
//
// A hex dump spends roughly 4x the wire bytes of the payload it encodes,
// so at 115200 baud throughput tops out near a few KiB/s. Callers should
// cache aggressively and read as little as possible.
package uboot
