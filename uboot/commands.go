package uboot

// DefaultStagingAddr is the RAM address where blocks are staged before
// dumping. It must be overridden on boards where this range is in use by
// the firmware itself.
const DefaultStagingAddr uint32 = 0x90000000

// dumpLineSpan is the number of bytes printed per "md.b" output line.
const dumpLineSpan = 0x10

// Shell command formats. All numeric arguments to "mmc read" and "md.b"
// are hexadecimal without a 0x prefix, matching the U-Boot convention.
const (
	cmdDeviceInfo  = "mmc info"
	cmdListParts   = "mmc part"
	cmdSelectDev   = "mmc dev %d"
	cmdStageBlocks = "mmc read %x %x %x"
	cmdDumpBytes   = "md.b %x %x"
)
