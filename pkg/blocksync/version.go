package blocksync

import (
	"fmt"
)

const (
	// VersionMajor represents the current major version of blocksync.
	VersionMajor = 0
	// VersionMinor represents the current minor version of blocksync.
	VersionMinor = 1
	// VersionPatch represents the current patch version of blocksync.
	VersionPatch = 0
)

// Version provides a stringified version of the current blocksync version.
var Version string

func init() {
	Version = fmt.Sprintf("%d.%d.%d", VersionMajor, VersionMinor, VersionPatch)
}
