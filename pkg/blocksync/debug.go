package blocksync

import (
	"os"
)

// DebugEnabled controls whether or not debugging is enabled for blocksync.
// It is set automatically based on the BLOCKSYNC_DEBUG environment variable.
var DebugEnabled bool

func init() {
	// Check whether or not debugging should be enabled.
	DebugEnabled = os.Getenv("BLOCKSYNC_DEBUG") == "1"
}
