package main

import (
	"os"

	"github.com/dustin/go-humanize"

	"github.com/pkg/errors"

	"github.com/blocksync-io/blocksync/pkg/configuration"
	"github.com/blocksync-io/blocksync/pkg/rsync"
)

// resolveChunkSize determines the chunk size for an operation. A non-empty
// command line specification takes precedence, followed by the global
// configuration file, followed by the built-in default. All three operations
// resolve chunk sizes identically, which keeps a configured default from
// desynchronizing signature, delta, and patch invocations: the chunk size is
// not recorded inside the artifacts, so supplying the same value to every
// operation is a caller obligation.
func resolveChunkSize(specification string) (uint64, error) {
	// Honor a command line specification if present. Chunk sizes accept
	// human-friendly suffixes, e.g. "4 KiB".
	if specification != "" {
		value, err := humanize.ParseBytes(specification)
		if err != nil {
			return 0, errors.Wrap(err, "unable to parse chunk size")
		} else if value == 0 {
			return 0, errors.New("chunk size must be positive")
		}
		return value, nil
	}

	// Check for a configured default, treating a missing configuration file
	// as empty.
	path, err := configuration.Path()
	if err != nil {
		return 0, errors.Wrap(err, "unable to compute configuration path")
	}
	global, err := configuration.Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			return rsync.DefaultChunkSize, nil
		}
		return 0, errors.Wrap(err, "unable to load configuration")
	}
	if global.Defaults.ChunkSize != 0 {
		return uint64(global.Defaults.ChunkSize), nil
	}

	// Fall back to the built-in default.
	return rsync.DefaultChunkSize, nil
}
