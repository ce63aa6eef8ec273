package main

import (
	"io/ioutil"

	"github.com/dustin/go-humanize"

	"github.com/pkg/errors"

	"github.com/spf13/cobra"

	"github.com/blocksync-io/blocksync/pkg/encoding"
	"github.com/blocksync-io/blocksync/pkg/filesystem"
	"github.com/blocksync-io/blocksync/pkg/logging"
	"github.com/blocksync-io/blocksync/pkg/rsync"
)

// patchMain is the entry point for the patch command.
func patchMain(_ *cobra.Command, arguments []string) error {
	// Validate arguments and extract paths.
	if len(arguments) != 3 {
		return errors.New("invalid number of paths specified")
	}
	basisPath, deltaPath, updatedPath := arguments[0], arguments[1], arguments[2]

	// Resolve the chunk size. It must match the value used to compute the
	// signature underlying the delta; this can't be validated from the delta
	// itself.
	chunkSize, err := resolveChunkSize(patchConfiguration.chunkSize)
	if err != nil {
		return err
	}

	// Create a logger.
	logger := logging.RootLogger.Sublogger("patch")

	// Read the basis file.
	basis, err := ioutil.ReadFile(basisPath)
	if err != nil {
		return errors.Wrap(err, "unable to read basis file")
	}

	// Load the delta.
	delta := &rsync.Delta{}
	if err := encoding.LoadAndUnmarshalMessagePack(deltaPath, delta); err != nil {
		return errors.Wrap(err, "unable to load delta")
	}

	// Apply the delta.
	updated, err := rsync.PatchBytes(basis, delta, chunkSize)
	if err != nil {
		return errors.Wrap(err, "unable to patch basis file")
	}
	logger.Debugf("reconstructed %s from %d tokens",
		humanize.Bytes(uint64(len(updated))), len(delta.Content))

	// Write the reconstructed file.
	if err := filesystem.WriteFileAtomic(updatedPath, updated, 0644); err != nil {
		return errors.Wrap(err, "unable to write updated file")
	}

	// Success.
	return nil
}

// patchCommand is the patch command.
var patchCommand = &cobra.Command{
	Use:          "patch <basis> <delta> <updated>",
	Short:        "Apply a delta to a basis file, reconstructing the updated file",
	RunE:         patchMain,
	SilenceUsage: true,
}

// patchConfiguration stores configuration for the patch command.
var patchConfiguration struct {
	// help indicates whether or not to show help information and exit.
	help bool
	// chunkSize is the chunk size specification.
	chunkSize string
}

func init() {
	// Grab a handle for the command line flags.
	flags := patchCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&patchConfiguration.help, "help", "h", false, "Show help information")

	// Wire up patch flags.
	flags.StringVarP(&patchConfiguration.chunkSize, "chunk-size", "c", "", "Specify the chunk size (default 10)")
}
