package main

import (
	"io/ioutil"

	"github.com/pkg/errors"

	"github.com/spf13/cobra"

	"github.com/blocksync-io/blocksync/cmd"
	"github.com/blocksync-io/blocksync/pkg/encoding"
	"github.com/blocksync-io/blocksync/pkg/logging"
	"github.com/blocksync-io/blocksync/pkg/rsync"
)

// deltaMain is the entry point for the delta command.
func deltaMain(_ *cobra.Command, arguments []string) error {
	// Validate arguments and extract paths.
	if len(arguments) != 3 {
		return errors.New("invalid number of paths specified")
	}
	signaturePath, updatedPath, deltaPath := arguments[0], arguments[1], arguments[2]

	// Resolve the chunk size. It must match the value used to compute the
	// signature; this can't be validated from the signature itself.
	chunkSize, err := resolveChunkSize(deltaConfiguration.chunkSize)
	if err != nil {
		return err
	}

	// Create a logger.
	logger := logging.RootLogger.Sublogger("delta")

	// Load the signature.
	signature := &rsync.Signature{}
	if err := encoding.LoadAndUnmarshalMessagePack(signaturePath, signature); err != nil {
		return errors.Wrap(err, "unable to load signature")
	}

	// Read the updated file. If it's shorter than a single chunk, then the
	// delta will degenerate to all literals, which is worth flagging since
	// it usually indicates a misconfigured chunk size.
	updated, err := ioutil.ReadFile(updatedPath)
	if err != nil {
		return errors.Wrap(err, "unable to read updated file")
	}
	if chunkSize > uint64(len(updated)) {
		cmd.Warning("chunk size exceeds updated file length, so no basis blocks can match")
	}

	// Compute the delta.
	delta, err := rsync.DeltafyBytes(updated, signature, chunkSize)
	if err != nil {
		return errors.Wrap(err, "unable to compute delta")
	}
	var blocks, literals int
	for _, token := range delta.Content {
		if token.Kind == rsync.TokenBlockIndex {
			blocks += 1
		} else {
			literals += 1
		}
	}
	logger.Debugf("matched %d blocks, emitted %d literal bytes", blocks, literals)

	// Save the delta.
	if err := encoding.MarshalAndSaveMessagePack(deltaPath, delta); err != nil {
		return errors.Wrap(err, "unable to save delta")
	}

	// Success.
	return nil
}

// deltaCommand is the delta command.
var deltaCommand = &cobra.Command{
	Use:          "delta <signature> <updated> <delta>",
	Short:        "Compute the delta between an updated file and a basis signature",
	RunE:         deltaMain,
	SilenceUsage: true,
}

// deltaConfiguration stores configuration for the delta command.
var deltaConfiguration struct {
	// help indicates whether or not to show help information and exit.
	help bool
	// chunkSize is the chunk size specification.
	chunkSize string
}

func init() {
	// Grab a handle for the command line flags.
	flags := deltaCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&deltaConfiguration.help, "help", "h", false, "Show help information")

	// Wire up delta flags.
	flags.StringVarP(&deltaConfiguration.chunkSize, "chunk-size", "c", "", "Specify the chunk size (default 10)")
}
