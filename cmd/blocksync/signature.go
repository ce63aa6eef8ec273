package main

import (
	"io/ioutil"

	"github.com/dustin/go-humanize"

	"github.com/pkg/errors"

	"github.com/spf13/cobra"

	"github.com/blocksync-io/blocksync/pkg/encoding"
	"github.com/blocksync-io/blocksync/pkg/logging"
	"github.com/blocksync-io/blocksync/pkg/rsync"
)

// signatureMain is the entry point for the signature command.
func signatureMain(_ *cobra.Command, arguments []string) error {
	// Validate arguments and extract paths.
	if len(arguments) != 2 {
		return errors.New("invalid number of paths specified")
	}
	basisPath, signaturePath := arguments[0], arguments[1]

	// Resolve the chunk size.
	chunkSize, err := resolveChunkSize(signatureConfiguration.chunkSize)
	if err != nil {
		return err
	}

	// Create a logger.
	logger := logging.RootLogger.Sublogger("signature")

	// Read the basis file.
	basis, err := ioutil.ReadFile(basisPath)
	if err != nil {
		return errors.Wrap(err, "unable to read basis file")
	}

	// Compute the signature.
	signature, err := rsync.BytesSignature(basis, chunkSize)
	if err != nil {
		return errors.Wrap(err, "unable to compute signature")
	}
	logger.Debugf("hashed %s into %d chunks of up to %s",
		humanize.Bytes(uint64(len(basis))),
		len(signature.StrongHashes),
		humanize.Bytes(chunkSize),
	)

	// Save the signature.
	if err := encoding.MarshalAndSaveMessagePack(signaturePath, signature); err != nil {
		return errors.Wrap(err, "unable to save signature")
	}

	// Success.
	return nil
}

// signatureCommand is the signature command.
var signatureCommand = &cobra.Command{
	Use:          "signature <basis> <signature>",
	Short:        "Compute the block signature of a basis file",
	RunE:         signatureMain,
	SilenceUsage: true,
}

// signatureConfiguration stores configuration for the signature command.
var signatureConfiguration struct {
	// help indicates whether or not to show help information and exit.
	help bool
	// chunkSize is the chunk size specification.
	chunkSize string
}

func init() {
	// Grab a handle for the command line flags.
	flags := signatureCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&signatureConfiguration.help, "help", "h", false, "Show help information")

	// Wire up signature flags.
	flags.StringVarP(&signatureConfiguration.chunkSize, "chunk-size", "c", "", "Specify the chunk size (default 10)")
}
