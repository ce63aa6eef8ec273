package encoding

import (
	"io/ioutil"
	"os"

	"github.com/pkg/errors"

	"github.com/blocksync-io/blocksync/pkg/filesystem"
)

// loadAndUnmarshal provides the underlying loading and unmarshaling
// functionality for the encoding package. It reads the data at the specified
// path and then invokes the specified unmarshaling callback (usually a
// closure) to decode the data.
func loadAndUnmarshal(path string, unmarshal func([]byte) error) error {
	// Grab the file contents.
	data, err := ioutil.ReadFile(path)
	if err != nil {
		// If this is a non-existence error, then return it without wrapping
		// so that the caller can check for it.
		if os.IsNotExist(err) {
			return err
		}

		// Otherwise wrap it up.
		return errors.Wrap(err, "unable to load file")
	}

	// Perform the unmarshaling.
	if err := unmarshal(data); err != nil {
		return errors.Wrap(err, "unable to unmarshal data")
	}

	// Success.
	return nil
}

// marshalAndSave provides the underlying marshaling and saving functionality
// for the encoding package. It invokes the specified marshaling callback
// (usually a closure) and writes the result atomically to the specified path.
func marshalAndSave(path string, marshal func() ([]byte, error)) error {
	// Marshal the message.
	data, err := marshal()
	if err != nil {
		return errors.Wrap(err, "unable to marshal message")
	}

	// Write the file atomically.
	if err := filesystem.WriteFileAtomic(path, data, 0644); err != nil {
		return errors.Wrap(err, "unable to write message data")
	}

	// Success.
	return nil
}
