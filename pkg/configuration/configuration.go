package configuration

import (
	"github.com/blocksync-io/blocksync/pkg/encoding"
)

// Configuration is the global YAML configuration object type.
type Configuration struct {
	// Defaults are the default operation parameters.
	Defaults struct {
		// ChunkSize is the default chunk size for signature, delta, and
		// patch operations. A value of 0 indicates that no default has been
		// configured.
		ChunkSize ByteSize `yaml:"chunkSize"`
	} `yaml:"defaults"`
}

// Load attempts to load a YAML-based blocksync global configuration file
// from the specified path. It passes through os.IsNotExist errors from the
// underlying load, so callers can treat a missing file as an empty
// configuration.
func Load(path string) (*Configuration, error) {
	// Create the target configuration object.
	result := &Configuration{}

	// Attempt to load. We pass-through os.IsNotExist errors.
	if err := encoding.LoadAndUnmarshalYAML(path, result); err != nil {
		return nil, err
	}

	// Success.
	return result, nil
}
