package configuration

import (
	"github.com/dustin/go-humanize"
)

// ByteSize is a uint64 value that supports unmarshalling from both
// human-friendly string representations (e.g. "4 KiB") and numeric
// representations. It can be cast to a uint64 value, where it represents a
// byte count.
type ByteSize uint64

// UnmarshalYAML implements the YAML unmarshalling interface.
func (s *ByteSize) UnmarshalYAML(unmarshal func(interface{}) error) error {
	// Try a direct numeric representation first.
	var numeric uint64
	if err := unmarshal(&numeric); err == nil {
		*s = ByteSize(numeric)
		return nil
	}

	// Otherwise expect a human-friendly string representation.
	var text string
	if err := unmarshal(&text); err != nil {
		return err
	}
	value, err := humanize.ParseBytes(text)
	if err != nil {
		return err
	}
	*s = ByteSize(value)

	// Success.
	return nil
}
