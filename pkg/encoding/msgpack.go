package encoding

import (
	"github.com/vmihailenco/msgpack/v5"
)

// LoadAndUnmarshalMessagePack loads data from the specified path and decodes
// it into the specified structure using MessagePack.
func LoadAndUnmarshalMessagePack(path string, value interface{}) error {
	return loadAndUnmarshal(path, func(data []byte) error {
		return msgpack.Unmarshal(data, value)
	})
}

// MarshalAndSaveMessagePack MessagePack-encodes the specified structure and
// saves it atomically to the specified path.
func MarshalAndSaveMessagePack(path string, value interface{}) error {
	return marshalAndSave(path, func() ([]byte, error) {
		return msgpack.Marshal(value)
	})
}
