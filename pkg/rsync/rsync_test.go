package rsync

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

func TestSignatureSerializationRoundTrip(t *testing.T) {
	// Compute a signature worth serializing.
	signature, err := BytesSignature(testDataGenerator{1024, 473, 0}.generate(), 64)
	if err != nil {
		t.Fatal("unable to compute signature:", err)
	}

	// Serialize and deserialize it.
	data, err := msgpack.Marshal(signature)
	if err != nil {
		t.Fatal("unable to marshal signature:", err)
	}
	decoded := &Signature{}
	if err := msgpack.Unmarshal(data, decoded); err != nil {
		t.Fatal("unable to unmarshal signature:", err)
	}

	// Verify equivalence.
	if !reflect.DeepEqual(decoded, signature) {
		t.Error("decoded signature does not match original")
	}
}

func TestSignatureWireFieldNames(t *testing.T) {
	// The two hash arrays must appear under stable field names so that the
	// format remains decoder-independent.
	data, err := msgpack.Marshal(&Signature{
		StrongHashes:  []uint64{1},
		RollingHashes: []uint64{2},
	})
	if err != nil {
		t.Fatal("unable to marshal signature:", err)
	}
	if !bytes.Contains(data, []byte("strong_hashes")) {
		t.Error("strong hash field name missing from encoding")
	}
	if !bytes.Contains(data, []byte("rolling_hashes")) {
		t.Error("rolling hash field name missing from encoding")
	}
}

func TestDeltaSerializationRoundTrip(t *testing.T) {
	delta := &Delta{Content: []Token{
		{Kind: TokenBlockIndex, Index: 0},
		{Kind: TokenByteLiteral, Literal: 'h'},
		{Kind: TokenByteLiteral, Literal: 0xff},
		{Kind: TokenBlockIndex, Index: 1 << 40},
	}}
	data, err := msgpack.Marshal(delta)
	if err != nil {
		t.Fatal("unable to marshal delta:", err)
	}
	decoded := &Delta{}
	if err := msgpack.Unmarshal(data, decoded); err != nil {
		t.Fatal("unable to unmarshal delta:", err)
	}
	if !reflect.DeepEqual(decoded, delta) {
		t.Error("decoded delta does not match original")
	}
}

func TestTokenWireStability(t *testing.T) {
	// Token tags are part of the wire format and must never be renumbered,
	// so pin the exact encodings of both token shapes.
	for _, c := range []struct {
		token    Token
		expected []byte
	}{
		{Token{Kind: TokenBlockIndex, Index: 7}, []byte{0x92, 0x00, 0x07}},
		{Token{Kind: TokenByteLiteral, Literal: 'h'}, []byte{0x92, 0x01, 0x68}},
	} {
		data, err := msgpack.Marshal(&c.token)
		if err != nil {
			t.Fatal("unable to marshal token:", err)
		}
		if !bytes.Equal(data, c.expected) {
			t.Errorf("unexpected token encoding: %x != %x", data, c.expected)
		}
	}
}

func TestTokenUnknownTagRejected(t *testing.T) {
	// A two-element array with an unrecognized tag.
	token := &Token{}
	if err := msgpack.Unmarshal([]byte{0x92, 0x05, 0x00}, token); err == nil {
		t.Error("unknown token tag allowed")
	}
}

func TestTokenLiteralRangeRejected(t *testing.T) {
	// A byte literal token carrying the value 300 (uint16 encoding).
	token := &Token{}
	if err := msgpack.Unmarshal([]byte{0x92, 0x01, 0xcd, 0x01, 0x2c}, token); err == nil {
		t.Error("out-of-range literal byte allowed")
	}
}

func TestTokenBadFramingRejected(t *testing.T) {
	// A three-element array is not a token.
	token := &Token{}
	if err := msgpack.Unmarshal([]byte{0x93, 0x00, 0x00, 0x00}, token); err == nil {
		t.Error("invalid token framing allowed")
	}
}

func TestDeltaMalformedRejected(t *testing.T) {
	delta := &Delta{}
	if err := msgpack.Unmarshal([]byte("this is not a delta"), delta); err == nil {
		t.Error("malformed delta bytes allowed")
	}
}

func TestTokenValidation(t *testing.T) {
	for _, c := range []struct {
		token Token
		valid bool
	}{
		{Token{Kind: TokenBlockIndex, Index: 3}, true},
		{Token{Kind: TokenByteLiteral, Literal: 'x'}, true},
		{Token{Kind: TokenBlockIndex, Literal: 'x'}, false},
		{Token{Kind: TokenByteLiteral, Index: 3}, false},
		{Token{Kind: TokenKind(9)}, false},
	} {
		if err := c.token.ensureValid(); (err == nil) != c.valid {
			t.Errorf("unexpected validation result for %+v", c.token)
		}
	}
}
