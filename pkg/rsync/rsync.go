package rsync

import (
	"github.com/pkg/errors"

	"github.com/vmihailenco/msgpack/v5"
)

// Signature represents an rsync basis signature. It consists of two
// positional arrays of equal length: the i-th entry of each describes the
// i-th chunk of the basis. The chunk size used to generate a signature is not
// stored inside it; callers must supply the same chunk size when computing
// deltas against the signature.
type Signature struct {
	// StrongHashes are the strong hashes of the basis chunks.
	StrongHashes []uint64 `msgpack:"strong_hashes"`
	// RollingHashes are the rolling hashes of the basis chunks.
	RollingHashes []uint64 `msgpack:"rolling_hashes"`
}

// ensureValid verifies that signature invariants are respected.
func (s *Signature) ensureValid() error {
	// A nil signature is not valid.
	if s == nil {
		return errors.New("nil signature")
	}

	// The hash arrays describe the same chunks in positional lock-step, so
	// their lengths must agree.
	if len(s.StrongHashes) != len(s.RollingHashes) {
		return errors.New("strong and rolling hash counts do not match")
	}

	// Success.
	return nil
}

// TokenKind encodes the type of a delta token. Its values are part of the
// delta wire format and must never be renumbered.
type TokenKind uint8

const (
	// TokenBlockIndex indicates a token that references a basis chunk by
	// index.
	TokenBlockIndex TokenKind = iota
	// TokenByteLiteral indicates a token that carries a single literal byte.
	TokenByteLiteral
)

// Token is a single delta instruction: either a reference to a basis chunk
// (reproduce that chunk's bytes verbatim) or a single literal byte.
type Token struct {
	// Kind is the token type.
	Kind TokenKind
	// Index is the 0-indexed basis chunk for block index tokens.
	Index uint64
	// Literal is the byte carried by byte literal tokens.
	Literal byte
}

// ensureValid verifies that token invariants are respected.
func (t Token) ensureValid() error {
	switch t.Kind {
	case TokenBlockIndex:
		if t.Literal != 0 {
			return errors.New("block index token with non-0 literal")
		}
	case TokenByteLiteral:
		if t.Index != 0 {
			return errors.New("byte literal token with non-0 block index")
		}
	default:
		return errors.Errorf("unknown token kind (%d)", t.Kind)
	}
	return nil
}

// EncodeMsgpack implements msgpack.CustomEncoder.EncodeMsgpack. Tokens encode
// as a two-element array of the kind tag followed by the payload (a chunk
// index or a literal byte value).
func (t *Token) EncodeMsgpack(encoder *msgpack.Encoder) error {
	// Write the array framing.
	if err := encoder.EncodeArrayLen(2); err != nil {
		return errors.Wrap(err, "unable to encode token framing")
	}

	// Write the kind tag.
	if err := encoder.EncodeUint(uint64(t.Kind)); err != nil {
		return errors.Wrap(err, "unable to encode token kind")
	}

	// Write the payload.
	switch t.Kind {
	case TokenBlockIndex:
		return encoder.EncodeUint(t.Index)
	case TokenByteLiteral:
		return encoder.EncodeUint(uint64(t.Literal))
	default:
		return errors.Errorf("unknown token kind (%d)", t.Kind)
	}
}

// DecodeMsgpack implements msgpack.CustomDecoder.DecodeMsgpack.
func (t *Token) DecodeMsgpack(decoder *msgpack.Decoder) error {
	// Verify the array framing.
	if length, err := decoder.DecodeArrayLen(); err != nil {
		return errors.Wrap(err, "unable to decode token framing")
	} else if length != 2 {
		return errors.Errorf("invalid token framing length (%d)", length)
	}

	// Decode the kind tag.
	kind, err := decoder.DecodeUint64()
	if err != nil {
		return errors.Wrap(err, "unable to decode token kind")
	}

	// Decode the payload based on the kind.
	switch TokenKind(kind) {
	case TokenBlockIndex:
		index, err := decoder.DecodeUint64()
		if err != nil {
			return errors.Wrap(err, "unable to decode block index")
		}
		*t = Token{Kind: TokenBlockIndex, Index: index}
	case TokenByteLiteral:
		literal, err := decoder.DecodeUint64()
		if err != nil {
			return errors.Wrap(err, "unable to decode literal byte")
		} else if literal > 255 {
			return errors.Errorf("literal byte value out of range (%d)", literal)
		}
		*t = Token{Kind: TokenByteLiteral, Literal: byte(literal)}
	default:
		return errors.Errorf("unknown token kind (%d)", kind)
	}

	// Success.
	return nil
}

// Delta represents the difference between an updated file and a basis,
// encoded as the ordered sequence of tokens whose contributions, concatenated
// in order, reproduce the updated file exactly.
type Delta struct {
	// Content are the delta's tokens in application order.
	Content []Token `msgpack:"content"`
}

// ensureValid verifies that delta invariants are respected.
func (d *Delta) ensureValid() error {
	// A nil delta is not valid.
	if d == nil {
		return errors.New("nil delta")
	}

	// Verify tokens.
	for _, token := range d.Content {
		if err := token.ensureValid(); err != nil {
			return errors.Wrap(err, "invalid token")
		}
	}

	// Success.
	return nil
}
