package engine

import (
	"bytes"

	"github.com/fxamacker/cbor/v2"

	"github.com/wippyai/lua-runtime/errors"
)

// Portable binary chunk container. The engine compiles to in-memory
// function prototypes that are not externally reconstructible, so the
// on-disk chunk format carries the chunk name and canonical source behind
// a distinctive signature. Loading sniffs the signature; callers never
// choose between text and binary explicitly.
const chunkVersion = 1

var (
	chunkSignature   = []byte{0x1b, 'G', 'L', 'C'}
	foreignSignature = []byte{0x1b, 'L', 'u', 'a'}
)

type chunkBody struct {
	Name   string `cbor:"1,keyasint"`
	Source []byte `cbor:"2,keyasint"`
}

// IsBinaryChunk reports whether data starts with the container signature.
func IsBinaryChunk(data []byte) bool {
	return len(data) > len(chunkSignature)+1 && bytes.HasPrefix(data, chunkSignature)
}

// isForeignChunk reports whether data is precompiled bytecode from the
// reference C engine, which this VM cannot execute.
func isForeignChunk(data []byte) bool {
	return bytes.HasPrefix(data, foreignSignature)
}

// EncodeChunk wraps a named source chunk in the portable container.
func EncodeChunk(name string, source []byte) ([]byte, error) {
	body, err := cbor.Marshal(chunkBody{Name: name, Source: source})
	if err != nil {
		return nil, errors.BadContainer(name, err)
	}
	out := make([]byte, 0, len(chunkSignature)+1+len(body))
	out = append(out, chunkSignature...)
	out = append(out, chunkVersion)
	out = append(out, body...)
	return out, nil
}

// DecodeChunk unwraps a container produced by EncodeChunk.
func DecodeChunk(data []byte) (name string, source []byte, err error) {
	if !IsBinaryChunk(data) {
		return "", nil, errors.BadContainer("", nil)
	}
	rest := data[len(chunkSignature):]
	if rest[0] != chunkVersion {
		return "", nil, errors.New(errors.PhaseLoad, errors.KindBytecode).
			Detail("unsupported chunk version %d", rest[0]).
			Build()
	}
	var body chunkBody
	if err := cbor.Unmarshal(rest[1:], &body); err != nil {
		return "", nil, errors.BadContainer("", err)
	}
	return body.Name, body.Source, nil
}
