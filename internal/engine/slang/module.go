package slang

import (
	"encoding/binary"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"go.trai.ch/shadertime/internal/core/domain"
	"go.trai.ch/shadertime/internal/core/ports"
	"go.trai.ch/zerr"
)

// targetMagic is the first word of every emitted target-code stream.
const targetMagic uint32 = 0x53544243 // "STBC"

// imageVersion is the serialized module format version. Increment on
// incompatible changes.
const imageVersion uint16 = 1

// cborEncMode is the canonical CBOR encoding used for serialized modules.
// Canonical mode makes serialization deterministic: compiling the same
// source in two independent sessions yields byte-identical images.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("slang: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// moduleImage is the serialized form of a linked module.
type moduleImage struct {
	Name    string   `cbor:"1,keyasint"`
	Version uint16   `cbor:"2,keyasint"`
	Profile string   `cbor:"3,keyasint"`
	Words   []uint32 `cbor:"4,keyasint"`
}

var _ ports.Module = (*Module)(nil)

// Module is a compiled, linked unit. Its word stream already contains the
// code of every transitive import, so a deserialized precompiled module is
// self-contained.
type Module struct {
	name    string
	profile string
	words   []uint32
}

// Name returns the module's declared name (its source path).
func (m *Module) Name() string { return m.name }

// Words returns the linked instruction words. Exposed for tests.
func (m *Module) Words() []uint32 { return m.words }

// TargetCode emits the module's bytecode for the target at the given index:
// a little-endian word stream of magic, format version, word count, and the
// linked instruction words. Only target 0 exists.
func (m *Module) TargetCode(target int) ([]byte, error) {
	if target != 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownTarget, "target index out of range"), "target", target)
	}

	out := make([]byte, 0, (len(m.words)+3)*4)
	out = binary.LittleEndian.AppendUint32(out, targetMagic)
	out = binary.LittleEndian.AppendUint32(out, uint32(imageVersion))
	out = binary.LittleEndian.AppendUint32(out, uint32(len(m.words)))
	for _, w := range m.words {
		out = binary.LittleEndian.AppendUint32(out, w)
	}
	return out, nil
}

// Serialize encodes the linked module as canonical CBOR so another session
// can load it without recompiling.
func (m *Module) Serialize() ([]byte, error) {
	data, err := cborEncMode.Marshal(&moduleImage{
		Name:    m.name,
		Version: imageVersion,
		Profile: m.profile,
		Words:   m.words,
	})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "module serialization failed"), "module", m.name)
	}
	return data, nil
}

// Deserialize decodes a serialized module image.
func Deserialize(data []byte) (*Module, error) {
	var img moduleImage
	if err := cbor.Unmarshal(data, &img); err != nil {
		return nil, zerr.Wrap(err, "failed to decode module image")
	}
	if img.Version != imageVersion {
		return nil, zerr.With(zerr.Wrap(domain.ErrDeserializationFailed, "unsupported image version"), "version", img.Version)
	}
	return &Module{name: img.Name, profile: img.Profile, words: img.Words}, nil
}
