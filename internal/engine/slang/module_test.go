package slang

import (
	"encoding/binary"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/shadertime/internal/core/domain"
)

func TestModule_TargetCodeLayout(t *testing.T) {
	m := &Module{name: "m", profile: "spirv_1_6", words: []uint32{0x10, 0xdead, 0x11}}

	code, err := m.TargetCode(0)
	require.NoError(t, err)
	require.Len(t, code, (3+3)*4)

	assert.Equal(t, targetMagic, binary.LittleEndian.Uint32(code[0:]))
	assert.Equal(t, uint32(imageVersion), binary.LittleEndian.Uint32(code[4:]))
	assert.Equal(t, uint32(3), binary.LittleEndian.Uint32(code[8:]))
	assert.Equal(t, uint32(0xdead), binary.LittleEndian.Uint32(code[16:]))
}

func TestModule_TargetCode_UnknownTarget(t *testing.T) {
	m := &Module{name: "m", profile: "spirv_1_6"}

	_, err := m.TargetCode(1)
	assert.ErrorIs(t, err, domain.ErrUnknownTarget)
}

func TestModule_SerializeRoundTrip(t *testing.T) {
	m := &Module{name: "shader.slang", profile: "spirv_1_5", words: []uint32{1, 2, 3}}

	data, err := m.Serialize()
	require.NoError(t, err)

	got, err := Deserialize(data)
	require.NoError(t, err)
	assert.Equal(t, m.name, got.name)
	assert.Equal(t, m.profile, got.profile)
	assert.Equal(t, m.words, got.words)
}

func TestModule_SerializeDeterministic(t *testing.T) {
	a := &Module{name: "m", profile: "spirv_1_6", words: []uint32{7, 8}}
	b := &Module{name: "m", profile: "spirv_1_6", words: []uint32{7, 8}}

	da, err := a.Serialize()
	require.NoError(t, err)
	db, err := b.Serialize()
	require.NoError(t, err)
	assert.Equal(t, da, db)
}

func TestDeserialize_Garbage(t *testing.T) {
	_, err := Deserialize([]byte("not cbor"))
	assert.Error(t, err)
}

func TestDeserialize_VersionMismatch(t *testing.T) {
	data, err := cbor.Marshal(map[int]any{
		1: "m",
		2: uint16(99),
		3: "spirv_1_6",
		4: []uint32{},
	})
	require.NoError(t, err)

	_, err = Deserialize(data)
	assert.ErrorIs(t, err, domain.ErrDeserializationFailed)
}
