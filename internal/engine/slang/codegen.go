package slang

import "github.com/cespare/xxhash/v2"

// Instruction words. The generator emits one OpToken per source token in a
// word-oriented stream; the optimizer collapses adjacent duplicates.
const (
	opModuleBegin uint32 = 0x10
	opModuleEnd   uint32 = 0x11
	opToken       uint32 = 0x20
)

// hashToken folds a token's 64-bit xxhash into an instruction operand word.
func hashToken(tok string) uint32 {
	h := xxhash.Sum64String(tok)
	return uint32(h>>32) ^ uint32(h)
}

// generate lowers a parsed unit into instruction words, prefixed by the
// already-linked words of its imports in declaration order. The emitted
// stream depends only on the source text and the import images, so code
// generation is deterministic.
func generate(name string, unit *sourceUnit, imports []*Module, optimization int) []uint32 {
	words := make([]uint32, 0, len(unit.tokens)*2+4)
	for _, imp := range imports {
		words = append(words, imp.words...)
	}

	words = append(words, opModuleBegin, hashToken(name))
	prev := uint32(0)
	for _, tok := range unit.tokens {
		w := hashToken(tok)
		if optimization > 0 && w == prev {
			continue
		}
		words = append(words, opToken, w)
		prev = w
	}
	words = append(words, opModuleEnd)
	return words
}
