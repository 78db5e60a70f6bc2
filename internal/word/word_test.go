package word_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simpleworld/swvm/internal/word"
)

func TestGetSetByteRoundTrip(t *testing.T) {
	w := word.Word(0x11223344)
	for i := 0; i < 4; i++ {
		b, err := word.GetByte(w, i)
		require.NoError(t, err)
		w2, err := word.SetByte(w, i, b)
		require.NoError(t, err)
		assert.Equal(t, w, w2)
	}
}

func TestGetByteOrder(t *testing.T) {
	w := word.Word(0x11223344)
	b0, _ := word.GetByte(w, 0)
	b1, _ := word.GetByte(w, 1)
	b2, _ := word.GetByte(w, 2)
	b3, _ := word.GetByte(w, 3)
	assert.Equal(t, []byte{0x11, 0x22, 0x33, 0x44}, []byte{b0, b1, b2, b3})
}

func TestGetByteOutOfRange(t *testing.T) {
	_, err := word.GetByte(0, 4)
	require.Error(t, err)
	var domErr *word.DomainError
	require.ErrorAs(t, err, &domErr)
}

func TestSetByteOutOfRange(t *testing.T) {
	_, err := word.SetByte(0, -1, 0)
	require.Error(t, err)
}

func TestSwapBytes(t *testing.T) {
	assert.Equal(t, word.Word(0x44332211), word.SwapBytes(0x11223344))
}

func TestSwapBytesInvolution(t *testing.T) {
	for _, w := range []word.Word{0, 1, 0xFFFFFFFF, 0x80000001, 0xDEADBEEF} {
		assert.Equal(t, w, word.SwapBytes(word.SwapBytes(w)))
	}
}

func TestSwapHalfwords(t *testing.T) {
	assert.Equal(t, word.Word(0x22114433), word.SwapHalfwords(0x11223344))
}

func TestSwapHalfwordsInvolution(t *testing.T) {
	for _, w := range []word.Word{0, 0x12345678, 0xFFFF0000} {
		assert.Equal(t, w, word.SwapHalfwords(word.SwapHalfwords(w)))
	}
}
