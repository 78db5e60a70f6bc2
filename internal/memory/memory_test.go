package memory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simpleworld/swvm/internal/memory"
)

func TestResizePreservesPrefixAndZeroFills(t *testing.T) {
	m := memory.New(4)
	require.NoError(t, m.SetWord(0, 0xDEADBEEF, false))
	m.Resize(8)
	v, err := m.GetWord(0, false)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xDEADBEEF), v)
	tail, err := m.GetWord(4, false)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), tail)
}

func TestBoundsChecking(t *testing.T) {
	m := memory.New(4)
	_, err := m.GetWord(1, false)
	require.Error(t, err)
	var fault *memory.Fault
	require.ErrorAs(t, err, &fault)

	_, err = m.GetQuarterWord(3, false)
	require.NoError(t, err)
	_, err = m.GetQuarterWord(4, false)
	require.Error(t, err)
}

func TestWordRoundTripBothEndianModes(t *testing.T) {
	m := memory.New(8)
	require.NoError(t, m.SetWord(0, 0x01020304, true))
	got, err := m.GetWord(0, true)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x01020304), got)

	require.NoError(t, m.SetWord(4, 0x01020304, false))
	got, err = m.GetWord(4, false)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x01020304), got)

	// canonical on-disk form is always big-endian regardless of systemEndian
	b := m.Bytes()
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, b[4:8])
}

func TestHalfAndQuarterWordAccess(t *testing.T) {
	m := memory.New(4)
	require.NoError(t, m.SetHalfWord(0, 0xBEEF, false))
	h, err := m.GetHalfWord(0, false)
	require.NoError(t, err)
	assert.Equal(t, uint16(0xBEEF), h)

	require.NoError(t, m.SetQuarterWord(2, 0x7A, false))
	q, err := m.GetQuarterWord(2, false)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x7A), q)
}

func TestCloneIsDeepCopy(t *testing.T) {
	m := memory.New(4)
	require.NoError(t, m.SetWord(0, 1, false))
	cp := m.Clone()
	require.NoError(t, cp.SetWord(0, 2, false))
	v, _ := m.GetWord(0, false)
	assert.Equal(t, uint32(1), v)
}
