package inst_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/simpleworld/swvm/internal/inst"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for first := byte(0); first < 16; first++ {
		for second := byte(0); second < 16; second++ {
			i := inst.Instruction{Opcode: 0x60, First: first, Second: second, Data: 0xBEEF}
			w := inst.Encode(i)
			got := inst.Decode(w)
			assert.Equal(t, i.Opcode, got.Opcode)
			assert.Equal(t, i.First, got.First)
			assert.Equal(t, i.Second, got.Second)
			assert.Equal(t, i.Data, got.Data)
		}
	}
}

func TestDecodeWordRoundTrip(t *testing.T) {
	for _, w := range []uint32{0, 0x11223344, 0xFFFFFFFF, 0x2C0A1010} {
		i := inst.Decode(w)
		assert.Equal(t, w, inst.Encode(i))
	}
}

func TestThirdRegisterEncoding(t *testing.T) {
	i := inst.Instruction{Opcode: 0x60, First: 1, Second: 2, Third: 3}
	w := inst.EncodeWithThirdReg(i)
	got := inst.Decode(w)
	assert.Equal(t, byte(3), got.Third)
}

func TestOffsetIsSigned(t *testing.T) {
	i := inst.Instruction{Data: 0xFFFF}
	assert.Equal(t, int16(-1), i.Offset())
	assert.Equal(t, uint16(0xFFFF), i.Address())
}
