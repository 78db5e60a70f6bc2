package word

import "unsafe"

// isBigEndianHost is resolved once at startup by probing the host's native
// byte order. Every target platform Go actually runs on today is
// little-endian, but the codec is written against this flag rather than a
// build constant so the rest of the package never special-cases endianness
// by hand.
var isBigEndianHost = func() bool {
	var x uint16 = 1
	b := (*[2]byte)(unsafe.Pointer(&x))
	return b[0] == 0
}()
