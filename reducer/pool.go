package reducer

import "sync"

// Signature scratch capacity (typical AP214 record is well under 256 bytes).
const sigBufCap = 256

var sigBufPool = sync.Pool{
	New: func() any {
		b := make([]byte, 0, sigBufCap)
		return &b
	},
}

func getSigBuf() *[]byte {
	b := sigBufPool.Get().(*[]byte)
	*b = (*b)[:0]
	return b
}

func putSigBuf(b *[]byte) {
	if b == nil || cap(*b) > 1<<16 {
		return
	}
	sigBufPool.Put(b)
}
