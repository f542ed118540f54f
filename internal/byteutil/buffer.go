package byteutil

import (
	"bytes"
	"sync"
)

// maxPooledCap keeps oversized response buffers out of the pool.
const maxPooledCap = 64 << 10

var buffers = sync.Pool{
	New: func() interface{} { return new(bytes.Buffer) },
}

// GetBuffer returns an empty buffer from the pool.
func GetBuffer() *bytes.Buffer {
	return buffers.Get().(*bytes.Buffer)
}

// PutBuffer resets buf and returns it to the pool.
func PutBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledCap {
		return
	}
	buf.Reset()
	buffers.Put(buf)
}
