package handler

import (
	"bytes"
	"sync"
)

const (
	// initialBufferSize fits a single activity result without growing
	initialBufferSize = 2048

	// maxPooledBufferSize keeps large batch responses from pinning memory
	maxPooledBufferSize = 256 << 10
)

var bufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, initialBufferSize))
	},
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledBufferSize {
		return
	}
	buf.Reset()
	bufferPool.Put(buf)
}
