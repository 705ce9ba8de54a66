package imageproc

import (
	"bytes"
	"sync"
)

// buffers holds PNG encode buffers between conversions. Asset.Release
// returns them.
var buffers = sync.Pool{
	New: func() interface{} {
		return new(bytes.Buffer)
	},
}

func getBuffer() *bytes.Buffer {
	buf := buffers.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf == nil {
		return
	}
	buffers.Put(buf)
}
