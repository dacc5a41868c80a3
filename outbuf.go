package jsnpg

import (
	"bytes"
	"sync"
)

// outbuf is the growable output byte buffer used by the generator.
// bytes.Buffer already provides geometric growth and a
// reserve-then-write pattern (Grow + the slice returned by AvailableBuffer
// in recent Go, or simply Write/WriteByte); we keep a thin wrapper so the
// numeric formatters (numeric.go) and the escape scanner (emitter.go)
// have one place to append to.
type outbuf struct {
	bytes.Buffer
}

var (
	bufferPoolOnce sync.Once
	bufferPool     *sync.Pool
)

// SetBufferPool installs a process-wide pool for the byte slices backing
// output buffers and the string/key records of a DOM. It may be called at most once, before
// the first Parse/NewGenerator/NewDOM call that would otherwise
// allocate; later calls are no-ops. Embedders that churn through many
// short-lived parses/generators can use this to recycle the underlying
// memory instead of letting the garbage collector reclaim it each time.
func SetBufferPool(pool *sync.Pool) {
	bufferPoolOnce.Do(func() {
		bufferPool = pool
	})
}

func newOutbuf() *outbuf {
	b := &outbuf{}
	if bufferPool != nil {
		if v, ok := bufferPool.Get().([]byte); ok {
			b.Buffer = *bytes.NewBuffer(v[:0])
			return b
		}
	}
	b.Grow(4096)
	return b
}
