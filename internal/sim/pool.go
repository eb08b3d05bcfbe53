package sim

import "sync"

// BufferPool recycles fixed-size sample buffers between frames.
type BufferPool struct {
	pool sync.Pool
	size int
}

func NewBufferPool(size int) *BufferPool {
	return &BufferPool{
		size: size,
		pool: sync.Pool{
			New: func() interface{} {
				return make([]float64, size)
			},
		},
	}
}

func (p *BufferPool) Get() []float64 {
	return p.pool.Get().([]float64)
}

func (p *BufferPool) Put(buf []float64) {
	if len(buf) == p.size {
		for i := range buf {
			buf[i] = 0
		}
		p.pool.Put(buf)
	}
}

func (p *BufferPool) Size() int { return p.size }
