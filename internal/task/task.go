package task

import (
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
)

const defaultPoolSize = 1024

var defaultPool = sync.OnceValue(func() *ants.Pool {
	p, err := ants.NewPool(defaultPoolSize, ants.WithNonblocking(true))
	if err != nil {
		panic(fmt.Sprintf("init goroutine pool: %v", err))
	}
	return p
})

// Default returns the process-wide pool used when a binding has none configured.
func Default() *ants.Pool {
	return defaultPool()
}

// Execute runs f on p, or on the default pool when p is nil.
func Execute(p *ants.Pool, f func()) error {
	if p == nil {
		p = Default()
	}
	if err := p.Submit(f); err != nil {
		return fmt.Errorf("submit task: %w", err)
	}
	return nil
}
