// pkg/pool/health.go
package pool

import (
	"context"
	"fmt"
)

// PanicCheck fails once any job has panicked. It satisfies
// invariant.Check.
type PanicCheck struct {
	pool *Pool
}

// NewPanicCheck creates a check over p.
func NewPanicCheck(p *Pool) *PanicCheck {
	return &PanicCheck{pool: p}
}

// Name returns the name of this check.
func (c *PanicCheck) Name() string {
	return "pool"
}

// Check reports panicked jobs.
func (c *PanicCheck) Check(ctx context.Context) error {
	if n := c.pool.Stats().Panicked; n > 0 {
		return fmt.Errorf("%d jobs panicked", n)
	}
	return nil
}
