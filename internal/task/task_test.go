package task

import (
	"sync"
	"testing"

	"github.com/panjf2000/ants/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute_DefaultPool(t *testing.T) {
	t.Parallel()

	var wg sync.WaitGroup
	wg.Add(1)

	ran := false
	require.NoError(t, Execute(nil, func() {
		defer wg.Done()
		ran = true
	}))

	wg.Wait()
	assert.True(t, ran)
	assert.Same(t, Default(), Default())
}

func TestExecute_ReleasedPool(t *testing.T) {
	t.Parallel()

	p, err := ants.NewPool(1)
	require.NoError(t, err)
	p.Release()

	err = Execute(p, func() {})
	require.ErrorIs(t, err, ants.ErrPoolClosed)
}
