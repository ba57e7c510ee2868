package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCloser struct {
	closed bool
}

func (f *fakeCloser) Close() error {
	f.closed = true
	return nil
}

func TestShutdownRunsHooksInReverseOrder(t *testing.T) {
	m := New(time.Second, nil)

	var order []string
	for _, name := range []string{"store", "server"} {
		name := name
		m.Register(name, func(context.Context) error {
			order = append(order, name)
			return nil
		})
	}

	require.NoError(t, m.Shutdown(context.Background()))
	assert.Equal(t, []string{"server", "store"}, order)
}

func TestShutdownCollectsErrorsAndKeepsGoing(t *testing.T) {
	m := New(time.Second, nil)
	boom := errors.New("close failed")

	var ran bool
	m.Register("first", func(context.Context) error { ran = true; return nil })
	m.Register("broken", func(context.Context) error { return boom })

	err := m.Shutdown(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.True(t, ran)
}

func TestShutdownRunsOnce(t *testing.T) {
	m := New(time.Second, nil)

	calls := 0
	m.Register("counted", func(context.Context) error { calls++; return nil })

	require.NoError(t, m.Shutdown(context.Background()))
	require.NoError(t, m.Shutdown(context.Background()))
	assert.Equal(t, 1, calls)
}

func TestRegisterCloser(t *testing.T) {
	m := New(time.Second, nil)

	c := &fakeCloser{}
	m.RegisterCloser("store", c)

	require.NoError(t, m.Shutdown(context.Background()))
	assert.True(t, c.closed)
}

func TestRegisterIgnoresNilHooks(t *testing.T) {
	m := New(time.Second, nil)
	m.Register("nil", nil)
	m.RegisterCloser("nil", nil)

	require.NoError(t, m.Shutdown(context.Background()))
}
