package modsys

import (
	"context"
	"testing"

	"github.com/specialistvlad/extmod/internal/ctxlog"
	"github.com/specialistvlad/extmod/internal/scriptctx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlots_SetGetReset(t *testing.T) {
	ms, _ := newTestSystem(t)
	sc := ms.Context()
	l := &recordingLoader{}
	ms.RegisterExtensionModule("a", l, nil)
	slots := NewSlots()

	_, ok := slots.Get(sc)
	assert.False(t, ok)

	require.NoError(t, slots.Set(sc, ms))
	got, ok := slots.Get(sc)
	require.True(t, ok)
	assert.Same(t, ms, got)
	assert.Equal(t, 1, slots.Len())

	require.NoError(t, slots.Reset(sc))
	_, ok = slots.Get(sc)
	assert.False(t, ok)
	assert.True(t, l.released, "Reset destroys the module system")
	assert.Nil(t, ms.Context())

	require.NoError(t, slots.Reset(sc), "resetting an empty slot is a no-op")
}

func TestSlots_OneSystemPerContext(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())
	sc := scriptctx.New(ctx)
	slots := NewSlots()

	require.NoError(t, slots.Set(sc, New(ctx, sc)))
	err := slots.Set(sc, New(ctx, sc))
	assert.ErrorIs(t, err, ErrSlotOccupied)
}

func TestSlots_RejectsForeignSystem(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())
	a := scriptctx.New(ctx)
	b := scriptctx.New(ctx)
	slots := NewSlots()

	err := slots.Set(a, New(ctx, b))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not bound to script context")

	assert.Error(t, slots.Set(a, nil))
}
