package orderstatus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextAndColor(t *testing.T) {
	cases := []struct {
		status Status
		text   string
		color  string
	}{
		{Pending, "Pendiente", "warning"},
		{Confirmed, "Confirmado", "info"},
		{Processing, "Procesando", "primary"},
		{Shipped, "Enviado", "success"},
		{Delivered, "Entregado", "success"},
		{Cancelled, "Cancelado", "danger"},
		{Status("lost"), "lost", "secondary"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.text, Text(tc.status), "text for %s", tc.status)
		assert.Equal(t, tc.color, Color(tc.status), "color for %s", tc.status)
	}
}

func TestParse(t *testing.T) {
	s, err := Parse("  Shipped ")
	require.NoError(t, err)
	assert.Equal(t, Shipped, s)

	_, err = Parse("returned")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestProgressIndex(t *testing.T) {
	for want, s := range []Status{Pending, Confirmed, Processing, Shipped, Delivered} {
		got, ok := ProgressIndex(s)
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
	_, ok := ProgressIndex(Cancelled)
	assert.False(t, ok)
}

func TestProgress_CancelledIsDistinct(t *testing.T) {
	p := Progress(Cancelled)
	assert.Equal(t, KindCancelled, p.Kind)
	assert.Nil(t, p.Steps())

	assert.Equal(t, KindUnknown, Progress("weird").Kind)
}

func TestProgress_StepsMarkCompletedAndActive(t *testing.T) {
	steps := Progress(Processing).Steps()
	require.Len(t, steps, 5)
	assert.True(t, steps[0].Completed)
	assert.True(t, steps[2].Completed)
	assert.True(t, steps[2].Active)
	assert.False(t, steps[1].Active)
	assert.False(t, steps[3].Completed)
	assert.Equal(t, "Pedido Recibido", steps[0].Label)
}

func TestIsOpen(t *testing.T) {
	assert.True(t, IsOpen(Shipped))
	assert.False(t, IsOpen(Delivered))
	assert.False(t, IsOpen(Cancelled))
}

func TestAllReturnsCopy(t *testing.T) {
	got := All()
	require.Len(t, got, 6)
	assert.Equal(t, Pending, got[0])
	assert.Equal(t, Cancelled, got[5])

	got[0] = Cancelled
	assert.Equal(t, Pending, All()[0])
}
