package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriorityRank(t *testing.T) {
	assert.Equal(t, 0, StatusPendiente.PriorityRank())
	assert.Equal(t, 1, StatusEnviado.PriorityRank())
	assert.Equal(t, 2, StatusEntregado.PriorityRank())
	assert.Equal(t, 3, StatusRechazado.PriorityRank())
	assert.Equal(t, 99, OrderStatus("en camino").PriorityRank())
	// Los estados llegan con casing arbitrario desde el backend.
	assert.Equal(t, 0, OrderStatus("Pendiente").PriorityRank())
}

func TestCanTransitionTo(t *testing.T) {
	assert.True(t, StatusPendiente.CanTransitionTo(StatusEnviado))
	assert.True(t, StatusPendiente.CanTransitionTo(StatusRechazado))
	assert.True(t, StatusEnviado.CanTransitionTo(StatusEntregado))

	// Solo transiciones hacia adelante.
	assert.False(t, StatusPendiente.CanTransitionTo(StatusEntregado))
	assert.False(t, StatusEnviado.CanTransitionTo(StatusPendiente))
	assert.False(t, StatusEntregado.CanTransitionTo(StatusEnviado))
	assert.False(t, StatusRechazado.CanTransitionTo(StatusEnviado))
	assert.False(t, OrderStatus("en camino").CanTransitionTo(StatusEnviado))
}
