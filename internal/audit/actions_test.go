package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionCatalog(t *testing.T) {
	assert.True(t, IsKnownAction(ActionBookingRejected))
	assert.True(t, IsKnownAction(ActionLedgerEntryDeleted))
	assert.False(t, IsKnownAction("client_created"))

	assert.Equal(t, []string{"agenda", "crm", "finance", "rejections", "settings"}, Groups())

	rejections, ok := GroupActions("rejections")
	require.True(t, ok)
	assert.Equal(t, []string{ActionBookingRejected, ActionIllegalTransition}, rejections)

	// cópia: mexer no retorno não altera o catálogo
	rejections[0] = "x"
	again, _ := GroupActions("rejections")
	assert.Equal(t, ActionBookingRejected, again[0])

	_, ok = GroupActions("billing")
	assert.False(t, ok)
}
