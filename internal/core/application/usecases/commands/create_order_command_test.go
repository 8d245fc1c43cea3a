package commands_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courierdesk/internal/core/application/usecases/commands"
	"courierdesk/internal/core/domain/model/kernel"
	"courierdesk/internal/pkg/errs"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	id, customerID := kernel.NewUUID(), kernel.NewUUID()
	weight := decimal.RequireFromString("2.5")

	cmd, err := commands.NewCreateOrderCommand(id, " EC-1001 ", &customerID, kernel.FacilitySiteA, &weight, nil, "op")

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, id, cmd.OrderID())
	assert.Equal(t, "EC-1001", cmd.Guide())
	assert.Equal(t, customerID, *cmd.CustomerID())
	assert.Equal(t, kernel.FacilitySiteA, cmd.Facility())
	assert.True(t, cmd.WeightLbs().Equal(weight))
	assert.Nil(t, cmd.ManualTotal())
	assert.Equal(t, "op", cmd.Actor())
}

func TestNewCreateOrderCommand_InvalidInput(t *testing.T) {
	negative := decimal.NewFromInt(-1)

	_, err := commands.NewCreateOrderCommand(kernel.UUID{}, "", nil, kernel.FacilityUnknown, &negative, &negative, "")

	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	assert.ErrorIs(t, err, commands.ErrActorIsRequired)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "guide")
	assert.Contains(t, err.Error(), "facility")
	assert.Contains(t, err.Error(), "manual total")
}

func TestCreateOrderCommand_ZeroValue(t *testing.T) {
	assert.ErrorIs(t, commands.CreateOrderCommand{}.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
}
