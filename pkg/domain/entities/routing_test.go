package entities

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoutingStep_Valid(t *testing.T) {
	step, err := NewRoutingStep(
		"OP-10",
		"FRAME",
		decimal.NewFromInt(1),
		[]StepInput{{PartID: "TUBE", Qty: decimal.NewFromInt(4)}},
		"WELD",
		decimal.RequireFromString("0.5"),
		10,
	)
	require.NoError(t, err)
	assert.Equal(t, StepID("OP-10"), step.ID)
	assert.Equal(t, PartID("FRAME"), step.PartID)
	assert.Len(t, step.Inputs, 1)
	assert.True(t, step.MinBatchQty.IsZero())
}

func TestNewRoutingStep_Invalid(t *testing.T) {
	one := decimal.NewFromInt(1)
	half := decimal.RequireFromString("0.5")

	tests := []struct {
		name      string
		id        StepID
		partID    PartID
		outputQty decimal.Decimal
		inputs    []StepInput
		wc        WorkCenterID
		procTime  decimal.Decimal
	}{
		{"empty id", "", "FRAME", one, nil, "WELD", half},
		{"empty part", "OP-10", "", one, nil, "WELD", half},
		{"zero output qty", "OP-10", "FRAME", decimal.Zero, nil, "WELD", half},
		{"negative proc time", "OP-10", "FRAME", one, nil, "WELD", decimal.NewFromInt(-1)},
		{"empty work center", "OP-10", "FRAME", one, nil, "", half},
		{"self input", "OP-10", "FRAME", one,
			[]StepInput{{PartID: "FRAME", Qty: one}}, "WELD", half},
		{"zero input qty", "OP-10", "FRAME", one,
			[]StepInput{{PartID: "TUBE", Qty: decimal.Zero}}, "WELD", half},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRoutingStep(tt.id, tt.partID, tt.outputQty, tt.inputs, tt.wc, tt.procTime, 10)
			assert.Error(t, err)
		})
	}
}
