package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfgkit/shopsched/pkg/domain/entities"
)

func mustStep(t *testing.T, id entities.StepID, part entities.PartID, inputs ...entities.PartID) *entities.RoutingStep {
	t.Helper()
	stepInputs := make([]entities.StepInput, 0, len(inputs))
	for _, in := range inputs {
		stepInputs = append(stepInputs, entities.StepInput{PartID: in, Qty: decimal.NewFromInt(1)})
	}
	step, err := entities.NewRoutingStep(id, part, decimal.NewFromInt(1), stepInputs,
		"WC1", decimal.NewFromInt(1), 10)
	require.NoError(t, err)
	return step
}

func TestInfer_EmptyStepSet(t *testing.T) {
	inf := NewRawMaterialInferencer()
	assert.Empty(t, inf.Infer(nil))
}

func TestInfer_ConsumedNeverProduced(t *testing.T) {
	inf := NewRawMaterialInferencer()
	steps := []*entities.RoutingStep{
		mustStep(t, "OP-10", "FRAME", "TUBE", "PAINT"),
		mustStep(t, "OP-20", "BIKE", "FRAME", "WHEEL"),
	}

	raw := inf.Infer(steps)

	// Raw iff consumed by >= 1 step and produced by 0 steps.
	assert.True(t, raw["TUBE"])
	assert.True(t, raw["PAINT"])
	assert.True(t, raw["WHEEL"])
	assert.False(t, raw["FRAME"], "intermediate is consumed and produced")
	assert.False(t, raw["BIKE"], "finished good is produced only")
}

func TestInfer_AddingProducerRemovesRaw(t *testing.T) {
	inf := NewRawMaterialInferencer()
	steps := []*entities.RoutingStep{
		mustStep(t, "OP-10", "FRAME", "TUBE"),
	}
	require.True(t, inf.Infer(steps)["TUBE"])

	steps = append(steps, mustStep(t, "OP-05", "TUBE", "STEEL"))
	raw := inf.Infer(steps)
	assert.False(t, raw["TUBE"], "part with a producing step is no longer raw")
	assert.True(t, raw["STEEL"])
}

func TestCrossCheck(t *testing.T) {
	inf := NewRawMaterialInferencer()
	steps := []*entities.RoutingStep{
		mustStep(t, "OP-10", "FRAME", "TUBE", "PAINT"),
	}
	inferred := inf.Infer(steps)

	declared := []*entities.RawMaterialDecl{
		{PartID: "TUBE"},
		{PartID: "FRAME"}, // produced, should not be declared raw
	}

	warnings := inf.CrossCheck(declared, inferred)
	require.Len(t, warnings, 2)

	codes := map[entities.WarningCode]string{}
	for _, w := range warnings {
		codes[w.Code] = w.Entity
	}
	assert.Equal(t, "FRAME", codes[entities.WarnDeclaredNotRaw])
	assert.Equal(t, "PAINT", codes[entities.WarnInferredNotDeclared])
}

func TestCrossCheck_EmptyDeclaredListIsSilent(t *testing.T) {
	inf := NewRawMaterialInferencer()
	steps := []*entities.RoutingStep{
		mustStep(t, "OP-10", "FRAME", "TUBE"),
	}
	assert.Empty(t, inf.CrossCheck(nil, inf.Infer(steps)))
}
