package planning

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfgkit/shopsched/pkg/domain/entities"
)

func TestCapacityLedger_ReserveAndRemaining(t *testing.T) {
	ledger := NewCapacityLedger([]*entities.WorkCenter{workCenter(t, "WELD", "8")})

	offset, err := ledger.Reserve("WELD", 0, dec("3"))
	require.NoError(t, err)
	assert.True(t, offset.IsZero(), "first reservation starts the bucket")

	offset, err = ledger.Reserve("WELD", 0, dec("2"))
	require.NoError(t, err)
	assert.True(t, offset.Equal(dec("3")), "second reservation starts after the first")

	remaining, err := ledger.Remaining("WELD", 0)
	require.NoError(t, err)
	assert.True(t, remaining.Equal(dec("3")))

	remaining, err = ledger.Remaining("WELD", 7)
	require.NoError(t, err)
	assert.True(t, remaining.Equal(dec("8")), "untouched bucket is fully free")
}

func TestCapacityLedger_OverdrawIsViolation(t *testing.T) {
	ledger := NewCapacityLedger([]*entities.WorkCenter{workCenter(t, "WELD", "8")})

	_, err := ledger.Reserve("WELD", 0, dec("6"))
	require.NoError(t, err)

	_, err = ledger.Reserve("WELD", 0, dec("3"))
	require.Error(t, err)

	var violation *entities.CapacityViolationError
	require.True(t, errors.As(err, &violation))
	assert.Equal(t, entities.WorkCenterID("WELD"), violation.WorkCenterID)
	assert.Equal(t, 0, violation.Bucket)
}

func TestCapacityLedger_FirstFit(t *testing.T) {
	ledger := NewCapacityLedger([]*entities.WorkCenter{workCenter(t, "WELD", "8")})
	_, err := ledger.Reserve("WELD", 0, dec("8"))
	require.NoError(t, err)
	_, err = ledger.Reserve("WELD", 1, dec("5"))
	require.NoError(t, err)

	bucket, ok := ledger.FirstFit("WELD", 0, dec("4"), 30)
	require.True(t, ok)
	assert.Equal(t, 2, bucket, "bucket 0 is full, bucket 1 only has 3h free")

	bucket, ok = ledger.FirstFit("WELD", 0, dec("3"), 30)
	require.True(t, ok)
	assert.Equal(t, 1, bucket)

	// Respects the earliest bound from precedence.
	bucket, ok = ledger.FirstFit("WELD", 5, dec("1"), 30)
	require.True(t, ok)
	assert.Equal(t, 5, bucket)
}

func TestCapacityLedger_FirstFit_NeverFits(t *testing.T) {
	ledger := NewCapacityLedger([]*entities.WorkCenter{
		workCenter(t, "WELD", "8"),
		workCenter(t, "IDLE", "0"),
	})

	_, ok := ledger.FirstFit("WELD", 0, dec("9"), 30)
	assert.False(t, ok, "step larger than any bucket")

	_, ok = ledger.FirstFit("IDLE", 0, dec("1"), 30)
	assert.False(t, ok, "zero capacity work center")

	_, ok = ledger.FirstFit("GHOST", 0, dec("1"), 30)
	assert.False(t, ok, "unknown work center")
}

func TestCapacityLedger_Release(t *testing.T) {
	ledger := NewCapacityLedger([]*entities.WorkCenter{workCenter(t, "WELD", "8")})
	_, err := ledger.Reserve("WELD", 2, dec("5"))
	require.NoError(t, err)

	ledger.Release("WELD", 2, dec("5"))
	remaining, err := ledger.Remaining("WELD", 2)
	require.NoError(t, err)
	assert.True(t, remaining.Equal(dec("8")))
}

func TestCapacityLedger_Rows(t *testing.T) {
	ledger := NewCapacityLedger([]*entities.WorkCenter{
		workCenter(t, "WELD", "8"),
		workCenter(t, "ASSY", "4"),
	})
	_, err := ledger.Reserve("WELD", 1, dec("2"))
	require.NoError(t, err)
	_, err = ledger.Reserve("ASSY", 0, dec("4"))
	require.NoError(t, err)

	rows := ledger.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, entities.WorkCenterID("ASSY"), rows[0].WorkCenterID)
	assert.True(t, rows[0].Remaining.IsZero())
	assert.Equal(t, entities.WorkCenterID("WELD"), rows[1].WorkCenterID)
	assert.Equal(t, 1, rows[1].Bucket)
	assert.True(t, rows[1].Used.Equal(dec("2")))
}
