package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacobarthurs/dremprof/internal/metrics"
)

func operatorOfType(code int32) metrics.OperatorMetric {
	return metrics.OperatorMetric{
		OperatorType: code,
		OperatorName: metrics.OperatorTypeName(code),
	}
}

func TestHighWait_Fires(t *testing.T) {
	op := operatorOfType(53)
	op.OperatorID = 1
	op.ProcessNanos = 10
	op.WaitNanos = 2_000_000
	op.TotalNanos = 2_000_010

	anomalies := checkHighWait(&op, DefaultThresholds())
	require.Len(t, anomalies, 1)

	a := anomalies[0]
	assert.Equal(t, HighWait, a.Kind)
	assert.Equal(t, float64(2_000_000), a.Value)
	require.NotNil(t, a.Operator)
	assert.Equal(t, int32(1), a.Operator.OperatorID)
	assert.Contains(t, a.Message, "2.00ms")
	assert.Contains(t, a.Message, "100.0% of total")
}

func TestHighWait_RequiresBothConditions(t *testing.T) {
	th := DefaultThresholds()

	// Wait above the floor but below process time.
	op := operatorOfType(53)
	op.ProcessNanos = 5_000_000
	op.WaitNanos = 2_000_000
	op.TotalNanos = 7_000_000
	assert.Empty(t, checkHighWait(&op, th))

	// Wait above process but at the floor exactly.
	op = operatorOfType(53)
	op.ProcessNanos = 10
	op.WaitNanos = 1_000_000
	op.TotalNanos = 1_000_010
	assert.Empty(t, checkHighWait(&op, th))
}

func TestHighMemory(t *testing.T) {
	th := DefaultThresholds()

	op := operatorOfType(3)
	op.PeakMemory = 2_000_000
	anomalies := checkHighMemory(&op, th)
	require.Len(t, anomalies, 1)
	assert.Equal(t, HighMemory, anomalies[0].Kind)
	assert.Contains(t, anomalies[0].Message, "1.91MB")

	// Exactly at the threshold does not fire.
	op.PeakMemory = 1_000_000
	assert.Empty(t, checkHighMemory(&op, th))
}

func TestHighVolume(t *testing.T) {
	th := DefaultThresholds()

	op := operatorOfType(2)
	op.InputRecords = 5_000_000
	op.ProcessNanos = 1_000_000_000
	anomalies := checkHighVolume(&op, th)
	require.Len(t, anomalies, 1)
	assert.Equal(t, HighVolume, anomalies[0].Kind)
	assert.Contains(t, anomalies[0].Message, "5.0M records")
	assert.Contains(t, anomalies[0].Message, "5000000 rec/sec")

	op.InputRecords = 1_000_000
	assert.Empty(t, checkHighVolume(&op, th))
}

func TestLowSelectivity(t *testing.T) {
	th := DefaultThresholds()

	op := operatorOfType(2)
	op.InputRecords = 5_000_000
	op.OutputRecords = 10
	anomalies := checkLowSelectivity(&op, th)
	require.Len(t, anomalies, 1)

	a := anomalies[0]
	assert.Equal(t, LowSelectivity, a.Kind)
	assert.InDelta(t, 0.000002, a.Value, 1e-12)
	assert.Contains(t, a.Message, "5.0M -> 10 records")
}

func TestLowSelectivity_Guards(t *testing.T) {
	th := DefaultThresholds()

	// Too little input to judge.
	op := operatorOfType(2)
	op.InputRecords = 1_000
	op.OutputRecords = 1
	assert.Empty(t, checkLowSelectivity(&op, th))

	// Zero output is not low selectivity, it is no output.
	op = operatorOfType(2)
	op.InputRecords = 5_000_000
	assert.Empty(t, checkLowSelectivity(&op, th))

	// Healthy selectivity.
	op = operatorOfType(2)
	op.InputRecords = 100_000
	op.OutputRecords = 50_000
	assert.Empty(t, checkLowSelectivity(&op, th))
}

func TestExpensiveJoin(t *testing.T) {
	th := DefaultThresholds()

	for _, code := range []int32{4, 5, 35} { // HashJoin, MergeJoin, NestedLoopJoin
		op := operatorOfType(code)
		op.TotalNanos = 1_500_000_000
		anomalies := checkExpensiveJoin(&op, th)
		require.Len(t, anomalies, 1, "code %d", code)
		assert.Equal(t, ExpensiveJoin, anomalies[0].Kind)
		assert.Contains(t, anomalies[0].Message, "1.50s")
	}

	// Slow but not a join.
	op := operatorOfType(3)
	op.TotalNanos = 5_000_000_000
	assert.Empty(t, checkExpensiveJoin(&op, th))

	// A join but fast enough.
	op = operatorOfType(4)
	op.TotalNanos = 1_000_000_000
	assert.Empty(t, checkExpensiveJoin(&op, th))
}

func TestExpensiveSort(t *testing.T) {
	th := DefaultThresholds()

	for _, code := range []int32{16, 17, 20} { // TopNSort, ExternalSort, OldSort
		op := operatorOfType(code)
		op.PeakMemory = 64_000_000
		anomalies := checkExpensiveSort(&op, th)
		require.Len(t, anomalies, 1, "code %d", code)
		assert.Equal(t, ExpensiveSort, anomalies[0].Kind)
		assert.Contains(t, anomalies[0].Message, "61.04MB")
	}

	// Memory-heavy but not a sort.
	op := operatorOfType(4)
	op.PeakMemory = 64_000_000
	assert.Empty(t, checkExpensiveSort(&op, th))
}

func TestClassify_MultipleRulesSameOperator(t *testing.T) {
	op := operatorOfType(53)
	op.OperatorID = 1
	op.ProcessNanos = 10
	op.WaitNanos = 2_000_000
	op.TotalNanos = 2_000_020
	op.InputRecords = 5_000_000
	op.OutputRecords = 10

	anomalies := Classify([]metrics.OperatorMetric{op}, DefaultThresholds())

	kinds := make(map[AnomalyKind]int)
	for _, a := range anomalies {
		kinds[a.Kind]++
	}
	assert.Equal(t, 1, kinds[HighWait])
	assert.Equal(t, 1, kinds[HighVolume])
	assert.Equal(t, 1, kinds[LowSelectivity])
	assert.Len(t, anomalies, 3)
}

func TestClassify_Empty(t *testing.T) {
	assert.Empty(t, Classify(nil, DefaultThresholds()))
	assert.Empty(t, Classify([]metrics.OperatorMetric{operatorOfType(10)}, DefaultThresholds()))
}

func TestClassify_CustomThresholds(t *testing.T) {
	th := DefaultThresholds()
	th.HighMemoryBytes = 100

	op := operatorOfType(10)
	op.PeakMemory = 500

	anomalies := Classify([]metrics.OperatorMetric{op}, th)
	require.Len(t, anomalies, 1)
	assert.Equal(t, HighMemory, anomalies[0].Kind)
}
