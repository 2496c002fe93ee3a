package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacobarthurs/dremprof/internal/profile"
)

// The two-operator document exercised throughout: operator 1 dominates
// on wait time and triggers three bottleneck rules.
func sampleDocument() profile.Document {
	return profile.Document{
		ID:            profile.QueryID{Part1: "1a2b3c"},
		User:          "etl_service",
		Start:         1000,
		End:           5000,
		PlanningStart: 1000,
		PlanningEnd:   1500,
		Fragments: []profile.Fragment{{
			MajorFragmentID: 0,
			MinorFragments: []profile.MinorFragment{{
				MinorFragmentID: 0,
				Operators: []profile.OperatorProfile{
					{
						OperatorID:   0,
						OperatorType: 3,
						SetupNanos:   100,
						ProcessNanos: 900,
						WaitNanos:    50,
					},
					{
						OperatorID:   1,
						OperatorType: 53,
						SetupNanos:   10,
						ProcessNanos: 10,
						WaitNanos:    2_000_000,
						InputProfile: []profile.StreamProfile{
							{Records: 5_000_000, Size: 10_000_000},
						},
						OutputRecords: 10,
					},
				},
			}},
		}},
		PlanPhases: []profile.Phase{
			{PhaseName: "Parser", DurationMillis: 50},
			{PhaseName: "Planning", DurationMillis: 200},
		},
	}
}

func TestAnalyze_Ranking(t *testing.T) {
	report := Analyze(sampleDocument(), DefaultThresholds())

	require.Len(t, report.Operators, 2)
	assert.Equal(t, int32(1), report.Operators[0].OperatorID)
	assert.Equal(t, int64(2_000_020), report.Operators[0].TotalNanos)
	assert.Equal(t, int32(0), report.Operators[1].OperatorID)
	assert.Equal(t, int64(1_050), report.Operators[1].TotalNanos)

	require.Len(t, report.Phases, 2)
	assert.Equal(t, "Planning", report.Phases[0].PhaseName)
	assert.Equal(t, "Parser", report.Phases[1].PhaseName)
}

func TestAnalyze_Anomalies(t *testing.T) {
	report := Analyze(sampleDocument(), DefaultThresholds())

	kinds := make(map[AnomalyKind]int)
	for _, a := range report.Anomalies {
		kinds[a.Kind]++
		require.NotNil(t, a.Operator)
		assert.Equal(t, int32(1), a.Operator.OperatorID)
	}

	assert.Equal(t, 1, kinds[HighWait])
	assert.Equal(t, 1, kinds[HighVolume])
	assert.Equal(t, 1, kinds[LowSelectivity])
	assert.Len(t, report.Anomalies, 3)
}

func TestAnalyze_Summary(t *testing.T) {
	report := Analyze(sampleDocument(), DefaultThresholds())
	s := report.Summary

	assert.Equal(t, int64(4000), s.QueryMillis)
	assert.Equal(t, int64(500), s.PlanningMillis)

	assert.Equal(t, 2, s.OperatorCount)
	assert.Equal(t, int64(2_001_070), s.TotalOperatorTime)
	assert.Equal(t, int64(2_000_020), s.MaxOperatorTime)
	assert.Equal(t, int64(1_000_535), s.AvgOperatorTime)

	assert.Equal(t, 2, s.PhaseCount)
	assert.Equal(t, int64(250), s.TotalPhaseTime)
	assert.Equal(t, int64(200), s.MaxPhaseTime)

	assert.Equal(t, int64(5_000_000), s.TotalInputRecords)
	assert.Equal(t, int64(10_000_000), s.TotalInputBytes)
	assert.Greater(t, s.OverallThroughput, 0.0)
}

func TestAnalyze_Longest(t *testing.T) {
	report := Analyze(sampleDocument(), DefaultThresholds())

	require.NotNil(t, report.LongestOperator)
	assert.Equal(t, int32(1), report.LongestOperator.OperatorID)
	require.NotNil(t, report.LongestPhase)
	assert.Equal(t, "Planning", report.LongestPhase.PhaseName)
}

func TestAnalyze_EmptyDocument(t *testing.T) {
	report := Analyze(profile.Document{}, DefaultThresholds())

	assert.Empty(t, report.Operators)
	assert.Empty(t, report.Phases)
	assert.Empty(t, report.Anomalies)
	assert.Nil(t, report.LongestOperator)
	assert.Nil(t, report.LongestPhase)

	s := report.Summary
	assert.Zero(t, s.OperatorCount)
	assert.Zero(t, s.TotalOperatorTime)
	assert.Zero(t, s.MaxOperatorTime)
	assert.Zero(t, s.AvgOperatorTime)
	assert.Zero(t, s.OverallThroughput)
}

func TestAnalyze_StableTies(t *testing.T) {
	doc := profile.Document{
		Fragments: []profile.Fragment{{
			MinorFragments: []profile.MinorFragment{{
				Operators: []profile.OperatorProfile{
					{OperatorID: 0, ProcessNanos: 100},
					{OperatorID: 1, ProcessNanos: 100},
					{OperatorID: 2, ProcessNanos: 100},
				},
			}},
		}},
	}

	report := Analyze(doc, DefaultThresholds())
	require.Len(t, report.Operators, 3)

	// Equal totals keep extraction order: first seen wins.
	for i, op := range report.Operators {
		assert.Equal(t, int32(i), op.OperatorID)
	}
}

func TestAnalyze_RankingIdempotent(t *testing.T) {
	first := Analyze(sampleDocument(), DefaultThresholds())

	ranked := make([]int32, len(first.Operators))
	for i, op := range first.Operators {
		ranked[i] = op.OperatorID
	}

	rankOperators(first.Operators)
	for i, op := range first.Operators {
		assert.Equal(t, ranked[i], op.OperatorID)
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	doc := sampleDocument()
	first := Analyze(doc, DefaultThresholds())
	second := Analyze(doc, DefaultThresholds())

	assert.Equal(t, first, second)
}
