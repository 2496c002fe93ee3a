package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperatorTypeName_KnownCodes(t *testing.T) {
	tests := []struct {
		code int32
		want string
	}{
		{0, "SingleSender"},
		{2, "Filter"},
		{3, "HashAggregate"},
		{4, "HashJoin"},
		{10, "Project"},
		{13, "Screen"},
		{14, "SelectionVectorRemover"},
		{17, "ExternalSort"},
		{35, "NestedLoopJoin"},
		{52, "IcebergSubScan"},
		{53, "TableFunction"},
		{68, "ArrowWriterAuxiliary"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, OperatorTypeName(tt.code), "code %d", tt.code)
	}
}

func TestOperatorTypeName_UnknownCodes(t *testing.T) {
	assert.Equal(t, "Unknown(999)", OperatorTypeName(999))
	assert.Equal(t, "Unknown(-1)", OperatorTypeName(-1))
	assert.Equal(t, "Unknown(69)", OperatorTypeName(69))
}

func TestOperatorTypeName_TableIsComplete(t *testing.T) {
	// Every code in 0-68 must resolve to a real name, never the
	// Unknown fallback.
	for code := int32(0); code <= 68; code++ {
		name := OperatorTypeName(code)
		assert.NotContains(t, name, "Unknown", "code %d", code)
	}
}
