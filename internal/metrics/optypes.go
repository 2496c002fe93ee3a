package metrics

import "fmt"

// operatorTypeNames is the complete CoreOperatorType table (codes 0-68).
var operatorTypeNames = map[int32]string{
	0:  "SingleSender",
	1:  "BroadcastSender",
	2:  "Filter",
	3:  "HashAggregate",
	4:  "HashJoin",
	5:  "MergeJoin",
	6:  "HashPartitionSender",
	7:  "Limit",
	8:  "MergingReceiver",
	9:  "OrderedPartitionSender",
	10: "Project",
	11: "UnorderedReceiver",
	12: "RangeSender",
	13: "Screen",
	14: "SelectionVectorRemover",
	15: "StreamingAggregate",
	16: "TopNSort",
	17: "ExternalSort",
	18: "Trace",
	19: "Union",
	20: "OldSort",
	21: "ParquetRowGroupScan",
	22: "HiveSubScan",
	23: "SystemTableScan",
	24: "MockSubScan",
	25: "ParquetWriter",
	26: "DirectSubScan",
	27: "TextWriter",
	28: "TextSubScan",
	29: "JsonSubScan",
	30: "InfoSchemaSubScan",
	31: "ComplexToJson",
	32: "ProducerConsumer",
	33: "HbaseSubScan",
	34: "Window",
	35: "NestedLoopJoin",
	36: "AvroSubScan",
	37: "MongoSubScan",
	38: "ElasticsearchSubScan",
	39: "ElasticsearchAggregatorSubScan",
	40: "Flatten",
	41: "ExcelSubScan",
	42: "ArrowSubScan",
	43: "ArrowWriter",
	44: "JsonWriter",
	45: "ValuesReader",
	46: "ConvertFromJson",
	47: "JdbcSubScan",
	48: "DictionaryLookup",
	49: "WriterCommitter",
	50: "RoundRobinSender",
	51: "BoostParquet",
	52: "IcebergSubScan",
	53: "TableFunction",
	54: "DeltalakeSubScan",
	55: "DirListingSubScan",
	56: "IcebergWriterCommitter",
	57: "GrpcWriter",
	58: "ManifestWriter",
	59: "FlightSubScan",
	60: "BridgeFileWriterSender",
	61: "BridgeFileReaderReceiver",
	62: "BridgeFileReader",
	63: "IcebergManifestWriter",
	64: "IcebergMetadataFunctionsReader",
	65: "IcebergSnapshotsSubScan",
	66: "NessieCommitsSubScan",
	67: "SmallFileCombinationWriter",
	68: "ArrowWriterAuxiliary",
}

// OperatorTypeName maps an operator type code to its canonical name.
// Total over all inputs: codes outside the table render as
// "Unknown(<code>)".
func OperatorTypeName(code int32) string {
	if name, ok := operatorTypeNames[code]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", code)
}
