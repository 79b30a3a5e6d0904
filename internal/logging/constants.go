package logging

// Standardized field names for structured logging. Using the same keys
// everywhere keeps log output easy to filter and analyze.
const (
	FieldFile    = "file_path"
	FieldFormat  = "format"
	FieldRow     = "row"
	FieldSymbol  = "symbol"
	FieldCount   = "count"
	FieldSkipped = "skipped"
	FieldReason  = "reason"
	FieldBatchID = "batch_id"
	FieldError   = "error"
)
