package logging

// Standard field names so log lines from different components line up.
const (
	FieldFile       = "file"
	FieldFormat     = "format"
	FieldDatasetID  = "dataset_id"
	FieldRows       = "rows"
	FieldRecords    = "records"
	FieldColumns    = "columns"
	FieldColumn     = "column"
	FieldRule       = "rule"
	FieldCustomer   = "customer"
	FieldCount      = "count"
	FieldQuery      = "query"
	FieldGeneration = "generation"
	FieldOperation  = "operation"
	FieldErrorKind  = "error_kind"
	FieldDuration   = "duration_ms"
	FieldOutputFile = "output_file"
)
