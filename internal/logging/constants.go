package logging

// Field names shared by every component so log output can be filtered
// consistently.
const (
	FieldDocument   = "document"
	FieldRunID      = "run_id"
	FieldYear       = "year"
	FieldCategory   = "category"
	FieldKeyword    = "keyword"
	FieldMerchant   = "merchant"
	FieldCents      = "cents"
	FieldLine       = "line"
	FieldLineIndex  = "line_index"
	FieldCount      = "count"
	FieldDebits     = "debits"
	FieldCredits    = "credits"
	FieldFormat     = "format"
	FieldOutputFile = "output_file"
	FieldDirectory  = "directory"
	FieldComponent  = "component"
	FieldDurationMS = "duration_ms"
)
