package logger

// Standard field names for consistent structured logging across shapeshare.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Identity and context
	FieldRunID = "run_id"

	// Components
	FieldComponent = "component"
	FieldBackend   = "backend"

	// Generation
	FieldDefinition = "definition"
	FieldKind       = "kind"
	FieldModule     = "module"
	FieldPolicy     = "policy"
	FieldRecords    = "records"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"

	// Counts and sizes
	FieldCount   = "count"
	FieldSkipped = "skipped"
	FieldBytes   = "bytes"

	// Files and paths
	FieldFile = "file"
	FieldPath = "path"
)
