package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldOwnerID   = "owner_id"
	FieldExpenseID = "expense_id"
	FieldAmount    = "amount_cents"
	FieldCategory  = "category"
	FieldPeriod    = "period"
	FieldLimit     = "limit"
	FieldOperation = "operation"
	FieldArtifact  = "artifact_path"
	FieldRowCount  = "row_count"
	FieldError     = "error"
	FieldMethod    = "method"
	FieldPath      = "path"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentStorage = "storage"
	ComponentLedger  = "ledger"
	ComponentIntent  = "intent"
	ComponentReport  = "report"
)

// Operations defines standard operation names
const (
	OpCreate      = "create"
	OpRead        = "read"
	OpUpdate      = "update"
	OpDelete      = "delete"
	OpList        = "list"
	OpRender      = "render"
	OpExtract     = "extract"
	OpStartup     = "startup"
	OpShutdown    = "shutdown"
)
