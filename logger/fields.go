package logger

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldCommand   = "command"
	FieldBackend   = "backend"
	FieldPath      = "path"
	FieldKey       = "key"
	FieldBudget    = "budget"
	FieldError     = "error"
	FieldModel     = "model"
	FieldTool      = "tool"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentCLI     = "cli"
	ComponentTracker = "tracker"
	ComponentStore   = "store"
	ComponentAgent   = "agent"
)

// Operations defines standard operation names
const (
	OpLoad    = "load"
	OpSave    = "save"
	OpMigrate = "migrate"
	OpImport  = "import"
	OpExport  = "export"
)
