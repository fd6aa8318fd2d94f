package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldQuery      = "query"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldUserAgent  = "user_agent"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldRows       = "rows"
	FieldSQL        = "sql"

	FieldPersonID      = "pessoa_id"
	FieldCategoryID    = "categoria_id"
	FieldTransactionID = "transacao_id"
	FieldKind          = "tipo"
	FieldAmount        = "valor"
	FieldRemoved       = "removed"
)

const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentStorage = "storage"
	ComponentDB      = "gorm"
	ComponentMigrate = "migrate"
)

const (
	OpCreate   = "create"
	OpRead     = "read"
	OpDelete   = "delete"
	OpList     = "list"
	OpTotals   = "totals"
	OpMigrate  = "migrate"
	OpSeed     = "seed"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
