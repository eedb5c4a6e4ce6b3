package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldPath       = "path"
	FieldError      = "error"
	FieldErrorKind  = "error_kind"
	FieldOperation  = "operation"
	FieldEntity     = "entity"
	FieldEventID    = "event_id"
	FieldCategoryID = "category_id"
	FieldCategory   = "category"
	FieldMonth      = "month"
	FieldFrom       = "from"
	FieldTo         = "to"
	FieldShape      = "shape"
	FieldRows       = "rows"
	FieldGroups     = "groups"
	FieldCreated    = "created"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentStorage  = "storage"
	ComponentCalendar = "calendar"
	ComponentFacade   = "facade"
	ComponentAMQP     = "amqp"
	ComponentICS      = "ics"
	ComponentSession  = "session"
	ComponentCLI      = "cli"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpRead     = "read"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpList     = "list"
	OpQuery    = "query"
	OpExport   = "export"
	OpNotify   = "notify"
	OpOpen     = "open"
	OpClose    = "close"
	OpValidate = "validate"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

func NewFields() LogFields {
	return make(LogFields)
}

func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithError adds the error message and, when given, its kind word
func (f LogFields) WithError(err error, kind string) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
		if kind != "" {
			f[FieldErrorKind] = kind
		}
	}
	return f
}

func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithQuery adds the query shape with its result sizes
func (f LogFields) WithQuery(shape string, rows, groups int) LogFields {
	f[FieldShape] = shape
	f[FieldRows] = rows
	f[FieldGroups] = groups
	return f
}

// WithChange adds the entity and id touched by a write
func (f LogFields) WithChange(entity string, id int64) LogFields {
	f[FieldEntity] = entity
	switch entity {
	case "event":
		f[FieldEventID] = id
	case "category":
		f[FieldCategoryID] = id
	}
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
