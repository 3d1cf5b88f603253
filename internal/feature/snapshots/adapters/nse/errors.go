package nse

import "fmt"

// StatusError はNSEが4xx/5xxを返したことを示します。
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("nse http %d", e.Code)
}

// SchemaError はレスポンスの形が期待と異なることを示します。
type SchemaError struct {
	Field string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("nse response missing %s", e.Field)
}
