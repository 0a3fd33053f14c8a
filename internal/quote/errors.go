package quote

import "fmt"

// StructureError reports a template asset that cannot be assembled, such as
// a details template without body content. It is never a data problem.
type StructureError struct {
	Template string
	Reason   string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("malformed %s template: %s", e.Template, e.Reason)
}
