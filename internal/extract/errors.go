package extract

import (
	"fmt"
	"strings"
)

// SchemaError reports required columns absent from an input file. It aborts
// the run before any transform or load work happens.
type SchemaError struct {
	File    string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing required columns: %s", e.File, strings.Join(e.Missing, ", "))
}

// RuleError reports a hard business-rule violation (negative price, negative
// order total, non-positive quantity). The whole batch is rejected.
type RuleError struct {
	File string
	Rule string
	Line int
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%s line %d: %s", e.File, e.Line, e.Rule)
}
