package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// writeQuery evaluates a JSONPath expression against the JSON form of v and
// prints the result. Strings print bare so the output can feed other commands.
func writeQuery(w io.Writer, expr string, v any) error {
	expr = strings.TrimSpace(expr)

	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}

	val, err := jsonpath.Get(expr, doc)
	if err != nil {
		return fmt.Errorf("query %q: %w", expr, err)
	}

	// Index and filter expressions return a slice; unwrap single matches.
	if arr, ok := val.([]any); ok && len(arr) == 1 {
		val = arr[0]
	}

	switch t := val.(type) {
	case nil:
		return fmt.Errorf("query %q: no value found", expr)
	case string:
		_, err = fmt.Fprintln(w, t)
		return err
	default:
		out, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("query %q: %w", expr, err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	}
}
