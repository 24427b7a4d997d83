package outfmt

import (
	"fmt"
	"strings"

	"github.com/itchyny/gojq"
)

// ApplyQuery runs a jq expression against data. Data must be plain JSON
// values as produced by Normalize. A single result is returned as is,
// several results as a slice.
func ApplyQuery(data any, expression string) (any, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return data, nil
	}
	// zsh escapes ! even in single quotes
	expression = strings.ReplaceAll(expression, `\!`, `!`)

	query, err := gojq.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid query expression: %w", err)
	}

	iter := query.Run(data)
	var results []any
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			return nil, fmt.Errorf("query error: %w", err)
		}
		results = append(results, v)
	}
	if len(results) == 1 {
		return results[0], nil
	}
	return results, nil
}
