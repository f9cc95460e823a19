// Package filter applies JMESPath expressions to JSON process output
// before it reaches the tree viewer.
package filter

import (
	"encoding/json"
	"fmt"

	"github.com/jmespath/go-jmespath"
)

// Apply evaluates expression against the JSON document in body and returns
// the selected result re-encoded as JSON. An empty expression returns body
// unchanged.
func Apply(body []byte, expression string) ([]byte, error) {
	if expression == "" {
		return body, nil
	}

	var data interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("failed to parse JSON for filtering: %w", err)
	}

	jp, err := jmespath.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}

	result, err := jp.Search(data)
	if err != nil {
		return nil, fmt.Errorf("failed to apply filter: %w", err)
	}

	encoded, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode filtered result: %w", err)
	}

	return encoded, nil
}

// Validate checks an expression without evaluating it.
func Validate(expression string) error {
	if expression == "" {
		return nil
	}
	if _, err := jmespath.Compile(expression); err != nil {
		return fmt.Errorf("invalid filter expression: %w", err)
	}
	return nil
}
