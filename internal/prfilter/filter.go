// Package prfilter evaluates jq expressions on the JSON representation of
// pull requests.
package prfilter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/itchyny/gojq"
)

// Filter is a jq query that must evaluate to a single boolean.
type Filter struct {
	query *gojq.Query
}

// New parses the jq query.
func New(jqQuery string) (*Filter, error) {
	query, err := gojq.Parse(jqQuery)
	if err != nil {
		return nil, fmt.Errorf("parsing jq query %q failed: %w", jqQuery, err)
	}

	return &Filter{query: query}, nil
}

func goJQIterToSlice(iter gojq.Iter) ([]any, []error) {
	var result []any
	var errors []error

	for {
		res, ok := iter.Next()
		if !ok {
			return result, errors
		}

		if err, isErr := res.(error); isErr {
			errors = append(errors, err)
			continue
		}

		result = append(result, res)
	}
}

func errString(errs []error) string {
	var result strings.Builder

	for i, err := range errs {
		if i > 0 {
			result.WriteString("; ")
		}

		result.WriteString(fmt.Sprintf("error %d: %s", i, err))
	}

	return result.String()
}

// Match returns true if the query evaluates to true for the JSON document
// jsonDoc.
func (f *Filter) Match(ctx context.Context, jsonDoc []byte) (bool, error) {
	var doc any

	if len(jsonDoc) == 0 {
		return false, errors.New("json document is empty")
	}

	if err := json.Unmarshal(jsonDoc, &doc); err != nil {
		return false, fmt.Errorf("unmarshaling json failed: %w", err)
	}

	result, errs := goJQIterToSlice(f.query.RunWithContext(ctx, doc))
	if len(errs) != 0 {
		return false, fmt.Errorf("json query returned errors, query: %q, errors: %s", f.query.String(), errString(errs))
	}

	if len(result) == 0 {
		return false, fmt.Errorf("json query returned 0 results, expected 1, query: %q", f.query.String())
	}

	if len(result) > 1 {
		return false, fmt.Errorf("json query returned multiple results, expected 1, query: %q, result: '%+v'", f.query.String(), result)
	}

	val, ok := result[0].(bool)
	if !ok {
		return false, fmt.Errorf(
			"json query returned non-bool result: %+v (%T), query: %q",
			result[0], result[0], f.query.String(),
		)
	}

	return val, nil
}

func (f *Filter) String() string {
	return f.query.String()
}
