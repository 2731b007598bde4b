// Copyright (c) 2025 recwire authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the recwire library.

package descriptor

import (
	"fmt"

	"github.com/casbin/govaluate"
)

// FieldFilter decides, for a given field, whether it participates in
// serialization: static/shared, cannot-round-trip, or transient fields must
// be omitted, and the boundary for that is deliberately left
// implementation-defined rather than baked into the reflection walk.
// Exclusion is expressed as a boolean govaluate expression evaluated
// against the field's name, type_name, and raw struct tag, grounded on
// dynamic-ssz's use of govaluate for dynamic spec-value expressions
// (specvals.go); here the expression evaluates field metadata instead.
//
// A field is INCLUDED when the expression evaluates to false (i.e. the
// expression names the exclusion condition, e.g. `Tag == "internal"`).
type FieldFilter struct {
	expr *govaluate.EvaluableExpression
}

// NewFieldFilter compiles an exclusion expression. The expression may
// reference the parameters Name, TypeName, and Tag (all strings).
func NewFieldFilter(expression string) (*FieldFilter, error) {
	expr, err := govaluate.NewEvaluableExpression(expression)
	if err != nil {
		return nil, fmt.Errorf("recwire: invalid field filter expression: %w", err)
	}
	return &FieldFilter{expr: expr}, nil
}

// Allow reports whether the field should participate in serialization.
func (f *FieldFilter) Allow(name, typeName, tag string) bool {
	if f == nil || f.expr == nil {
		return true
	}
	result, err := f.expr.Evaluate(map[string]any{
		"Name":     name,
		"TypeName": typeName,
		"Tag":      tag,
	})
	if err != nil {
		// A malformed reference (e.g. missing parameter) is treated as
		// "field is not excluded" rather than surfaced as a write-time
		// error: exclusion must stay a pure, side-effect-free predicate.
		return true
	}
	excluded, ok := result.(bool)
	if !ok {
		return true
	}
	return !excluded
}
