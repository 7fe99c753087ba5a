package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lx7/graphmatch/pkg/query"
)

// whereOperators lists the supported comparison operators, longest
// first so "<>"/"<="/">=" are recognized before their single-character
// prefixes.
var whereOperators = []string{"<>", "<=", ">=", "=", "<", ">"}

// parseWhereFlags turns repeated --where "variable.property OP literal"
// flag values into WHERE predicates.
func parseWhereFlags(raw []string) ([]query.PropertyPredicate, error) {
	predicates := make([]query.PropertyPredicate, 0, len(raw))
	for _, r := range raw {
		p, err := parseWhereFlag(r)
		if err != nil {
			return nil, err
		}
		predicates = append(predicates, p)
	}
	return predicates, nil
}

func parseWhereFlag(raw string) (query.PropertyPredicate, error) {
	var op string
	var splitAt int
	for _, candidate := range whereOperators {
		if i := strings.Index(raw, candidate); i >= 0 {
			op, splitAt = candidate, i
			break
		}
	}
	if op == "" {
		return query.PropertyPredicate{}, fmt.Errorf("graphmatch: --where %q has no recognized comparison operator", raw)
	}

	left := strings.TrimSpace(raw[:splitAt])
	right := strings.TrimSpace(raw[splitAt+len(op):])
	variable, property, ok := strings.Cut(left, ".")
	if !ok {
		return query.PropertyPredicate{}, fmt.Errorf("graphmatch: --where %q: left side must be \"variable.property\"", raw)
	}

	return query.PropertyPredicate{
		LeftVariable: variable,
		LeftProperty: property,
		Operator:     op,
		RightLiteral: parseLiteral(right),
	}, nil
}

// parseLiteral converts a WHERE clause's right-hand text into the Go
// value pkg/operator's comparison functions expect: int32 for whole
// numbers, float64 for decimals, bool for true/false, and a
// (quote-stripped) string otherwise, matching pkg/codec's four
// supported property kinds.
func parseLiteral(raw string) any {
	if i, err := strconv.ParseInt(raw, 10, 32); err == nil {
		return int32(i)
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return strings.Trim(raw, `"'`)
}

// parseReturnFlags turns repeated --return "variable[.property]" flag
// values into a RETURN clause's plain variables and variable.property
// entries.
func parseReturnFlags(raw []string) (variables []string, properties []query.ReturnProperty) {
	for _, r := range raw {
		if variable, property, ok := strings.Cut(r, "."); ok {
			properties = append(properties, query.ReturnProperty{Variable: variable, Property: property})
			continue
		}
		variables = append(variables, r)
	}
	return variables, properties
}
