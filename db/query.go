package db

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"budgetbuddy/models"

	"github.com/tidwall/gjson"
)

// Month filtering: "path operator value" conditions evaluated against the
// serialized month record, joined by "and"/"or". Examples:
//
//	completed equals true
//	income.total greaterthan 3000
//	savings.difference lessthan 0
//	profile-free paths only; the record is the root document.

// FilterCondition represents a single condition like "path operator value".
type FilterCondition struct {
	Path        string      // Dot notation path into the month record JSON
	Operator    string      // One of validFilterOperators
	ParsedValue interface{} // string, float64 or bool
	ValueType   gjson.Type  // Type determined during parsing
	Original    string      // Original condition string for error messages
}

// LogicalOperator joins two conditions.
type LogicalOperator string

const (
	LogicAnd LogicalOperator = "and"
	LogicOr  LogicalOperator = "or"
)

// MonthFilter holds the sequence of conditions and logical operators.
// Logic[i] applies between Conditions[i] and Conditions[i+1].
type MonthFilter struct {
	Conditions []FilterCondition
	Logic      []LogicalOperator
}

// MonthEntry pairs a month key with its record, for ordered query results.
type MonthEntry struct {
	Key    string             `json:"key"`
	Record models.MonthRecord `json:"record"`
}

var validFilterOperators = map[string]bool{
	"equals": true, "notequals": true,
	"greaterthan": true, "lessthan": true,
	"greaterthanorequals": true, "lessthanorequals": true,
	"contains": true,
}

// ParseMonthFilter parses the raw filter parts from the request (alternating
// condition, logic, condition, ...) into a MonthFilter. A nil result with a
// nil error means no filtering.
func ParseMonthFilter(parts []string) (*MonthFilter, error) {
	if len(parts) == 0 {
		return nil, nil
	}

	filter := &MonthFilter{}
	expectingCondition := true

	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("filter part at index %d is empty", i)
		}

		if expectingCondition {
			cond, err := parseFilterCondition(part)
			if err != nil {
				return nil, fmt.Errorf("invalid condition at index %d ('%s'): %w", i, part, err)
			}
			filter.Conditions = append(filter.Conditions, cond)
		} else {
			logic := LogicalOperator(strings.ToLower(part))
			if logic != LogicAnd && logic != LogicOr {
				return nil, fmt.Errorf("invalid logical operator at index %d: '%s', expected 'and' or 'or'", i, part)
			}
			filter.Logic = append(filter.Logic, logic)
		}
		expectingCondition = !expectingCondition
	}

	if expectingCondition {
		return nil, errors.New("filter must end with a condition, not a logical operator")
	}

	return filter, nil
}

// parseFilterCondition parses "path operator value", determining the value
// type (quoted string, number, boolean, bare string).
func parseFilterCondition(conditionStr string) (FilterCondition, error) {
	parts := strings.Fields(conditionStr)
	if len(parts) < 3 {
		return FilterCondition{}, errors.New("condition must be 'path operator value'")
	}

	path := parts[0]
	operator := strings.ToLower(parts[1])
	if !validFilterOperators[operator] {
		return FilterCondition{}, fmt.Errorf("invalid operator '%s'", operator)
	}

	// Reconstruct the raw value string so quoted strings keep their spacing.
	valueStart := strings.Index(conditionStr, parts[2])
	if valueStart == -1 {
		return FilterCondition{}, errors.New("internal parsing error: could not find value start")
	}
	rawValue := strings.TrimSpace(conditionStr[valueStart:])

	var parsedValue interface{}
	var valueType gjson.Type

	switch {
	case len(rawValue) >= 2 && rawValue[0] == '"' && rawValue[len(rawValue)-1] == '"':
		parsedValue = rawValue[1 : len(rawValue)-1]
		valueType = gjson.String
	default:
		if f, err := strconv.ParseFloat(rawValue, 64); err == nil {
			parsedValue = f
			valueType = gjson.Number
		} else if b, err := strconv.ParseBool(rawValue); err == nil {
			parsedValue = b
			valueType = gjson.True
			if !b {
				valueType = gjson.False
			}
		} else {
			parsedValue = rawValue
			valueType = gjson.String
		}
	}

	return FilterCondition{
		Path:        path,
		Operator:    operator,
		ParsedValue: parsedValue,
		ValueType:   valueType,
		Original:    conditionStr,
	}, nil
}

// QueryMonths filters the twelve month records with the given raw filter
// parts and returns matches in calendar order. An empty filter returns all
// months.
func (db *Database) QueryMonths(filterParts []string) ([]MonthEntry, error) {
	filter, err := ParseMonthFilter(filterParts)
	if err != nil {
		return nil, fmt.Errorf("invalid filter: %w", err)
	}

	months := db.GetAllMonths()

	entries := make([]MonthEntry, 0, len(months))
	for _, key := range models.MonthKeys() {
		rec, ok := months[key]
		if !ok {
			rec = models.MonthRecord{}
		}
		if filter != nil {
			match, err := evaluateMonthFilter(rec, filter)
			if err != nil {
				return nil, err
			}
			if !match {
				continue
			}
		}
		entries = append(entries, MonthEntry{Key: key, Record: rec})
	}
	return entries, nil
}

// evaluateMonthFilter checks whether a single month record matches the filter.
func evaluateMonthFilter(rec models.MonthRecord, filter *MonthFilter) (bool, error) {
	if filter == nil || len(filter.Conditions) == 0 {
		return true, nil
	}

	recJSON, err := json.Marshal(rec)
	if err != nil {
		return false, fmt.Errorf("could not serialize month record: %w", err)
	}
	doc := string(recJSON)

	result, err := evaluateFilterCondition(doc, filter.Conditions[0])
	if err != nil {
		return false, err
	}

	for i, logic := range filter.Logic {
		next, err := evaluateFilterCondition(doc, filter.Conditions[i+1])
		if err != nil {
			return false, err
		}
		switch logic {
		case LogicAnd:
			result = result && next
		case LogicOr:
			result = result || next
		}
	}

	return result, nil
}

// evaluateFilterCondition checks one condition against the record JSON.
func evaluateFilterCondition(doc string, cond FilterCondition) (bool, error) {
	target := gjson.Get(doc, cond.Path)
	if !target.Exists() {
		return false, fmt.Errorf("path '%s' does not exist in month record", cond.Path)
	}

	switch target.Type {
	case gjson.String:
		return compareFilterString(target.String(), cond)
	case gjson.Number:
		return compareFilterNumber(target.Float(), cond)
	case gjson.True, gjson.False:
		return compareFilterBool(target.Bool(), cond)
	default:
		return false, fmt.Errorf("path '%s' is not a comparable value", cond.Path)
	}
}

func compareFilterString(targetStr string, cond FilterCondition) (bool, error) {
	condStr, ok := cond.ParsedValue.(string)
	if !ok {
		if cond.Operator == "notequals" {
			return true, nil
		}
		return false, fmt.Errorf("type mismatch: cannot compare string with %s in '%s'", cond.ValueType.String(), cond.Original)
	}
	switch cond.Operator {
	case "equals":
		return targetStr == condStr, nil
	case "notequals":
		return targetStr != condStr, nil
	case "contains":
		return strings.Contains(targetStr, condStr), nil
	default:
		return false, fmt.Errorf("operator '%s' is invalid for string values", cond.Operator)
	}
}

func compareFilterNumber(targetNum float64, cond FilterCondition) (bool, error) {
	condNum, ok := cond.ParsedValue.(float64)
	if !ok {
		if cond.Operator == "notequals" {
			return true, nil
		}
		return false, fmt.Errorf("type mismatch: value '%v' is not a valid number in '%s'", cond.ParsedValue, cond.Original)
	}
	switch cond.Operator {
	case "equals":
		return targetNum == condNum, nil
	case "notequals":
		return targetNum != condNum, nil
	case "greaterthan":
		return targetNum > condNum, nil
	case "lessthan":
		return targetNum < condNum, nil
	case "greaterthanorequals":
		return targetNum >= condNum, nil
	case "lessthanorequals":
		return targetNum <= condNum, nil
	default:
		return false, fmt.Errorf("operator '%s' is invalid for numeric values", cond.Operator)
	}
}

func compareFilterBool(targetBool bool, cond FilterCondition) (bool, error) {
	condBool, ok := cond.ParsedValue.(bool)
	if !ok {
		if cond.Operator == "notequals" {
			return true, nil
		}
		return false, fmt.Errorf("type mismatch: value '%v' is not a valid boolean in '%s'", cond.ParsedValue, cond.Original)
	}
	switch cond.Operator {
	case "equals":
		return targetBool == condBool, nil
	case "notequals":
		return targetBool != condBool, nil
	default:
		return false, fmt.Errorf("operator '%s' is invalid for boolean values", cond.Operator)
	}
}
