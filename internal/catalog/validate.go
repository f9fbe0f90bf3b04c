package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// fieldOrder fixes the order violations are reported in, so the first
// violation is deterministic when several rules fail at once.
var fieldOrder = map[string]int{
	"price":  0,
	"stock":  1,
	"sales":  2,
	"title":  3,
	"author": 4,
}

// ValidateInput checks a candidate record against the catalog's field rules:
// price > 0, stock >= 0, sales >= 0 (when the schema tracks sales), title and
// author non-empty. It returns nil when the record is acceptable.
func ValidateInput(in Input, opts Options) *ValidationError {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var violations []Violation
	for _, fe := range err.(validator.ValidationErrors) {
		field := strings.ToLower(fe.Field())
		if field == "sales" && !opts.SalesEnabled {
			continue
		}
		violations = append(violations, Violation{
			Field:   field,
			Message: ruleMessage(field, fe.Tag()),
		})
	}
	if len(violations) == 0 {
		return nil
	}
	sort.SliceStable(violations, func(i, j int) bool {
		return fieldOrder[violations[i].Field] < fieldOrder[violations[j].Field]
	})
	return &ValidationError{Violations: violations}
}

func ruleMessage(field, tag string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("%s cannot be empty", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than 0", field)
	case "gte":
		return fmt.Sprintf("%s must not be negative", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
