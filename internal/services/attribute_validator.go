package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"prodcat/internal/apperr"
	"prodcat/internal/domain"
	"prodcat/internal/repos"
)

// AttributeValidator checks a proposed attribute map against the category's
// attribute definitions. It is a pure read: all violations are collected in
// one pass and returned as data, never raised.
type AttributeValidator struct {
	Attrs *repos.AttributeRepo
}

func NewAttributeValidator(attrs *repos.AttributeRepo) *AttributeValidator {
	return &AttributeValidator{Attrs: attrs}
}

// Validate returns every violation found. Keys with no matching definition
// pass through untouched: unknown attributes are allowed by policy.
func (v *AttributeValidator) Validate(categoryID int64, attributes map[string]any) ([]apperr.Violation, error) {
	defs, err := v.Attrs.ListByCategory(categoryID)
	if err != nil {
		return nil, err
	}

	type entry struct {
		key string
		val any
	}
	byLower := make(map[string]entry, len(attributes))
	for k, val := range attributes {
		byLower[strings.ToLower(k)] = entry{key: k, val: val}
	}

	var out []apperr.Violation
	for _, def := range defs {
		e, present := byLower[strings.ToLower(def.Title)]
		if !present {
			if def.Required {
				out = append(out, apperr.Violation{Field: def.Title, Message: "required attribute missing"})
			}
			continue
		}
		if !matchesType(e.val, def.Type) {
			out = append(out, apperr.Violation{
				Field:   e.key,
				Message: fmt.Sprintf("attribute must be of type %s", def.Type),
			})
		}
	}
	return out, nil
}

// matchesType checks the runtime shape of a decoded JSON value against a
// declared attribute type. enum is checked as text only; the allowed value
// set is not modeled.
func matchesType(val any, t domain.AttributeType) bool {
	switch t {
	case domain.AttrString, domain.AttrEnum:
		_, ok := val.(string)
		return ok
	case domain.AttrNumber:
		switch val.(type) {
		case float64, float32, int, int64, json.Number:
			return true
		}
		return false
	case domain.AttrBoolean:
		_, ok := val.(bool)
		return ok
	case domain.AttrArray:
		_, ok := val.([]any)
		return ok
	}
	return false
}
