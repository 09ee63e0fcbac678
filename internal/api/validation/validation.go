// Package validation checks decoded JSON request bodies against per-route
// rules and produces the localized field error map returned with 422.
//
// Presence is decided here; type and format checks are delegated to
// go-playground/validator with a few JSON-aware custom tags.
package validation

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Rule describes the checks applied to one field.
//
// Field may address array elements with a wildcard segment, e.g.
// "products.*.productId"; errors are then keyed by the concrete index
// ("products.0.productId"). Wildcard rules only run when the parent array
// is present.
type Rule struct {
	Field string
	// Tags is a validator tag list such as "integer" or "string,min=6".
	Tags string
	// Sometimes skips the rule entirely when the field is absent.
	// Otherwise the field is required.
	Sometimes bool
}

// Rules is an ordered rule set for one request shape.
type Rules []Rule

// Errors maps a field path to its messages, in rule order.
type Errors map[string][]string

// Fields returns the failing field paths in sorted order.
func (e Errors) Fields() []string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Validator applies Rules to decoded JSON objects.
type Validator struct {
	validate *validator.Validate
}

// New returns a Validator with the JSON type tags registered.
func New() *Validator {
	v := validator.New()
	mustRegister(v, "integer", isInteger)
	mustRegister(v, "number", isNumber)
	mustRegister(v, "string", isString)
	mustRegister(v, "array", isArray)
	return &Validator{validate: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: registering %q: %v", tag, err))
	}
}

// Validate checks data against rules. It returns nil when every rule passes.
func (v *Validator) Validate(data map[string]any, rules Rules) Errors {
	errs := Errors{}
	for _, rule := range rules {
		for _, target := range expand(data, rule.Field) {
			v.check(errs, target, rule)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// target is one concrete field resolved from a (possibly wildcard) rule.
type target struct {
	path    string
	value   any
	present bool
}

func (v *Validator) check(errs Errors, t target, rule Rule) {
	if !t.present {
		if !rule.Sometimes {
			errs[t.path] = append(errs[t.path], message(t.path, "required", ""))
		}
		return
	}
	if isBlank(t.value) {
		if !rule.Sometimes {
			errs[t.path] = append(errs[t.path], message(t.path, "required", ""))
			return
		}
		// An optional field sent as null or "" fails its type check, while an
		// empty array still goes through the tags.
		if _, isArray := t.value.([]any); !isArray {
			if tag := leadingTag(rule.Tags); tag != "" {
				errs[t.path] = append(errs[t.path], message(t.path, tag, ""))
			}
			return
		}
	}

	if rule.Tags == "" {
		return
	}

	err := v.validate.Var(t.value, rule.Tags)
	if err == nil {
		return
	}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			errs[t.path] = append(errs[t.path], message(t.path, fe.Tag(), fe.Param()))
		}
		return
	}
	errs[t.path] = append(errs[t.path], message(t.path, "", ""))
}

// leadingTag returns the name of the first tag in a tag list.
func leadingTag(tags string) string {
	first, _, _ := strings.Cut(tags, ",")
	name, _, _ := strings.Cut(first, "=")
	return strings.TrimSpace(name)
}

// expand resolves a rule field against data. A wildcard yields one target
// per element of the parent array; a missing or non-array parent yields none.
func expand(data map[string]any, field string) []target {
	parts := strings.Split(field, ".")
	return walk(data, parts, "", true)
}

func walk(node any, parts []string, prefix string, present bool) []target {
	if len(parts) == 0 {
		return []target{{path: prefix, value: node, present: present}}
	}

	head, rest := parts[0], parts[1:]
	if head == "*" {
		items, ok := node.([]any)
		if !ok {
			return nil
		}
		var out []target
		for i, item := range items {
			out = append(out, walk(item, rest, join(prefix, strconv.Itoa(i)), true)...)
		}
		return out
	}

	path := join(prefix, head)
	obj, ok := node.(map[string]any)
	if !ok {
		return []target{{path: path + restSuffix(rest), present: false}}
	}
	child, exists := obj[head]
	if !exists {
		if hasWildcard(rest) {
			return nil
		}
		return []target{{path: path + restSuffix(rest), present: false}}
	}
	return walk(child, rest, path, true)
}

func join(prefix, segment string) string {
	if prefix == "" {
		return segment
	}
	return prefix + "." + segment
}

func restSuffix(rest []string) string {
	if len(rest) == 0 {
		return ""
	}
	return "." + strings.Join(rest, ".")
}

func hasWildcard(parts []string) bool {
	for _, p := range parts {
		if p == "*" {
			return true
		}
	}
	return false
}

// isBlank mirrors the usual "required" semantics for JSON input: null, an
// empty or whitespace-only string and an empty array are missing values,
// while 0 and false are present.
func isBlank(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	case []any:
		return len(x) == 0
	default:
		return false
	}
}

func isInteger(fl validator.FieldLevel) bool {
	f := fl.Field()
	switch f.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return f.Uint() <= math.MaxInt64
	case reflect.Float32, reflect.Float64:
		// float64(math.MaxInt64) rounds up to 2^63, which is already out of range.
		n := f.Float()
		return n == math.Trunc(n) && n >= math.MinInt64 && n < math.MaxInt64
	case reflect.String:
		_, err := strconv.ParseInt(strings.TrimSpace(f.String()), 10, 64)
		return err == nil
	default:
		return false
	}
}

func isNumber(fl validator.FieldLevel) bool {
	f := fl.Field()
	switch f.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	case reflect.String:
		_, err := strconv.ParseFloat(strings.TrimSpace(f.String()), 64)
		return err == nil
	default:
		return false
	}
}

func isString(fl validator.FieldLevel) bool {
	return fl.Field().Kind() == reflect.String
}

func isArray(fl validator.FieldLevel) bool {
	k := fl.Field().Kind()
	return k == reflect.Slice || k == reflect.Array
}
