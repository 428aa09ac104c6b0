// Package validation is a small rule engine that checks typed entities against
// declarative rule tables. Every rule belongs to one or more named groups, and a
// check only evaluates the rules whose groups intersect the groups the caller asks
// for, so a multi-step authoring form can validate just the fields on the current
// step. The sentinel group "all" selects every rule.
package validation

import (
	"slices"

	"github.com/go-playground/validator/v10"
)

// GroupAll selects every rule regardless of the groups it declares.
const GroupAll = "all"

// Factory coerces loosely typed input into a T. It is the only construction path,
// so the validator reuses the exact factory the persistence path uses.
type Factory[T any] interface {
	Create(data map[string]any) (T, error)
}

// FactoryFunc adapts a plain function to Factory.
type FactoryFunc[T any] func(data map[string]any) (T, error)

func (f FactoryFunc[T]) Create(data map[string]any) (T, error) { return f(data) }

// Rule is one check on an entity. Valid reports whether the entity passes.
type Rule[T any] struct {
	Groups  []string
	Message string
	Valid   func(entity T) bool
}

// Field is the ordered list of rules reported under one field name.
// A Field built with Dive recurses into child entities instead.
type Field[T any] struct {
	Name  string
	Rules []Rule[T]

	dive func(entity T, groups []string) []Violation
}

// RuleSet is a rule table. Fields and rules are evaluated in declaration order,
// which fixes the order of the messages in a Result.
type RuleSet[T any] []Field[T]

// Violation is one failed rule.
type Violation struct {
	Field   string
	Message string
}

// Evaluate runs the selected rules against entity.
func (rs RuleSet[T]) Evaluate(entity T, groups []string) []Violation {
	if len(groups) == 0 {
		groups = []string{GroupAll}
	}

	var out []Violation
	for _, f := range rs {
		for _, r := range f.Rules {
			if !selected(r.Groups, groups) {
				continue
			}
			if !r.Valid(entity) {
				out = append(out, Violation{Field: f.Name, Message: r.Message})
			}
		}
		if f.dive != nil {
			out = append(out, f.dive(entity, groups)...)
		}
	}
	return out
}

// Dive declares a nested field. When one of groups is requested, every child
// returned by children is checked against the complete child rule set and the
// child violations are reported under the child's own field names.
func Dive[T, C any](name string, groups []string, children func(T) []C, rules RuleSet[C]) Field[T] {
	return Field[T]{
		Name: name,
		dive: func(entity T, requested []string) []Violation {
			if !selected(groups, requested) {
				return nil
			}
			var out []Violation
			for _, child := range children(entity) {
				out = append(out, rules.Evaluate(child, []string{GroupAll})...)
			}
			return out
		},
	}
}

func selected(ruleGroups, requested []string) bool {
	for _, g := range requested {
		if g == GroupAll || slices.Contains(ruleGroups, g) {
			return true
		}
	}
	return false
}

// Result is the field name to messages mapping handed to the presentation layer.
// Size is the total number of messages, not the number of fields.
type Result struct {
	Size   int                 `json:"size"`
	Fields map[string][]string `json:"fields"`
}

// Valid reports whether no rule failed.
func (r Result) Valid() bool { return r.Size == 0 }

// Fold collects violations into a Result.
func Fold(violations []Violation) Result {
	res := Result{Fields: map[string][]string{}}
	for _, v := range violations {
		res.Fields[v.Field] = append(res.Fields[v.Field], v.Message)
		res.Size++
	}
	return res
}

// Validator checks raw input by building a T through its factory and
// evaluating the rule table for the requested groups.
type Validator[T any] struct {
	factory Factory[T]
	rules   RuleSet[T]
}

func New[T any](factory Factory[T], rules RuleSet[T]) *Validator[T] {
	return &Validator[T]{factory: factory, rules: rules}
}

// Check validates raw input. User input defects come back in the Result;
// the error is only set when the factory cannot build a T at all.
func (v *Validator[T]) Check(data map[string]any, groups ...string) (Result, error) {
	entity, err := v.factory.Create(data)
	if err != nil {
		return Result{}, err
	}
	return v.CheckEntity(entity, groups...), nil
}

// CheckEntity validates an already constructed entity.
func (v *Validator[T]) CheckEntity(entity T, groups ...string) Result {
	return Fold(v.rules.Evaluate(entity, groups))
}

var std = validator.New()

// Is reports whether value satisfies a validator tag such as "required", "url" or "max=40".
func Is(value any, tag string) bool {
	return std.Var(value, tag) == nil
}
