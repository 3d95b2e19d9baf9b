// 17 Oct 2026

package chaintype

import (
	"strings"

	"github.com/andrew-torda/chainfilter/pkg/record"
)

// Filter is anything that passes or fails a structure. *Matcher is
// one.
type Filter interface {
	Match(rec record.Structure) (bool, error)
}

// FilterFunc lets an ordinary function be a Filter.
type FilterFunc func(rec record.Structure) (bool, error)

func (f FilterFunc) Match(rec record.Structure) (bool, error) { return f(rec) }

type not struct{ f Filter }

func (n not) Match(rec record.Structure) (bool, error) {
	ok, err := n.f.Match(rec)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

func (n not) String() string { return "not " + name(n.f) }

// Not inverts a filter. An error is still an error.
func Not(f Filter) Filter { return not{f} }

type and []Filter

func (a and) Match(rec record.Structure) (bool, error) {
	for _, f := range a {
		if ok, err := f.Match(rec); err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func (a and) String() string { return join(a, " and ") }

// And passes a structure if every filter does. It stops at the first
// failure, so later filters may not be called.
func And(fs ...Filter) Filter { return and(fs) }

type or []Filter

func (o or) Match(rec record.Structure) (bool, error) {
	for _, f := range o {
		ok, err := f.Match(rec)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func (o or) String() string { return join(o, " or ") }

// Or passes a structure if any filter does.
func Or(fs ...Filter) Filter { return or(fs) }

// name gives a filter's String, if it has one.
func name(f Filter) string {
	if s, ok := f.(interface{ String() string }); ok {
		return s.String()
	}
	return "filter"
}

func join(fs []Filter, sep string) string {
	s := make([]string, len(fs))
	for i, f := range fs {
		s[i] = name(f)
	}
	return "(" + strings.Join(s, sep) + ")"
}

// Name is how a filter is labelled in output.
func Name(f Filter) string { return name(f) }
