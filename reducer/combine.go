// Package reducer builds store reducers out of smaller ones.
//
// Combine assembles a reducer for a struct state from one reducer per field:
//
//	type State struct {
//		Count int
//		Log   []string
//	}
//
//	r, err := reducer.Combine(
//		reducer.Field("Count", func(s *State) *int { return &s.Count }, countReducer),
//		reducer.Field("Log", func(s *State) *[]string { return &s.Log }, logReducer),
//	)
//
// The composition is checked once, when Combine is called.
package reducer

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/tailored-agentic-units/reduks/store"
)

// Slice reduces one field of S. Create slices with Field.
type Slice[S, A any] struct {
	name      string
	fieldType reflect.Type
	lens      func(*S) any
	apply     func(prior S, action A, next *S)
}

func (s Slice[S, A]) Name() string {
	return s.name
}

// Field creates a Slice for the field called name. lens must return a
// pointer to that field and reduce computes its next value from the whole
// prior state.
func Field[S, A, F any](name string, lens func(*S) *F, reduce func(S, A) F) Slice[S, A] {
	sl := Slice[S, A]{
		name:      name,
		fieldType: reflect.TypeFor[F](),
	}
	if lens == nil || reduce == nil {
		return sl
	}

	sl.lens = func(s *S) any { return lens(s) }
	sl.apply = func(prior S, action A, next *S) {
		*lens(next) = reduce(prior, action)
	}
	return sl
}

// Combine returns a reducer that runs every slice against the same prior
// state and writes each result into its field of a copy of that state.
//
// S must be a struct and every exported field must be covered by exactly one
// slice whose type matches the field.
func Combine[S, A any](parts ...Slice[S, A]) (store.Reducer[S, A], error) {
	if err := validate(parts); err != nil {
		return nil, err
	}

	parts = slices.Clone(parts)
	return func(state S, action A) S {
		next := state
		for _, part := range parts {
			part.apply(state, action, &next)
		}
		return next
	}, nil
}

// MustCombine is like Combine but panics on an invalid composition.
func MustCombine[S, A any](parts ...Slice[S, A]) store.Reducer[S, A] {
	r, err := Combine(parts...)
	if err != nil {
		panic(err)
	}
	return r
}

// Chain returns a reducer that applies reducers from left to right, each one
// receiving the state produced by the previous.
func Chain[S, A any](reducers ...store.Reducer[S, A]) store.Reducer[S, A] {
	reducers = slices.Clone(reducers)
	return func(state S, action A) S {
		for _, r := range reducers {
			state = r(state, action)
		}
		return state
	}
}

func validate[S, A any](parts []Slice[S, A]) error {
	st := reflect.TypeFor[S]()
	if st.Kind() != reflect.Struct {
		return fmt.Errorf("%w: state must be a struct, got %s", ErrInvalidComposition, st)
	}

	probe := reflect.New(st)
	seen := make(map[string]bool, len(parts))

	for _, part := range parts {
		if part.apply == nil {
			return fmt.Errorf("%w: slice %q has a nil lens or reducer", ErrInvalidComposition, part.name)
		}

		field, ok := st.FieldByName(part.name)
		if !ok || !field.IsExported() || len(field.Index) != 1 {
			return fmt.Errorf("%w: %s has no exported field %q", ErrInvalidComposition, st, part.name)
		}
		if field.Type != part.fieldType {
			return fmt.Errorf("%w: types did not match: field %s: %s, reducer: %s",
				ErrInvalidComposition, part.name, field.Type, part.fieldType)
		}
		if seen[part.name] {
			return fmt.Errorf("%w: field %q is reduced more than once", ErrInvalidComposition, part.name)
		}
		seen[part.name] = true

		target := reflect.ValueOf(part.lens(probe.Interface().(*S))).Pointer()
		if target != probe.Elem().Field(field.Index[0]).Addr().Pointer() {
			return fmt.Errorf("%w: lens for %q does not point at that field", ErrInvalidComposition, part.name)
		}
	}

	var expected, got []string
	for i := range st.NumField() {
		f := st.Field(i)
		if f.IsExported() {
			expected = append(expected, fmt.Sprintf("%s %s", f.Name, f.Type))
		}
	}
	for _, part := range parts {
		got = append(got, fmt.Sprintf("%s %s", part.name, part.fieldType))
	}
	if len(expected) != len(got) {
		slices.Sort(got)
		want := slices.Clone(expected)
		slices.Sort(want)
		return fmt.Errorf("%w: expected [%s], got [%s]", ErrInvalidComposition,
			strings.Join(want, ", "), strings.Join(got, ", "))
	}
	return nil
}
