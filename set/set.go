// Package set provides primitives for inserting distinct values into ordered sets.
package set

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// Slice must be sorted in ascending order.
type Slice[T constraints.Ordered] []T

// Of returns the distinct values of xs as a Slice; xs is not modified.
func Of[T constraints.Ordered](xs ...T) Slice[T] {
	a := make(Slice[T], 0, len(xs))
	for _, x := range xs {
		a.Insert(x)
	}
	return a
}

// Insert x in place if not exists; returns x index and true if inserted.
// The slice must be sorted in ascending order.
func (a *Slice[T]) Insert(x T) (i int, ok bool) {
	i, found := a.Search(x)
	if ok = !found; ok {
		*a = upsert(*a, x, i, ok)
	}
	return
}

// Search returns the index x is at, or would be inserted at, and whether it exists.
func (a Slice[T]) Search(x T) (i int, found bool) {
	i = sort.Search(len(a), func(i int) bool { return a[i] >= x })
	return i, i < len(a) && a[i] == x
}

func (a Slice[T]) Has(x T) bool {
	_, found := a.Search(x)
	return found
}

func upsert[T any](a []T, x T, i int, ok bool) []T {
	if ok {
		a = append(a, *new(T))
		copy(a[i+1:], a[i:])
	}
	a[i] = x
	return a
}

// Simple is always strictly ordered by its indices, given as [0 .. N-1].
// Paired with a Slice, it holds values in the order of the Slice's keys.
type Simple[T any] []T

// Upsert inserts x at i if ok; otherwise, updates i to x.
func (a *Simple[T]) Upsert(x T, i int, ok bool) { *a = upsert(*a, x, i, ok) }

// Filter without allocating.
func Filter[T constraints.Ordered](a *[]T) {
	b := Slice[T]((*a)[:0])
	for _, x := range *a {
		b.Insert(x)
	}
	*a = b
}
