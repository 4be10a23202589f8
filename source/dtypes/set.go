package dtypes

import (
	"fmt"
	"sort"
)

type Set[E comparable] map[E]struct{}

func MakeFromSlice[E comparable](slice []E) Set[E] {
	S := Set[E]{}
	for _, v := range slice {
		S.Add(v)
	}
	return S
}

func (S Set[E]) String() string {
	result := "{"
	sep := ""
	for e := range S {
		result = result + sep + fmt.Sprintf("%v", e)
		sep = ", "
	}
	return result + "}"
}

func (S Set[E]) ToSlice() []E {
	result := []E{}
	for e := range S {
		result = append(result, e)
	}
	return result
}

// For error messages, where map iteration order would make the output twitchy.
func (S Set[E]) ToSortedSlice(less func(a, b E) bool) []E {
	result := S.ToSlice()
	sort.Slice(result, func(i, j int) bool { return less(result[i], result[j]) })
	return result
}

func (S Set[E]) IsEmpty() bool {
	return len(S) == 0
}

func (S Set[E]) Add(e E) Set[E] {
	S[e] = struct{}{}
	return S
}

func (S Set[E]) AddSet(T Set[E]) Set[E] {
	for e := range T {
		S.Add(e)
	}
	return S
}

func (S Set[E]) SubtractSet(T Set[E]) Set[E] {
	for e := range T {
		delete(S, e)
	}
	return S
}

func (S Set[E]) OverlapsWith(T Set[E]) bool {
	for e := range T {
		if S.Contains(e) {
			return true
		}
	}
	return false
}

func (S Set[E]) Contains(e E) bool {
	_, found := S[e]
	return found
}

func (S Set[E]) Equals(T Set[E]) bool {
	if len(S) != len(T) {
		return false
	}
	for e := range T {
		if !S.Contains(e) {
			return false
		}
	}
	return true
}

func (S Set[E]) GetArbitraryElement() (E, bool) {
	var result E
	var ok bool
	for e := range S { // There should be a less clumsy way to do this but ...
		result = e
		ok = true
		break
	}
	return result, ok
}
