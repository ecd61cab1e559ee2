package keypager

import (
	"fmt"
	"slices"
)

// KeySet is the ordered set of columns that uniquely identifies a row of the
// paginated entity. It is declared once per entity and never varies between
// requests.
//
// Any client sort is completed with the key-set columns as final tie-breakers,
// so the effective ordering is always a strict total order and two rows can
// never compare equal on the full column list.
type KeySet []string

func NewKeySet(columns ...string) KeySet {
	return KeySet(columns)
}

func (k KeySet) validate() error {
	if len(k) == 0 {
		return fmt.Errorf("empty key set")
	}

	for i, column := range k {
		if err := validateColumnName(column); err != nil {
			return fmt.Errorf("key set: %w", err)
		}

		if slices.Contains(k[:i], column) {
			return fmt.Errorf("key set contains duplicate column '%s'", column)
		}
	}

	return nil
}

// Complete returns the effective ordering for a client sort: the sort columns
// in their declared order, followed by every key-set column the sort does not
// mention. Appended key-set columns are ascending; a key-set column already
// present in the sort keeps the direction the client asked for.
//
// An empty sort degenerates to pure key-set ordering.
func (k KeySet) Complete(sort Orderings) Orderings {
	ret := make(Orderings, 0, len(sort)+len(k))
	ret = append(ret, sort...)

	for _, column := range k {
		covered := slices.ContainsFunc(sort, func(o OrderBy) bool {
			return o.Column == column
		})
		if covered {
			continue
		}

		ret = append(ret, OrderBy{
			Column:    column,
			Direction: DirectionASC,
		})
	}

	return ret
}

// Covers reports whether every key-set column appears in the orderings.
// A completed ordering always covers its key set.
func (k KeySet) Covers(orderings Orderings) bool {
	for _, column := range k {
		found := slices.ContainsFunc(orderings, func(o OrderBy) bool {
			return o.Column == column
		})
		if !found {
			return false
		}
	}

	return true
}
