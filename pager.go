package keypager

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// Pager orchestrates one page fetch: ordering, key-set completion, boundary
// cursor, fetch direction, limit and lookahead.
type Pager[CursorType Cursor] struct {
	lookahead bool
	backward  bool
	limit     int
	cursor    CursorType
	sort      Orderings
	keySet    KeySet
	codec     *Codec
}

func NewPager[CursorType Cursor]() *Pager[CursorType] {
	return new(Pager[CursorType])
}

// WithLookahead enables lookahead pagination, which fetches one extra record
// to determine whether the current page is the last in the fetch direction.
//
// IMPORTANT:
// Cannot be used together with WithUnlimited() or WithLimit(NoLimit).
func (p *Pager[CursorType]) WithLookahead() *Pager[CursorType] {
	if p == nil {
		p = new(Pager[CursorType])
	}

	p.lookahead = true

	return p
}

// WithBackward makes Paginate fetch the page preceding the cursor boundary:
// the effective ordering is reversed for the query and boundary operators are
// flipped. Use BuildConnection or lo.Reverse to restore client order.
func (p *Pager[CursorType]) WithBackward() *Pager[CursorType] {
	if p == nil {
		p = new(Pager[CursorType])
	}

	p.backward = true

	return p
}

// WithUnlimited allows returning all records without a limit.
//
// IMPORTANT:
// Cannot be used together with WithLookahead.
func (p *Pager[CursorType]) WithUnlimited() *Pager[CursorType] {
	if p == nil {
		p = new(Pager[CursorType])
	}

	p.limit = NoLimit

	return p
}

// WithLimit sets the maximum number of returned records.
//
// IMPORTANT:
//   - NoLimit cannot be used together with WithLookahead.
//   - If the limit is not NoLimit, NormalizeLimit will be applied.
func (p *Pager[CursorType]) WithLimit(limit int) *Pager[CursorType] {
	if p == nil {
		p = new(Pager[CursorType])
	}

	if limit == NoLimit {
		return p.WithUnlimited()
	}
	p.limit = NormalizeLimit(limit)

	return p
}

// WithCursor sets the boundary cursor explicitly.
func (p *Pager[CursorType]) WithCursor(cursor CursorType) *Pager[CursorType] {
	if p == nil {
		p = new(Pager[CursorType])
	}

	p.cursor = cursor

	return p
}

// WithKeySet declares the entity's uniquely identifying columns. The client
// sort is completed with them, so the effective ordering is a strict total
// order regardless of duplicate sort values.
func (p *Pager[CursorType]) WithKeySet(keySet KeySet) *Pager[CursorType] {
	if p == nil {
		p = new(Pager[CursorType])
	}

	p.keySet = keySet

	return p
}

// WithCodec sets the codec used for tokens built from this pager's pages
// (see BuildConnection). Defaults to the unsigned codec.
func (p *Pager[CursorType]) WithCodec(codec *Codec) *Pager[CursorType] {
	if p == nil {
		p = new(Pager[CursorType])
	}

	p.codec = codec

	return p
}

// WithSubstitutedSort resets previous orderings and applies the provided ones.
func (p *Pager[CursorType]) WithSubstitutedSort(orderBy ...OrderBy) *Pager[CursorType] {
	if p == nil {
		p = new(Pager[CursorType])
	}

	p.sort = nil

	return p.WithSort(orderBy...)
}

// WithSort appends sort orderings without overwriting existing ones.
// Order is preserved as if calling:
//
//	OrderBy(o1).ThenBy(o2).ThenBy(o3)...
func (p *Pager[CursorType]) WithSort(orderBy ...OrderBy) *Pager[CursorType] {
	if p == nil {
		p = new(Pager[CursorType])
	}

	for _, o := range orderBy {
		idx := slices.IndexFunc(p.sort, func(processed OrderBy) bool {
			return processed.Column == o.Column
		})

		// Remove previous occurrence (avoid duplication).
		if idx != -1 {
			p.sort = slices.Delete(p.sort, idx, idx+1)
		}

		p.sort = append(p.sort, o)
	}

	return p
}

// Paginate applies pagination to the dataset. Returns an error if pagination
// cannot be applied.
func (p *Pager[CursorType]) Paginate(db *gorm.DB) (*gorm.DB, error) {
	if p == nil {
		p = new(Pager[CursorType])
	}

	err := p.validate()
	if err != nil {
		return nil, fmt.Errorf("cannot paginate: %w", err)
	}

	orderings := p.effectiveSort()
	if p.backward {
		db = orderings.Reversed().Apply(db)
		db = p.cursor.applyReversed(db)
	} else {
		db = orderings.Apply(db)
		db = p.cursor.Apply(db)
	}

	// Apply limit to the dataset. When lookahead is enabled, fetch one extra
	// record to determine if there is a further page.
	if p.limit != NoLimit {
		db = db.Limit(p.GetDatasetLimit())
	}

	return db, nil
}

// GetSort returns the client-declared orderings as-is, without key-set completion.
func (p *Pager[CursorType]) GetSort() Orderings {
	if p == nil {
		return nil
	}

	return p.sort
}

// GetKeySet returns the declared key set.
func (p *Pager[CursorType]) GetKeySet() KeySet {
	if p == nil {
		return nil
	}

	return p.keySet
}

// effectiveSort returns the ordering actually applied to the dataset: the
// client sort completed with the key-set tie-breakers. With no declared sort
// it degenerates to pure key-set ordering.
func (p *Pager[CursorType]) effectiveSort() Orderings {
	if p == nil {
		return nil
	}

	if len(p.keySet) == 0 {
		return p.sort
	}

	return p.keySet.Complete(p.sort)
}

// IsUnlimited returns true if the limit equals NoLimit (unbounded number of records).
func (p *Pager[CursorType]) IsUnlimited() bool {
	if p == nil {
		return false
	}

	return p.limit == NoLimit
}

// IsLookahead returns true if lookahead pagination is enabled.
func (p *Pager[CursorType]) IsLookahead() bool {
	if p == nil {
		return false
	}

	return p.lookahead
}

// IsBackward returns true if the pager fetches the page preceding the cursor.
func (p *Pager[CursorType]) IsBackward() bool {
	if p == nil {
		return false
	}

	return p.backward
}

// GetLimit returns the limit as it is stored in Pager.
// The return value is >= 0. Returning NoLimit is equivalent to no limit.
func (p *Pager[CursorType]) GetLimit() int {
	if p == nil {
		return 0
	}

	return p.limit
}

// GetCursor returns the cursor stored in Pager as-is.
func (p *Pager[CursorType]) GetCursor() CursorType {
	if p == nil {
		return lo.Empty[CursorType]()
	}

	return p.cursor
}

// GetCodec returns the pager's codec, falling back to the unsigned default.
func (p *Pager[CursorType]) GetCodec() *Codec {
	if p == nil || p.codec == nil {
		return _defaultCodec
	}

	return p.codec
}

// GetDatasetLimit returns the limit adjusted for lookahead:
//   - if Lookahead = true → GetLimit() + 1
//   - if Lookahead = false → GetLimit()
func (p *Pager[CursorType]) GetDatasetLimit() int {
	limit := p.GetLimit()
	isLookahead := p.IsLookahead()

	return lo.Ternary(isLookahead, limit+1, limit)
}

func (p *Pager[_]) validate() error {
	if p == nil {
		return fmt.Errorf("pager is nil")
	}

	if p.limit == NoLimit && p.lookahead {
		return fmt.Errorf("cannot apply lookahead to unlimited paging")
	}

	if len(p.keySet) > 0 {
		if err := p.keySet.validate(); err != nil {
			return err
		}
	}

	orderings := p.effectiveSort()
	if err := orderings.validate(); err != nil {
		return err
	}

	return p.cursor.validate(orderings, p.backward)
}

// IsLastPage returns true if the result set is the last page of the dataset
// in the fetch direction.
//
// The last page is determined by one of two conditions:
//  1. The number of returned records is less than Limit.
//  2. Lookahead = true and the number of returned records is less than or equal to Limit.
//
// In these cases, return the result set unchanged with an empty token to
// signal the end of the dataset to the client.
func IsLastPage[CursorType Cursor, T any](initialPager *Pager[CursorType], resultSet []T) bool {
	return len(resultSet) < initialPager.limit ||
		(initialPager.lookahead && len(resultSet) <= initialPager.limit)
}

// TrimResultSet trims the result set to what should be returned to the client.
//
// If lookahead = true, drop the last element before returning. Suppose
// resultSet = [a, b, c].
//
//   - With lookahead → resultSet becomes [a, b].
//   - Without lookahead → resultSet remains unchanged.
//
// This enables building pagination based on a STRICT comparison with the
// last element of the result set.
func TrimResultSet[CursorType Cursor, T any](initialPager *Pager[CursorType], resultSet []T) []T {
	if initialPager.lookahead {
		resultSet = resultSet[:len(resultSet)-1]
	}

	return resultSet
}
