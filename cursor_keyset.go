package keypager

import (
	"database/sql/driver"
	"fmt"

	"gorm.io/gorm"
)

// KeysetCursor is a pagination token marking the boundary row for the
// requested page. An empty cursor means the beginning of the dataset.
//
// IMPORTANT:
// The cursor MUST cover the entity's key-set columns, otherwise the boundary
// is ambiguous when sort values repeat. Pager.WithKeySet guarantees this by
// completing the client sort.
//
// A cursor is a compact list of conditions of the form:
//
//	[(C1, O1, V1), (C2, O2, V2)... (Cn, On, Vn)]
//
// The conditions are stored relative to the declared sort order ("strictly
// after" form); backward fetches flip them at query time.
type KeysetCursor struct {
	elements []CursorElement
}

func NewKeysetCursor(elements ...CursorElement) *KeysetCursor {
	return &KeysetCursor{
		elements: elements,
	}
}

// DecodeCursor attempts to parse an unsigned opaque token into *KeysetCursor.
// Use Codec.DecodeCursor for signed tokens.
func DecodeCursor(token string) (*KeysetCursor, error) {
	return _defaultCodec.DecodeCursor(token)
}

// DecodeCursor attempts to parse an opaque token into *KeysetCursor using the
// codec's signature settings.
func (c *Codec) DecodeCursor(token string) (*KeysetCursor, error) {
	if len(token) == 0 {
		return nil, nil
	}

	elems, err := c.DecodeElements(token)
	if err != nil {
		return nil, err
	}

	return &KeysetCursor{
		elements: elems,
	}, nil
}

// EncodeCursor encodes the cursor into an opaque token using the codec's
// signature settings.
func (c *Codec) EncodeCursor(cursor *KeysetCursor) string {
	return c.EncodeElements(cursor.GetElements())
}

// String - implements fmt.Stringer. Produces an unsigned token.
func (c *KeysetCursor) String() string {
	if c.IsEmpty() {
		return ""
	}

	return _defaultCodec.EncodeElements(c.elements)
}

// IsEmpty - implements Cursor.
func (c *KeysetCursor) IsEmpty() bool {
	return c == nil || len(c.elements) == 0
}

// GetElements returns the cursor's compact condition list.
//
// IMPORTANT:
// These conditions cannot be applied to the dataset directly: they are not a
// complete filter. Pagination inflates them into the full boundary predicate.
func (c *KeysetCursor) GetElements() []CursorElement {
	if c == nil {
		return nil
	}

	return c.elements
}

// WithElements sets the cursor's condition list manually.
func (c *KeysetCursor) WithElements(elements []CursorElement) *KeysetCursor {
	if c == nil {
		c = new(KeysetCursor)
	}

	c.elements = elements

	return c
}

// Apply - implements Cursor. Applies the "strictly after" boundary to a gorm query.
func (c *KeysetCursor) Apply(db *gorm.DB) *gorm.DB {
	exp := buildSeekPredicate(c.GetElements(), false).toGORMExpression()
	if exp == nil {
		return db
	}

	return db.Clauses(exp)
}

// applyReversed - implements Cursor. Applies the "strictly before" boundary.
func (c *KeysetCursor) applyReversed(db *gorm.DB) *gorm.DB {
	exp := buildSeekPredicate(c.GetElements(), true).toGORMExpression()
	if exp == nil {
		return db
	}

	return db.Clauses(exp)
}

// ToSQL returns the boundary as a raw SQL expression with placeholder values.
//
// Usage:
//
//	query := fmt.Sprintf("SELECT * FROM table WHERE %s", clause)
func (c *KeysetCursor) ToSQL() (string, []driver.Value) {
	if c.IsEmpty() {
		return "TRUE", nil
	}

	return buildSeekPredicate(c.elements, false).toSQLClause()
}

// validate - implements Cursor. An empty cursor is always valid. A non-empty
// cursor must mirror the effective ordering column by column, with operators
// matching each column's declared direction. A cursor replayed against a
// different sort therefore fails here whenever the mismatch is structural.
func (c *KeysetCursor) validate(orderings Orderings, _ bool) error {
	if c.IsEmpty() {
		return nil
	}

	if len(c.elements) != len(orderings) {
		return fmt.Errorf("cursor column number mismatch")
	}

	for i := range c.elements {
		cond := c.elements[i]
		orderBy := orderings[i]

		if cond.Column != orderBy.Column {
			return fmt.Errorf("unexpected cursor column '%s'", cond.Column)
		}

		if !cond.Operator.Valid() {
			return fmt.Errorf("invalid cursor operator '%s'", cond.Operator)
		} else if cond.Operator.ForOrdering() != orderBy.Direction {
			return fmt.Errorf("unexpected cursor operator '%s'", cond.Operator)
		}
	}

	return nil
}

var (
	_ Cursor       = (*KeysetCursor)(nil)
	_ fmt.Stringer = (*KeysetCursor)(nil)
)

// CursorElement is a triple (c, v, o) where:
//
//   - "c" - entity column.
//   - "v" - the boundary row's value for that column.
//   - "o" - the strict operator applied to the pair (c, v).
type CursorElement struct {
	Column   string   `json:"c"`
	Value    any      `json:"v"`
	Operator Operator `json:"o"`
}

// Getters maps column names to value extractors for the paginated model.
// List the columns pagination runs on, including the key-set columns.
// Example:
//
//	keypager.Getters[models.Task]{
//		"id":        func(t models.Task) any { return t.ID },
//		"completed": func(t models.Task) any { return t.Completed },
//	}
type Getters[T any] map[string]func(T) any

// cursorForRow builds the boundary cursor locating row under the given
// orderings. Elements are stored in the forward ("strictly after") form.
func cursorForRow[T any](orderings Orderings, getters Getters[T], row T) (*KeysetCursor, error) {
	elements := make([]CursorElement, 0, len(orderings))
	for _, orderBy := range orderings {
		getter, ok := getters[orderBy.Column]
		if !ok {
			return nil, fmt.Errorf("cannot find getter for column '%s' met in ordering", orderBy.Column)
		}

		elements = append(elements, CursorElement{
			Column:   orderBy.Column,
			Value:    getter(row),
			Operator: orderBy.Direction.ForOperator(),
		})
	}

	return &KeysetCursor{elements: elements}, nil
}

// NextPageCursor builds the cursor for the next page of the dataset from the
// last row of the current result set. Returns the trimmed result set and a
// nil cursor when the dataset is exhausted.
func NextPageCursor[T any](
	initialPager *Pager[*KeysetCursor],
	resultSet []T,
	getters Getters[T],
) ([]T, *KeysetCursor, error) {
	err := initialPager.validate()
	if err != nil {
		return nil, nil, fmt.Errorf("cannot build next page cursor: %w", err)
	}

	if IsLastPage(initialPager, resultSet) {
		return resultSet, nil, nil
	}
	resultSet = TrimResultSet(initialPager, resultSet)

	if len(resultSet) == 0 {
		return resultSet, nil, nil
	}

	cursor, err := cursorForRow(initialPager.effectiveSort(), getters, resultSet[len(resultSet)-1])
	if err != nil {
		return nil, nil, fmt.Errorf("cannot build next page cursor: %w", err)
	}

	return resultSet, cursor, nil
}

// PrevPageCursor builds the cursor locating the page before the current one.
// The returned cursor is meant to be passed as a "before" boundary to a
// backward pager. Returns the trimmed result set and a nil cursor when the
// dataset start is reached.
//
// For a backward pager the result set is the raw (reversed) row order as
// fetched; for a forward pager it is the client order.
func PrevPageCursor[T any](
	initialPager *Pager[*KeysetCursor],
	resultSet []T,
	getters Getters[T],
) ([]T, *KeysetCursor, error) {
	err := initialPager.validate()
	if err != nil {
		return nil, nil, fmt.Errorf("cannot build previous page cursor: %w", err)
	}

	if initialPager.IsBackward() {
		// The lookahead runs toward the dataset start here, so a short page
		// means there is nothing before this one.
		if IsLastPage(initialPager, resultSet) {
			return resultSet, nil, nil
		}
		resultSet = TrimResultSet(initialPager, resultSet)

		if len(resultSet) == 0 {
			return resultSet, nil, nil
		}

		// Backward fetches run on the reversed ordering, so the row adjacent
		// to the previous page is the last one before un-reversing, i.e. the
		// last element of the raw result set.
		cursor, err := cursorForRow(initialPager.effectiveSort(), getters, resultSet[len(resultSet)-1])
		if err != nil {
			return nil, nil, fmt.Errorf("cannot build previous page cursor: %w", err)
		}

		return resultSet, cursor, nil
	}

	// A forward fetch looks ahead toward the dataset end, which says nothing
	// about rows before the page. A page without a boundary cursor starts at
	// the dataset start, so nothing precedes it.
	if initialPager.GetCursor().IsEmpty() {
		return resultSet, nil, nil
	}

	if !IsLastPage(initialPager, resultSet) {
		resultSet = TrimResultSet(initialPager, resultSet)
	}

	if len(resultSet) == 0 {
		return resultSet, nil, nil
	}

	cursor, err := cursorForRow(initialPager.effectiveSort(), getters, resultSet[0])
	if err != nil {
		return nil, nil, fmt.Errorf("cannot build previous page cursor: %w", err)
	}

	return resultSet, cursor, nil
}
