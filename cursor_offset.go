package keypager

import (
	"fmt"
	"strconv"

	"gorm.io/gorm"
)

// OffsetCursor is used when an API exposes cursor tokens but only
// LIMIT/OFFSET pagination is available underneath.
//
// It implements Cursor and generates a token based on the last offset within
// the dataset.
type OffsetCursor struct {
	offset int
}

func NewOffsetCursor(offset int) *OffsetCursor {
	return &OffsetCursor{
		offset: offset,
	}
}

// DecodeOffsetCursor attempts to parse an unsigned opaque token into *OffsetCursor.
// Use Codec.DecodeOffsetCursor for signed tokens.
func DecodeOffsetCursor(token string) (*OffsetCursor, error) {
	return _defaultCodec.DecodeOffsetCursor(token)
}

// DecodeOffsetCursor attempts to parse an opaque token into *OffsetCursor
// using the codec's signature settings.
func (c *Codec) DecodeOffsetCursor(token string) (*OffsetCursor, error) {
	if len(token) == 0 {
		return nil, nil
	}

	offset, err := c.DecodeOffset(token)
	if err != nil {
		return nil, err
	}

	return &OffsetCursor{
		offset: offset,
	}, nil
}

// ToSQL returns the string form of the numeric offset value.
//
// Usage:
//
//	query := fmt.Sprintf("SELECT * FROM table OFFSET %s", p.ToSQL())
func (p *OffsetCursor) ToSQL() string {
	return strconv.Itoa(p.GetOffset())
}

// String - implements fmt.Stringer. Produces an unsigned token.
func (p *OffsetCursor) String() string {
	if p.IsEmpty() {
		return ""
	}

	return _defaultCodec.EncodeOffset(p.offset)
}

// IsEmpty - implements Cursor.
func (p *OffsetCursor) IsEmpty() bool {
	return p == nil || p.offset == 0
}

// Apply - implements Cursor. Applies the offset to a gorm query.
func (p *OffsetCursor) Apply(db *gorm.DB) *gorm.DB {
	return db.Offset(p.GetOffset())
}

// applyReversed - implements Cursor. Unreachable: validate rejects backward
// fetches for offset cursors.
func (p *OffsetCursor) applyReversed(db *gorm.DB) *gorm.DB {
	return p.Apply(db)
}

// GetOffset returns the numeric offset value.
func (p *OffsetCursor) GetOffset() int {
	if p != nil {
		return p.offset
	}

	return 0
}

// WithOffset sets the numeric offset value and returns the cursor.
func (p *OffsetCursor) WithOffset(offset int) *OffsetCursor {
	if p == nil {
		p = new(OffsetCursor)
	}

	p.offset = offset

	return p
}

// validate - implements Cursor. An offset has no meaningful reverse form.
func (p *OffsetCursor) validate(_ Orderings, backward bool) error {
	if backward {
		return fmt.Errorf("offset cursor does not support backward pagination")
	}

	return nil
}

var (
	_ Cursor       = (*OffsetCursor)(nil)
	_ fmt.Stringer = (*OffsetCursor)(nil)
)

// NextPageOffsetCursor builds an offset cursor for the next page of the dataset.
func NextPageOffsetCursor[T any](
	initialPager *Pager[*OffsetCursor],
	resultSet []T,
) ([]T, *OffsetCursor, error) {
	err := initialPager.validate()
	if err != nil {
		return nil, nil, fmt.Errorf("cannot build next page offset cursor: %w", err)
	}

	if IsLastPage(initialPager, resultSet) {
		return resultSet, nil, nil
	}
	resultSet = TrimResultSet(initialPager, resultSet)

	return resultSet,
		&OffsetCursor{
			offset: initialPager.cursor.GetOffset() + len(resultSet),
		},
		nil
}
