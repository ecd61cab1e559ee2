package keypager

import "fmt"

// RawPager is intended for API payloads. For proper code generation, inline it:
//
//	type MyFilter struct {
//	    Paging RawPager `json:",inline"`
//	}
type RawPager struct {
	// Limit - maximum number of records to return in the response.
	Limit int `json:"limit"`
	// StartToken - opaque cursor token obtained via Cursor.String().
	// If empty, the first page with Limit records is returned.
	StartToken string `json:"startToken"`
}

// Decode converts RawPager into *Pager[*KeysetCursor], normalizing Limit and
// validating StartToken. Returns *Pager[*KeysetCursor] with WithSort applied.
func (p RawPager) Decode(orderBy ...OrderBy) (*Pager[*KeysetCursor], error) {
	return DecodePager(p.Limit, p.StartToken, orderBy...)
}

// DecodeOffset converts RawPager into *Pager[*OffsetCursor], normalizing Limit
// and validating StartToken. Returns *Pager[*OffsetCursor] with WithSort applied.
func (p RawPager) DecodeOffset(orderBy ...OrderBy) (*Pager[*OffsetCursor], error) {
	return DecodeOffsetPager(p.Limit, p.StartToken, orderBy...)
}

// DecodePager decodes a keyset cursor token into *Pager.
func DecodePager(limit int, rawStartToken string, orderBy ...OrderBy) (*Pager[*KeysetCursor], error) {
	cursor, err := DecodeCursor(rawStartToken)
	if err != nil {
		return nil, err
	}

	return (&Pager[*KeysetCursor]{
		cursor: cursor,
	}).WithSubstitutedSort(orderBy...).WithLimit(limit), nil
}

// DecodeOffsetPager decodes an offset cursor token into *Pager.
func DecodeOffsetPager(limit int, rawStartToken string, orderBy ...OrderBy) (*Pager[*OffsetCursor], error) {
	cursor, err := DecodeOffsetCursor(rawStartToken)
	if err != nil {
		return nil, err
	}

	return (&Pager[*OffsetCursor]{
		cursor: cursor,
	}).WithSubstitutedSort(orderBy...).WithLimit(limit), nil
}

// CursorArgs carries cursor-style paging arguments: {first, after} for forward
// pages and {last, before} for backward pages.
type CursorArgs struct {
	// First - maximum number of records, counting forward from After.
	First *int `json:"first,omitempty"`
	// After - boundary token: return records strictly after it.
	After string `json:"after,omitempty"`
	// Last - maximum number of records, counting backward from Before.
	Last *int `json:"last,omitempty"`
	// Before - boundary token: return records strictly before it.
	Before string `json:"before,omitempty"`
}

// Decode converts CursorArgs into a lookahead *Pager[*KeysetCursor] bound to
// the given key set and client sort. Unsigned tokens.
func (a CursorArgs) Decode(keySet KeySet, orderBy ...OrderBy) (*Pager[*KeysetCursor], error) {
	return a.DecodeWith(nil, keySet, orderBy...)
}

// DecodeWith is Decode with an explicit codec, for signed tokens.
//
// Mixing the two directions is rejected: any forward argument combined with
// any backward one ('first'+'last', 'after'+'before', 'last'+'after',
// 'first'+'before') is a caller bug rather than a page we could guess at.
func (a CursorArgs) DecodeWith(codec *Codec, keySet KeySet, orderBy ...OrderBy) (*Pager[*KeysetCursor], error) {
	if a.First != nil && a.Last != nil {
		return nil, fmt.Errorf("cannot combine 'first' with 'last'")
	}
	if a.After != "" && a.Before != "" {
		return nil, fmt.Errorf("cannot combine 'after' with 'before'")
	}
	if a.Last != nil && a.After != "" {
		return nil, fmt.Errorf("cannot combine 'last' with 'after'")
	}
	if a.First != nil && a.Before != "" {
		return nil, fmt.Errorf("cannot combine 'first' with 'before'")
	}

	backward := a.Last != nil || a.Before != ""

	limit := DefaultLimit
	if a.First != nil {
		limit = *a.First
	} else if a.Last != nil {
		limit = *a.Last
	}

	token := a.After
	if backward {
		token = a.Before
	}

	cursor, err := codec.DecodeCursor(token)
	if err != nil {
		return nil, err
	}

	pager := (&Pager[*KeysetCursor]{
		cursor: cursor,
	}).
		WithKeySet(keySet).
		WithSubstitutedSort(orderBy...).
		WithLimit(limit).
		WithLookahead().
		WithCodec(codec)

	if backward {
		pager = pager.WithBackward()
	}

	return pager, nil
}

// OffsetArgs carries offset-style paging arguments {limit, offset}.
type OffsetArgs struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// Decode converts OffsetArgs into a lookahead *Pager[*OffsetCursor].
func (a OffsetArgs) Decode(orderBy ...OrderBy) (*Pager[*OffsetCursor], error) {
	return (&Pager[*OffsetCursor]{
		cursor: NewOffsetCursor(a.Offset),
	}).WithSubstitutedSort(orderBy...).WithLimit(a.Limit).WithLookahead(), nil
}
