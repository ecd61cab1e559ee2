package keypager

import (
	"fmt"

	"github.com/samber/lo"
)

// PageInfo is the boundary metadata of one fetched page.
type PageInfo struct {
	// HasNextPage reports whether rows exist past EndCursor.
	HasNextPage bool `json:"hasNextPage"`
	// HasPreviousPage reports whether rows exist before StartCursor.
	HasPreviousPage bool `json:"hasPreviousPage"`
	// StartCursor is the cursor of the first returned row.
	StartCursor string `json:"startCursor,omitempty"`
	// EndCursor is the cursor of the last returned row.
	EndCursor string `json:"endCursor,omitempty"`
}

// Edge is one returned row together with the cursor locating it.
type Edge[T any] struct {
	Node   T      `json:"node"`
	Cursor string `json:"cursor"`
}

// Connection is a cursor-style page: edges with per-row cursors plus PageInfo.
// Regardless of fetch direction, edges are in the client-declared sort order.
type Connection[T any] struct {
	Edges    []Edge[T] `json:"edges"`
	PageInfo PageInfo  `json:"pageInfo"`
	// Total number of rows in the dataset. Optional, filled by the caller.
	Total int64 `json:"total,omitempty"`
}

// Nodes returns the edge nodes in page order.
func (c *Connection[T]) Nodes() []T {
	if c == nil {
		return nil
	}

	return lo.Map(c.Edges, func(edge Edge[T], _ int) T {
		return edge.Node
	})
}

// PaginationResult is a generic paginated result container for the simple
// token-in/token-out surface (offset style included).
type PaginationResult[T any, CursorType Cursor] struct {
	// Items result elements.
	Items []T
	// Total number of elements.
	Total int64
	// AppliedLimit effective limit used for the query.
	AppliedLimit int
	// NextPageToken token for the next page.
	NextPageToken CursorType
}

// BuildConnection assembles a Connection from a raw result set fetched via
// initialPager.Paginate. It trims the lookahead row, restores client order
// for backward fetches, builds per-edge cursors with the pager's codec and
// computes both has-more flags.
//
// The getters must cover every column of the effective ordering, key-set
// columns included.
func BuildConnection[T any](
	initialPager *Pager[*KeysetCursor],
	resultSet []T,
	getters Getters[T],
) (*Connection[T], error) {
	err := initialPager.validate()
	if err != nil {
		return nil, fmt.Errorf("cannot build connection: %w", err)
	}

	lastPage := IsLastPage(initialPager, resultSet)

	// On the last page the lookahead row never arrived: nothing to trim.
	rows := resultSet
	if !lastPage {
		rows = TrimResultSet(initialPager, rows)
	}

	// A backward fetch runs on the reversed ordering; un-reverse so the page
	// reads in the declared sort order. Copy to keep the caller's slice intact.
	if initialPager.IsBackward() {
		rows = lo.Reverse(append([]T(nil), rows...))
	}

	codec := initialPager.GetCodec()
	orderings := initialPager.effectiveSort()

	edges := make([]Edge[T], 0, len(rows))
	for _, row := range rows {
		cursor, err := cursorForRow(orderings, getters, row)
		if err != nil {
			return nil, fmt.Errorf("cannot build connection: %w", err)
		}

		edges = append(edges, Edge[T]{
			Node:   row,
			Cursor: codec.EncodeCursor(cursor),
		})
	}

	info := PageInfo{}
	if len(edges) > 0 {
		info.StartCursor = edges[0].Cursor
		info.EndCursor = edges[len(edges)-1].Cursor
	}

	// In the fetch direction the lookahead answers "is there more"; in the
	// opposite direction the presence of a boundary cursor does: we only ever
	// land mid-dataset by following one.
	boundaryPresent := !initialPager.GetCursor().IsEmpty()
	if initialPager.IsBackward() {
		info.HasPreviousPage = !lastPage
		info.HasNextPage = boundaryPresent
	} else {
		info.HasNextPage = !lastPage
		info.HasPreviousPage = boundaryPresent
	}

	return &Connection[T]{
		Edges:    edges,
		PageInfo: info,
	}, nil
}

// BuildOffsetPage assembles an offset-style page: trimmed nodes plus the next
// page token. Offset pages carry no per-row cursors.
func BuildOffsetPage[T any](
	initialPager *Pager[*OffsetCursor],
	resultSet []T,
) (*PaginationResult[T, *OffsetCursor], error) {
	items, nextCursor, err := NextPageOffsetCursor(initialPager, resultSet)
	if err != nil {
		return nil, fmt.Errorf("cannot build offset page: %w", err)
	}

	return &PaginationResult[T, *OffsetCursor]{
		Items:         items,
		AppliedLimit:  initialPager.GetLimit(),
		NextPageToken: nextCursor,
	}, nil
}
