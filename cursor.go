package keypager

import (
	"gorm.io/gorm"
)

type Cursor interface {
	String() string
	IsEmpty() bool
	Apply(*gorm.DB) *gorm.DB

	// applyReversed applies the boundary for a backward fetch: strict
	// operators flipped so the query seeks rows strictly before the boundary.
	applyReversed(*gorm.DB) *gorm.DB

	validate(orderings Orderings, backward bool) error
}
