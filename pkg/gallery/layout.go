package gallery

import (
	"github.com/matzehuels/contribwall/pkg/errors"
)

// Box is the pixel bounding rectangle assigned to one tile.
// All values are non-negative; Width and Height equal the avatar size.
type Box struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// LayoutConfig describes the canvas geometry shared by all sections of a run.
type LayoutConfig struct {
	CanvasWidth  int  // total canvas width in pixels
	AvatarSize   int  // tile edge length
	AvatarMargin int  // spacing around each tile
	NameHeight   int  // vertical room for the name label under each tile
	Round        bool // circular avatar masking (consumed by the avatar pipeline)
}

// ItemWidth is the horizontal footprint of one tile including margins.
func (c LayoutConfig) ItemWidth() int { return c.AvatarSize + 2*c.AvatarMargin }

// ItemHeight is the vertical footprint of one tile including margins and label.
func (c LayoutConfig) ItemHeight() int { return c.AvatarSize + 2*c.AvatarMargin + c.NameHeight }

// Columns is the number of tiles that fit in one row.
func (c LayoutConfig) Columns() int {
	if c.ItemWidth() <= 0 {
		return 0
	}
	return c.CanvasWidth / c.ItemWidth()
}

// Validate rejects configurations whose canvas cannot fit a single tile.
func (c LayoutConfig) Validate() error {
	if c.AvatarSize <= 0 {
		return errors.New(errors.ErrCodeInvalidLayout, "avatar size must be positive, got %d", c.AvatarSize)
	}
	if c.AvatarMargin < 0 || c.NameHeight < 0 {
		return errors.New(errors.ErrCodeInvalidLayout, "avatar margin and name height must be non-negative")
	}
	if c.Columns() < 1 {
		return errors.New(errors.ErrCodeInvalidLayout,
			"canvas width %d fits no %dpx tile (tile needs %dpx)", c.CanvasWidth, c.AvatarSize, c.ItemWidth())
	}
	return nil
}

// SectionHeight is the vertical extent of a section of n tiles.
// Empty sections have zero height.
func (c LayoutConfig) SectionHeight(n int) int {
	if n <= 0 {
		return 0
	}
	cols := c.Columns()
	rows := (n + cols - 1) / cols
	return c.ItemHeight() * rows
}

// boxAt computes the bounding box for the tile at index i, row-major.
func (c LayoutConfig) boxAt(i int) Box {
	cols := c.Columns()
	col := i % cols
	row := i / cols
	return Box{
		X:      c.AvatarMargin + col*(c.AvatarSize+c.AvatarMargin),
		Y:      c.AvatarMargin + row*(c.AvatarSize+c.AvatarMargin+c.NameHeight),
		Width:  c.AvatarSize,
		Height: c.AvatarSize,
	}
}

// Arrange assigns each user a bounding box in final order and returns the
// section's total height. The assignment is a pure function of (index,
// config): it must run after all filtering, sorting, and truncation, and
// before any avatar fetch.
func Arrange(users []User, c LayoutConfig) (int, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	for i := range users {
		users[i].Box = c.boxAt(i)
	}
	return c.SectionHeight(len(users)), nil
}

// Heights holds the computed per-section and total heights of a wall.
// These are precomputed so templates never evaluate arithmetic.
type Heights struct {
	Contributors  int
	Bots          int
	Collaborators int
	Total         int
}

// ArrangeAll lays out every section of a wall and returns the heights.
func ArrangeAll(s *Sections, c LayoutConfig) (Heights, error) {
	var h Heights
	var err error
	if h.Contributors, err = Arrange(s.Contributors, c); err != nil {
		return Heights{}, err
	}
	if h.Bots, err = Arrange(s.Bots, c); err != nil {
		return Heights{}, err
	}
	if h.Collaborators, err = Arrange(s.Collaborators, c); err != nil {
		return Heights{}, err
	}
	h.Total = h.Contributors + h.Bots + h.Collaborators
	return h, nil
}
