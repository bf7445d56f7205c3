// Package gallery implements the data model and pure algorithms of the
// contributor wall: normalizing raw API records into categorized users,
// arranging each category as a grid of avatar tiles, and fingerprinting the
// result for change detection.
//
// Everything here is deterministic and free of I/O. Positions are a pure
// function of (index, layout config), fixed before any avatar is fetched, so
// network timing can never perturb the rendered grid.
package gallery
