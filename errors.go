package img2ascii

import "errors"

var (
	// ErrEmptyAlphabet is returned when an alphabet has no characters.
	ErrEmptyAlphabet = errors.New("alphabet is empty")

	// ErrInvalidTileSize is returned for zero or negative tile and cell
	// dimensions.
	ErrInvalidTileSize = errors.New("tile size must be positive")

	// ErrUnknownMetric is returned by ParseMetric for unrecognised names.
	ErrUnknownMetric = errors.New("unknown metric")

	// ErrUnknownPolicy is returned by ParsePolicy for unrecognised names.
	ErrUnknownPolicy = errors.New("unknown color policy")
)
