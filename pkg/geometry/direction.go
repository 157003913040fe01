package geometry

import (
	"strings"

	"github.com/matzehuels/mindgeo/pkg/errors"
)

// Direction is one of the four cardinal sides of a node.
type Direction uint8

const (
	// None means no side has been assigned.
	None Direction = iota
	Left
	Right
	Top
	Bottom
)

// Directions lists the valid sides in a stable order.
var Directions = []Direction{Left, Right, Top, Bottom}

// String returns the lower-case token used in snapshots.
func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	case None:
		return ""
	}
	return "invalid"
}

// Valid reports whether d is one of the four cardinal sides.
func (d Direction) Valid() bool {
	switch d {
	case Left, Right, Top, Bottom:
		return true
	default:
		return false
	}
}

// Horizontal reports whether d is Left or Right.
func (d Direction) Horizontal() bool { return d == Left || d == Right }

// Vertical reports whether d is Top or Bottom.
func (d Direction) Vertical() bool { return d == Top || d == Bottom }

// Opposite returns the facing side: left↔right, top↔bottom. None maps to None.
func (d Direction) Opposite() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Top:
		return Bottom
	case Bottom:
		return Top
	default:
		return None
	}
}

// Sign returns +1 for Right/Bottom and -1 for Left/Top, the sign of the
// offset along the direction's axis. None yields 0.
func (d Direction) Sign() float64 {
	switch d {
	case Right, Bottom:
		return 1
	case Left, Top:
		return -1
	default:
		return 0
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	if d != None && !d.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidDirection, "invalid direction value %d", uint8(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The empty string
// decodes to None.
func (d *Direction) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*d = None
		return nil
	}
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// handleRoles are the words a handle identifier may carry besides its side.
var handleRoles = map[string]bool{
	"source": true,
	"target": true,
	"handle": true,
	"src":    true,
	"dst":    true,
}

// ParseDirection interprets a stored side token or handle identifier.
//
// Accepted forms are a bare side ("left", "r"), or a side combined with a
// role using '-', '_' or ':' separators in either order ("right-source",
// "target_top", "handle:bottom"). Matching is case-insensitive. Tokens that
// name no side, or name two different sides, are reported as
// ErrCodeInvalidDirection.
func ParseDirection(token string) (Direction, error) {
	parts := strings.FieldsFunc(strings.ToLower(strings.TrimSpace(token)), func(r rune) bool {
		return r == '-' || r == '_' || r == ':' || r == ' '
	})

	found := None
	for _, p := range parts {
		if handleRoles[p] {
			continue
		}
		d, ok := sideWord(p)
		if !ok {
			return None, errors.New(errors.ErrCodeInvalidDirection, "unknown side token %q", token)
		}
		if found != None && found != d {
			return None, errors.New(errors.ErrCodeInvalidDirection, "ambiguous side token %q", token)
		}
		found = d
	}
	if found == None {
		return None, errors.New(errors.ErrCodeInvalidDirection, "no side in token %q", token)
	}
	return found, nil
}

func sideWord(w string) (Direction, bool) {
	switch w {
	case "left", "l", "west", "w":
		return Left, true
	case "right", "r", "east", "e":
		return Right, true
	case "top", "t", "up", "north", "n":
		return Top, true
	case "bottom", "b", "down", "south", "s":
		return Bottom, true
	}
	return None, false
}

// DirectionForAngle buckets a bearing into a side. Boundaries sit at
// 45°/135°/225°/315°: [315,45) is Right, [45,135) Bottom, [135,225) Left and
// [225,315) Top.
func DirectionForAngle(deg float64) Direction {
	deg = NormalizeAngle(deg)
	switch {
	case deg >= 315 || deg < 45:
		return Right
	case deg < 135:
		return Bottom
	case deg < 225:
		return Left
	default:
		return Top
	}
}

// DirectionBetween returns the side of from that faces to.
func DirectionBetween(from, to Point) Direction {
	return DirectionForAngle(AngleBetween(from, to))
}
