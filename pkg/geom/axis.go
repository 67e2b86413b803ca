package geom

import "strings"

// Principal axis unit vectors.
var (
	AxisX = Vec3{1, 0, 0}
	AxisY = Vec3{0, 1, 0}
	AxisZ = Vec3{0, 0, 1}
)

// axisNames maps axis tokens accepted by the grammar to direction vectors.
// The two-letter diagonals follow the original CadQuery vocabulary:
// they name the diagonal in that coordinate plane, not a pair of axes.
var axisNames = map[string]Vec3{
	"X":  AxisX,
	"Y":  AxisY,
	"Z":  AxisZ,
	"XY": {1, 1, 0},
	"XZ": {1, 0, 1},
	"YZ": {0, 1, 1},
}

// LookupAxis resolves an axis token (case-insensitive) to its direction
// vector. The second result is false for tokens outside the vocabulary.
func LookupAxis(name string) (Vec3, bool) {
	v, ok := axisNames[strings.ToUpper(name)]
	return v, ok
}

// viewNames maps named-view tokens to the outward view direction.
// A named view selects the extremal elements along this vector,
// so "top" is equivalent to ">Z" and "front" to ">(0,-1,0)".
var viewNames = map[string]Vec3{
	"front":  {0, -1, 0},
	"back":   {0, 1, 0},
	"left":   {-1, 0, 0},
	"right":  {1, 0, 0},
	"top":    {0, 0, 1},
	"bottom": {0, 0, -1},
}

// LookupView resolves a named view (case-insensitive) to its direction.
func LookupView(name string) (Vec3, bool) {
	v, ok := viewNames[strings.ToLower(name)]
	return v, ok
}
