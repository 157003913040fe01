// Package geometry provides the planar primitives shared by every part of
// the mind-map engine: points, sizes, axis-aligned rectangles, cardinal
// directions and bearing math.
//
// # Coordinate System
//
// Coordinates are screen coordinates: X grows to the right and Y grows
// downward. Bearings returned by [AngleBetween] are measured clockwise from
// the positive X axis, so 90° points down and 270° points up.
//
// # Directions
//
// [Direction] is a closed enumeration of the four cardinal sides. The zero
// value [None] means "no annotation" and is never produced by
// [DirectionForAngle]. Stored side tokens and handle identifiers are turned
// back into directions with [ParseDirection], which reports unknown tokens
// as errors instead of silently dropping them.
//
//	d, err := geometry.ParseDirection("right-source") // Right, nil
//	d.Opposite()                                      // Left
//	geometry.DirectionForAngle(100)                   // Bottom
package geometry
