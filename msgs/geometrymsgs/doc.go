// Package geometrymsgs holds geometry_msgs records: points, vectors,
// orientations and the poses, transforms and twists built from them.
//
// Every type encodes its fields in declaration order. Nested records are
// encoded inline with no extra framing.
package geometrymsgs
