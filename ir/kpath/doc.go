// Package kpath provides parsing and rendering of dotted key paths.
//
// A key path addresses a location in a tree of objects and arrays:
//   - a.b      - object field "b" of object field "a"
//   - a[0]     - element 0 of the array under "a"
//   - a[-1]    - last element, same as a[last]
//   - a[first] - element 0
//   - a[x.y]   - object field "x.y" (brackets quote arbitrary field names)
//
// The array operators -, prepend and >> (insert at front) and +, append and
// << (insert at back) are ordinary field segments which the engine in
// package ir interprets when the addressed container is an array.
//
// # Usage
//
//	p, err := kpath.Parse("users[0].name")
//	last := p.Last()
//	parent := p.Parent()
//	s := kpath.Build(p) // "users[0].name"
//
// A Path may be passed wherever a path string is accepted; it bypasses
// string parsing entirely.
//
// # Related Packages
//
//   - github.com/signadot/dotpath/ir - trees and the path engine
package kpath
