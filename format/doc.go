// Package format names the document formats dotpath reads and writes.
//
// # Usage
//
//	f, err := format.ParseFormat("yaml")
//	suffix := f.Suffix() // ".yaml"
//
// # Related Packages
//
//   - github.com/signadot/dotpath/ir - Decode and Encode trees
package format
