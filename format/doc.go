// Package format names the two serialization formats handled by this
// module, XML and JSON.
//
// The Format type is used by the command line tool to select input and
// output formats, and by the transform package to tell rules which
// direction a traversal is headed.
package format
