// Package version contains information on the current version of the
// module. It is split out so that command binaries can report it without
// importing the engine packages themselves.
package version

// Current is the string representing the current version of this parser
// generator runtime.
const Current = "0.1.0"
