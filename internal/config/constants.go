package config

// SourceFileExt is the extension of declaration files.
const SourceFileExt = ".velt"

// DefaultMaxDepth is the default instantiation depth budget threaded through
// the resolution engine. Self-referential conditional aliases exhaust it
// instead of recursing without bound.
const DefaultMaxDepth = 500

// Built-in type names
const (
	NeverTypeName   = "never"
	UnknownTypeName = "unknown"
)
