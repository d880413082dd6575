package ports

// ScriptSource supplies raw script text to the parsing pipeline.
// Acquiring the text (file, embed, network) is the host's concern; the core
// only ever sees the string.
type ScriptSource interface {
	// Read returns the raw script text and a human-readable origin label
	// (typically a file path) used in logs.
	Read() (source string, origin string, err error)
}
