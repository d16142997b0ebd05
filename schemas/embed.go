// Package schemas carries the JSON Schema documents the service validates
// structured artifacts against, embedded so binaries need no file layout at
// runtime.
package schemas

import _ "embed"

//go:embed parsed_resume.schema.json
var parsedResume string

// ParsedResume returns the schema for resume parser output.
func ParsedResume() string {
	return parsedResume
}
