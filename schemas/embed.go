// Package schemas holds the JSON Schemas shipped with the binary.
package schemas

import _ "embed"

// ContentImport is the schema of the bulk import file.
//
//go:embed content_import.schema.json
var ContentImport string
