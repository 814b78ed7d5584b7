package openapi

import (
	"embed"
	"io/fs"
)

// ContactOperationID names the submit operation declared by the embedded
// contact schema.
const ContactOperationID = "contact:submit"

const contactSchemaPath = "schemas/contact.yaml"

//go:embed schemas/*.yaml
var schemaFS embed.FS

// ContactFS returns the filesystem holding the embedded schemas.
func ContactFS() fs.FS {
	return schemaFS
}

// ContactSource points at the embedded contact schema inside ContactFS.
func ContactSource() Source {
	return SourceFromFS(contactSchemaPath)
}
