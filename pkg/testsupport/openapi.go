package testsupport

import (
	"embed"
	"io/fs"
)

//go:embed testdata/*.yaml
var fixtures embed.FS

// ProfileDocumentName locates the user profile OpenAPI fixture inside
// Fixtures.
const ProfileDocumentName = "testdata/profile.openapi.yaml"

// Fixtures exposes the embedded OpenAPI fixtures for fs-backed loaders.
func Fixtures() fs.FS {
	return fixtures
}
