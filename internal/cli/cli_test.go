package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `
models:
  user:
    attributes:
      name:
        type: string
      age:
        type: int
        optional: true
    associations:
      posts:
        kind: many
        target: post
  post:
    attributes:
      title:
        type: string
`

// runCLI executes the root command with the given args and captures stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	flags = rootFlags{}

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// writeSchema writes the test schema to a temp file and returns its path.
func writeSchema(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "modelsafe.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testSchema), 0o644))
	return path
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "modelsafe v")
	assert.Contains(t, out, modulePath)
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()
	configDir := filepath.Join(dir, ".modelsafe")
	schemaPath := filepath.Join(dir, "modelsafe.yaml")

	out, err := runCLI(t, "--config-dir", configDir, "--schema", schemaPath, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "initialized successfully")

	assert.FileExists(t, filepath.Join(configDir, "config.yaml"))
	assert.FileExists(t, schemaPath)

	// Idempotent: a second init leaves existing files alone.
	_, err = runCLI(t, "--config-dir", configDir, "--schema", schemaPath, "init")
	require.NoError(t, err)
}

func TestInspectCommand(t *testing.T) {
	schemaPath := writeSchema(t)

	out, err := runCLI(t, "--schema", schemaPath, "inspect")
	require.NoError(t, err)
	assert.Contains(t, out, "user")
	assert.Contains(t, out, "posts: many of post")
	assert.Contains(t, out, "age: attr.Int (optional)")

	out, err = runCLI(t, "--schema", schemaPath, "--json", "inspect", "post")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "post"`)
	assert.NotContains(t, out, `"name": "user"`)
}

func TestValidateCommandValidDocument(t *testing.T) {
	schemaPath := writeSchema(t)
	docPath := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(docPath,
		[]byte(`{"name":"ada","posts":[{"title":"first"}]}`), 0o644))

	out, err := runCLI(t, "--schema", schemaPath, "validate", "user", docPath)
	require.NoError(t, err)
	assert.Contains(t, out, "ok")
}

func TestValidateCommandInvalidDocument(t *testing.T) {
	schemaPath := writeSchema(t)
	docPath := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(docPath, []byte(`{"age":"old"}`), 0o644))

	out, err := runCLI(t, "--schema", schemaPath, "validate", "user", docPath)
	assert.ErrorIs(t, err, errInvalidDocuments)
	assert.Contains(t, out, "invalid user")
	assert.Contains(t, out, "name: attribute.required")
	assert.Contains(t, out, "age: attribute.type")
}

func TestValidateCommandJSONOutput(t *testing.T) {
	schemaPath := writeSchema(t)
	docPath := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(docPath, []byte(`{"name":"ada"}`), 0o644))

	out, err := runCLI(t, "--schema", schemaPath, "--json", "validate", "user", docPath)
	require.NoError(t, err)
	assert.Contains(t, out, `"valid": true`)
}

func TestValidateCommandMalformedJSON(t *testing.T) {
	schemaPath := writeSchema(t)
	docPath := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(docPath, []byte(`{"name":`), 0o644))

	out, err := runCLI(t, "--schema", schemaPath, "validate", "user", docPath)
	assert.ErrorIs(t, err, errInvalidDocuments)
	assert.Contains(t, out, "parse document")
}
