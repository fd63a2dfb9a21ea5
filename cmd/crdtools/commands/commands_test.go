package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const personDoc = `
kind: Person
group: example.crdtools.dev
versions:
  - name: v1alpha1
  - name: v1beta1
    deprecated: true
    note: "use v1"
  - name: v1
items:
  - name: name
    type: string
  - name: age
    type: u16
    added: {since: v1beta1, default: 30}
`

func writeSchema(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "person.yaml")
	require.NoError(t, os.WriteFile(path, []byte(personDoc), 0o600))
	return path
}

func TestHandleValidate_Valid(t *testing.T) {
	err := HandleValidate([]string{writeSchema(t)})
	require.NoError(t, err)
}

func TestHandleValidate_MissingArg(t *testing.T) {
	err := HandleValidate([]string{"--format", "json"})
	assert.Error(t, err)
}

func TestHandleValidate_BadFormat(t *testing.T) {
	err := HandleValidate([]string{"--format", "xml", writeSchema(t)})
	assert.Error(t, err)
}

func TestHandleShapes(t *testing.T) {
	path := writeSchema(t)

	require.NoError(t, HandleShapes([]string{path}))
	require.NoError(t, HandleShapes([]string{"--version", "v1", path}))
	require.NoError(t, HandleShapes([]string{"--format", "json", path}))

	assert.Error(t, HandleShapes([]string{"--version", "v9", path}))
}

func TestHandleGenerate(t *testing.T) {
	path := writeSchema(t)
	outDir := filepath.Join(t.TempDir(), "gen")

	err := HandleGenerate([]string{"-o", outDir, "-package", "person", path})
	require.NoError(t, err)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}

func TestHandleGenerate_MissingOutput(t *testing.T) {
	assert.Error(t, HandleGenerate([]string{writeSchema(t)}))
}

func TestHandleMerge(t *testing.T) {
	path := writeSchema(t)
	out := filepath.Join(t.TempDir(), "person-crd.yaml")

	err := HandleMerge([]string{"-o", out, "--stored", "v1", path})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "kind: Person")
	assert.Contains(t, string(data), "storage: true")
}

func TestHandleMerge_UnknownStored(t *testing.T) {
	assert.Error(t, HandleMerge([]string{"--stored", "v9", writeSchema(t)}))
}

func TestHandleConvert(t *testing.T) {
	schemaPath := writeSchema(t)
	objPath := filepath.Join(t.TempDir(), "person.json")
	require.NoError(t, os.WriteFile(objPath, []byte(`{"name":"alice"}`), 0o600))
	outPath := filepath.Join(t.TempDir(), "out.json")

	err := HandleConvert([]string{
		"--from", "v1alpha1", "--to", "v1",
		"--object", objPath, "-o", outPath, schemaPath,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"alice"`)
	assert.Contains(t, string(data), `"age"`)
}

func TestHandleConvert_MissingVersions(t *testing.T) {
	assert.Error(t, HandleConvert([]string{writeSchema(t)}))
}

func TestValidateOutputFormat(t *testing.T) {
	assert.NoError(t, ValidateOutputFormat(FormatText))
	assert.NoError(t, ValidateOutputFormat(FormatJSON))
	assert.NoError(t, ValidateOutputFormat(FormatYAML))
	assert.Error(t, ValidateOutputFormat("xml"))
}
