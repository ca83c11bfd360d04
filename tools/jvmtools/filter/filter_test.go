package filter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const buildDefs = `load("@rules_kotlin//kotlin:jvm.bzl", "kt_jvm_library")

# RELEASE-CONTENT-START
kt_jvm_library(
    name = "lib",
)
# RELEASE-CONTENT-END

# Only used for development.
kt_jvm_library(
    name = "dev_lib",
)
`

func TestFilter(t *testing.T) {
	assert.Equal(t, "kt_jvm_library(\n    name = \"lib\",\n)\n", Filter(buildDefs))
}

func TestFilterNoMarkers(t *testing.T) {
	const content = "package main\n\nfunc main() {}\n"
	assert.Equal(t, content, Filter(content))
}

func TestFilterMultipleBlocks(t *testing.T) {
	content := "a\n# RELEASE-CONTENT-START\nb\n# RELEASE-CONTENT-END\nc\n  # RELEASE-CONTENT-START  \nd\n# RELEASE-CONTENT-END\ne\n"
	assert.Equal(t, "b\nd\n", Filter(content))
}

func TestFilterUnterminatedBlock(t *testing.T) {
	content := "a\n# RELEASE-CONTENT-START\nb\nc"
	assert.Equal(t, "b\nc", Filter(content))
}

func TestFilterEmptyBlock(t *testing.T) {
	content := "a\n# RELEASE-CONTENT-START\n# RELEASE-CONTENT-END\n"
	assert.Equal(t, "", Filter(content))
}

func TestFilterMarkerMustBeWholeLine(t *testing.T) {
	content := "# RELEASE-CONTENT-START\nx = 1  # RELEASE-CONTENT-END\n# RELEASE-CONTENT-END\n"
	assert.Equal(t, "x = 1  # RELEASE-CONTENT-END\n", Filter(content))
}

func TestFilterCRLF(t *testing.T) {
	content := "a\r\n# RELEASE-CONTENT-START\r\nb\r\n# RELEASE-CONTENT-END\r\nc\r\n"
	assert.Equal(t, "b\n", Filter(content))
}

func TestFilterMarkerWithVerticalTab(t *testing.T) {
	assert.Equal(t, "b\n", Filter("\v# RELEASE-CONTENT-START\nb\n"))
	assert.Equal(t, "b\n", Filter("# RELEASE-CONTENT-START\u00a0\nb\n"))
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "BUILD.in")
	out := filepath.Join(dir, "out", "BUILD")
	require.NoError(t, os.WriteFile(in, []byte(buildDefs), 0644))
	require.NoError(t, File(in, out))
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "kt_jvm_library(\n    name = \"lib\",\n)\n", string(b))
}

func TestFileBinaryPassthrough(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "kotlin.jar")
	out := filepath.Join(dir, "release.jar")
	content := []byte{'P', 'K', 3, 4, 0xff, 0xfe, '#', ' ', 'R', 0x80}
	require.NoError(t, os.WriteFile(in, content, 0755))
	require.NoError(t, File(in, out))
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, content, b)
	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.EqualValues(t, 0755, info.Mode().Perm())
}

func TestFileMissingInput(t *testing.T) {
	dir := t.TempDir()
	err := File(filepath.Join(dir, "nope"), filepath.Join(dir, "out"))
	assert.True(t, os.IsNotExist(err))
}
