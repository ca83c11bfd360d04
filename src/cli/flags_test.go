package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thought-machine/go-flags"
)

func TestAbsPath(t *testing.T) {
	opts := struct {
		Out AbsPath `short:"o"`
	}{}
	_, extraArgs, err := parseFlags("test", &opts, []string{"test", "-o=/out/../out/module.js"}, flags.HelpFlag)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(extraArgs))
	assert.EqualValues(t, "/out/module.js", opts.Out)
}

func TestAbsPathRejectsRelative(t *testing.T) {
	opts := struct {
		Out AbsPath `short:"o"`
	}{}
	_, _, err := parseFlags("test", &opts, []string{"test", "-o=out/module.js"}, flags.HelpFlag)
	assert.Error(t, err)
}

func TestAbsPaths(t *testing.T) {
	opts := struct {
		Outs AbsPaths `long:"out"`
	}{}
	_, _, err := parseFlags("test", &opts, []string{"test", "--out=/a", "--out=/b/c"}, flags.HelpFlag)
	assert.NoError(t, err)
	assert.Equal(t, []string{"/a", "/b/c"}, opts.Outs.AsStrings())
}

func TestFilepathComplete(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "kotlin.jar"), nil, 0644))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "kotlin.js"), nil, 0644))
	var f Filepath
	completions := f.Complete(filepath.Join(dir, "kotlin."))
	assert.Equal(t, 2, len(completions))
}
