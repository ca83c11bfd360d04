// Package cli contains helper functions related to flag parsing and logging.
package cli

import (
	"os"
	"path/filepath"

	cli "github.com/peterebden/go-cli-init/v5/flags"
	"github.com/thought-machine/go-flags"
)

// ParseFlagsOrDie parses the app's flags and dies if unsuccessful.
// Also dies if any unexpected arguments are passed.
// It returns the active command if there is one.
func ParseFlagsOrDie(appname string, data interface{}) string {
	return cli.ParseFlagsOrDie(appname, data, nil)
}

// parseFlags parses the app's flags and returns the parser, any extra arguments, and any error encountered.
// It may exit if certain options are encountered (eg. --help).
func parseFlags(appname string, data interface{}, args []string, opts flags.Options) (*flags.Parser, []string, error) {
	return cli.ParseFlags(appname, data, args, opts, nil, nil)
}

// A Filepath implements completion for file paths.
// This is distinct from upstream's in that it knows about completing into directories.
type Filepath string

// Complete implements the flags.Completer interface.
func (f *Filepath) Complete(match string) []flags.Completion {
	matches, _ := filepath.Glob(match + "*")
	// If there's exactly one match and it's a directory, take its contents instead.
	if len(matches) == 1 {
		if info, err := os.Stat(matches[0]); err == nil && info.IsDir() {
			matches, _ = filepath.Glob(matches[0] + "/*")
		}
	}
	ret := make([]flags.Completion, len(matches))
	for i, match := range matches {
		ret[i].Item = match
	}
	return ret
}

// String implements the fmt.Stringer interface
func (f Filepath) String() string {
	return string(f)
}

// An AbsPath is a Filepath that must be absolute; the build rules always hand us absolute paths
// and anything else indicates a misconfigured rule.
type AbsPath string

// UnmarshalFlag implements the flags.Unmarshaler interface.
func (p *AbsPath) UnmarshalFlag(in string) error {
	if !filepath.IsAbs(in) {
		return &flags.Error{Type: flags.ErrMarshal, Message: "path must be absolute: " + in}
	}
	*p = AbsPath(filepath.Clean(in))
	return nil
}

// Complete implements the flags.Completer interface.
func (p *AbsPath) Complete(match string) []flags.Completion {
	f := Filepath(*p)
	return f.Complete(match)
}

// String implements the fmt.Stringer interface
func (p AbsPath) String() string {
	return string(p)
}

// AbsPaths is a list of absolute paths.
type AbsPaths []AbsPath

// AsStrings returns this slice of paths as a slice of strings.
func (p AbsPaths) AsStrings() []string {
	ret := make([]string, len(p))
	for i, ap := range p {
		ret[i] = string(ap)
	}
	return ret
}
