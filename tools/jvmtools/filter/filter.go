// Package filter implements stripping of files down to the parts marked for release.
//
// Release content is delimited by lines reading "# RELEASE-CONTENT-START" and "# RELEASE-CONTENT-END"
// (leading and trailing whitespace is ignored). Files without any start marker are left alone.
package filter

import (
	"bytes"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/peterebden/go-deferred-regex"
	"gopkg.in/op/go-logging.v1"

	"github.com/thought-machine/jvmtools/src/fs"
)

var log = logging.MustGetLogger("filter")

const startMarker = "# RELEASE-CONTENT-START"

// space is any Unicode whitespace; \s on its own misses \v and everything outside ASCII.
const space = `[[:space:]\p{Z}\x{1c}-\x{1f}\x{85}]*`

var markerRegex = deferredregex.DeferredRegex{Re: `^` + space + `# RELEASE-CONTENT-(START|END)` + space + `$`}

var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Filter returns only the lines of content that fall between release markers.
// Line endings are normalised to \n first, as for any text file read by the build rules.
func Filter(content string) string {
	content = newlines.Replace(content)
	if !strings.Contains(content, startMarker) {
		return content
	}
	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))
	inRelease := false
	for _, line := range lines {
		if match := markerRegex.FindStringSubmatch(line); match != nil {
			inRelease = match[1] == "START"
			continue
		}
		if inRelease {
			result = append(result, line)
		}
	}
	output := strings.Join(result, "\n")
	if strings.HasSuffix(content, "\n") && output != "" && !strings.HasSuffix(output, "\n") {
		output += "\n"
	}
	return output
}

// File filters the file at 'in' and writes the result to 'out'.
// Anything that isn't valid UTF-8 is assumed to be binary and copied unchanged.
func File(in, out string) error {
	info, err := os.Stat(in)
	if err != nil {
		return err
	}
	b, err := os.ReadFile(in)
	if err != nil {
		return err
	}
	if !utf8.Valid(b) {
		log.Debug("%s looks binary, copying unchanged", in)
		return fs.WriteFile(bytes.NewReader(b), out, info.Mode().Perm())
	}
	filtered := Filter(string(b))
	log.Debug("Filtered %s (%s) to %s (%s)", in, humanize.Bytes(uint64(len(b))), out, humanize.Bytes(uint64(len(filtered))))
	return fs.WriteFile(strings.NewReader(filtered), out, info.Mode().Perm())
}
