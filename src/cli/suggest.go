package cli

import (
	"sort"
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// maxSuggestions is the most alternatives we'll ever offer at once.
const maxSuggestions = 3

// Suggest returns the items in haystack within maxDistance edits of needle, closest first.
func Suggest(needle string, haystack []string, maxDistance int) []string {
	r := []rune(needle)
	options := make([]suggestion, 0, len(haystack))
	for _, straw := range haystack {
		if straw == "" || straw == needle {
			continue
		}
		if distance := levenshtein.DistanceForStrings(r, []rune(straw), levenshtein.DefaultOptions); distance <= maxDistance {
			options = append(options, suggestion{s: straw, dist: distance})
		}
	}
	sort.SliceStable(options, func(i, j int) bool { return options[i].dist < options[j].dist })
	if len(options) > maxSuggestions {
		options = options[:maxSuggestions]
	}
	ret := make([]string, len(options))
	for i, o := range options {
		ret[i] = o.s
	}
	return ret
}

// DidYouMean returns a message suggesting alternatives to needle, or the empty string if there are none.
func DidYouMean(needle string, haystack []string, maxDistance int) string {
	options := Suggest(needle, haystack, maxDistance)
	if len(options) == 0 {
		return ""
	}
	// Leave a space before punctuation so the names can be selected without picking it up.
	if len(options) == 1 {
		return "\nMaybe you meant " + options[0] + " ?"
	}
	return "\nMaybe you meant " + strings.Join(options[:len(options)-1], " , ") + " or " + options[len(options)-1] + " ?"
}

type suggestion struct {
	s    string
	dist int
}
