// Package main implements jvmtools, a small collection of helpers used by the Kotlin build rules.
//
// The most important of them extracts individual files out of the jars that the Kotlin/JS compiler
// produces, since downstream rules want the .js and its friends at fixed locations rather than
// buried inside a jar.
package main

import (
	"errors"
	"os"

	"gopkg.in/op/go-logging.v1"

	"github.com/thought-machine/jvmtools/src/cli"
	"github.com/thought-machine/jvmtools/tools/jvmtools/extract"
	"github.com/thought-machine/jvmtools/tools/jvmtools/filter"
)

var log = logging.MustGetLogger("jvmtools")

// maxSuggestionDistance is how far away an entry name can be for us to suggest it.
const maxSuggestionDistance = 4

var opts = struct {
	Usage     string
	Verbosity cli.Verbosity `short:"v" long:"verbosity" default:"warning" description:"Verbosity of output (higher number = more output)"`

	Extract struct {
		Jar           cli.Filepath `short:"j" long:"jar" env:"JAR" required:"true" description:"Jar file to extract from"`
		ImportPattern string       `short:"p" long:"import_pattern" required:"true" description:"Regular expression to match when searching the jar for the primary file"`
		ImportOut     cli.AbsPath  `short:"o" long:"import_out" required:"true" description:"Absolute path to write the primary file to"`
		AuxPatterns   []string     `long:"aux_pattern" description:"Regular expressions to match when searching the jar for additional files"`
		AuxOuts       cli.AbsPaths `long:"aux_out" description:"Absolute paths to write additional files to. If nothing matches, these are created empty."`
		ByName        bool         `short:"n" long:"by_name" description:"Treat all patterns as literal file basenames instead of regular expressions"`
		ScratchDir    cli.Filepath `long:"scratch_dir" description:"Directory to create scratch directories in. Defaults to alongside each output."`
	} `command:"extract" alias:"x" description:"Extracts individual files from a jar to specific locations"`

	Filter struct {
		Input  cli.Filepath `short:"i" long:"input" required:"true" description:"Input file"`
		Output cli.Filepath `short:"o" long:"output" env:"OUT" required:"true" description:"Output file"`
	} `command:"filter" alias:"f" description:"Filters a file down to the content between RELEASE-CONTENT markers"`

	Contains struct {
		Jar  cli.Filepath `short:"j" long:"jar" env:"JAR" required:"true" description:"Jar file to check"`
		Args struct {
			Entries []string `positional-arg-name:"entries" required:"true" description:"Full paths of entries that must exist in the jar"`
		} `positional-args:"true" required:"true"`
	} `command:"contains" alias:"c" description:"Checks that a jar contains all the given entries"`
}{
	Usage: `
jvmtools is a set of helpers used by the Kotlin build rules.

Its main job is to take the jar produced by the Kotlin/JS compiler and pull out the .js file
(and optionally the .js.map and .meta.js files) to the exact paths the rule has declared.
The primary file must exist; auxiliary files that aren't in the jar are created empty, which
downstream rules take to mean "not present for this build".

Typically you don't invoke this directly; the build rules run it when they need it.
`,
}

var subCommands = map[string]func() int{
	"extract": func() int {
		mandatory, err := extract.NewRequests("--import_out", []string{opts.Extract.ImportPattern}, []string{opts.Extract.ImportOut.String()}, opts.Extract.ByName, false)
		if err != nil {
			log.Fatalf("%s", err)
		}
		aux, err := extract.NewRequests("--aux_out", opts.Extract.AuxPatterns, opts.Extract.AuxOuts.AsStrings(), opts.Extract.ByName, true)
		if err != nil {
			log.Fatalf("%s", err)
		}
		a, err := extract.Open(opts.Extract.Jar.String())
		if err != nil {
			log.Fatalf("%s", err)
		}
		defer a.Close()
		a.ScratchRoot = opts.Extract.ScratchDir.String()
		results, err := a.Run(mandatory[0], aux)
		if err != nil {
			log.Errorf("%s", err)
			return 1
		}
		for _, result := range results {
			if result.Touched() {
				log.Info("Created empty %s", result.Out)
			} else {
				log.Info("Extracted %s to %s", result.Entry, result.Out)
			}
		}
		return 0
	},
	"filter": func() int {
		if err := filter.File(opts.Filter.Input.String(), opts.Filter.Output.String()); err != nil {
			log.Errorf("Failed to filter %s: %s", opts.Filter.Input, err)
			return 1
		}
		return 0
	},
	"contains": func() int {
		a, err := extract.Open(opts.Contains.Jar.String())
		if err != nil {
			log.Fatalf("%s", err)
		}
		defer a.Close()
		if err := a.Contains(opts.Contains.Args.Entries...); err != nil {
			var missing *extract.MissingEntryError
			if errors.As(err, &missing) {
				log.Errorf("%s%s", err, cli.DidYouMean(missing.Selector, a.Entries(), maxSuggestionDistance))
			} else {
				log.Errorf("%s", err)
			}
			log.Debug("Entries in %s: %s", a.Path, a.Entries())
			return 1
		}
		return 0
	},
}

func main() {
	command := cli.ParseFlagsOrDie("jvmtools", &opts)
	cli.InitLogging(opts.Verbosity)
	os.Exit(subCommands[command]())
}
