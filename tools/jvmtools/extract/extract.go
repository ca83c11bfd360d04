package extract

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/klauspost/compress/zip"
	"github.com/zeebo/blake3"

	"github.com/thought-machine/jvmtools/src/fs"
)

// A Request describes one entry to extract.
type Request struct {
	Selector Selector
	// Out is the absolute path to write to. Its basename need not match the entry's.
	Out string
	// Touch causes an empty file to be written to Out if nothing matches, instead of failing.
	Touch bool
}

// A Result describes the outcome of a successful request.
type Result struct {
	// Entry is the name of the entry that was extracted. It's empty if the output was touched.
	Entry string
	Out   string
	Size  uint64
	// Digest is the hex-encoded BLAKE3 hash of the output's contents.
	Digest string
}

// Touched returns true if the result is an empty placeholder rather than an extracted entry.
func (r *Result) Touched() bool {
	return r.Entry == ""
}

// NewRequests builds requests from parallel lists of selectors and output paths.
// If byName is true the selectors are literal basenames, otherwise they are regular expressions.
// flag names the option the output paths came from, for error messages.
func NewRequests(flag string, selectors, outs []string, byName, touch bool) ([]Request, error) {
	if len(selectors) != len(outs) {
		return nil, &ConfigError{
			Path: flag,
			Err:  fmt.Errorf("got %d selectors but %d output paths", len(selectors), len(outs)),
		}
	}
	reqs := make([]Request, len(selectors))
	for i, sel := range selectors {
		reqs[i] = Request{Out: outs[i], Touch: touch}
		if byName {
			reqs[i].Selector = NameSelector(sel)
		} else {
			s, err := CompilePattern(sel)
			if err != nil {
				return nil, err
			}
			reqs[i].Selector = s
		}
	}
	return reqs, nil
}

func (req Request) validate() error {
	if req.Selector == nil {
		return &ConfigError{Path: req.Out, Err: errors.New("no selector given")}
	} else if !filepath.IsAbs(req.Out) {
		return &ConfigError{Path: req.Out, Err: errors.New("output path must be absolute")}
	}
	return nil
}

// Run processes a mandatory request followed by any number of auxiliary ones, in order.
// The mandatory request never touches; auxiliary ones follow their own policy.
// It stops at the first error; any outputs already written are left in place.
func (a *Archive) Run(mandatory Request, aux []Request) ([]*Result, error) {
	mandatory.Touch = false
	reqs := append([]Request{mandatory}, aux...)
	for _, req := range reqs {
		if err := req.validate(); err != nil {
			return nil, err
		}
	}
	results := make([]*Result, 0, len(reqs))
	for _, req := range reqs {
		result, err := a.Extract(req)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

// Extract resolves a single request against the archive.
// On success exactly one regular file exists at req.Out; it is never left partially written.
func (a *Archive) Extract(req Request) (*Result, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	f := a.find(req.Selector)
	if f == nil {
		if !req.Touch {
			return nil, &MissingEntryError{Archive: a.Path, Selector: req.Selector.String()}
		}
		log.Debug("Nothing matching %s in %s, touching %s", req.Selector, a.Path, req.Out)
		if err := fs.Touch(req.Out); err != nil {
			return nil, &ExtractError{Selector: req.Selector.String(), Out: req.Out, Err: err}
		}
		return &Result{Out: req.Out, Digest: emptyDigest}, nil
	}
	result, err := a.extractEntry(f, req.Out)
	if err != nil {
		return nil, &ExtractError{Selector: req.Selector.String(), Out: req.Out, Err: err}
	}
	log.Debug("Extracted %s (%s, blake3 %s) to %s", f.Name, humanize.Bytes(result.Size), result.Digest, req.Out)
	return result, nil
}

const scratchFile = "entry"

// extractEntry writes the entry into a fresh scratch directory and then moves it into place.
func (a *Archive) extractEntry(f *zip.File, out string) (result *Result, err error) {
	root := a.ScratchRoot
	if root == "" {
		root = filepath.Dir(out)
	}
	scratch := filepath.Join(root, ".jvmtools-"+uuid.New().String())
	if err := os.Mkdir(scratch, 0700); err != nil {
		return nil, err
	}
	defer func() {
		if rmErr := os.RemoveAll(scratch); rmErr != nil {
			if err != nil {
				err = multierror.Append(err, rmErr)
			} else {
				log.Warning("Failed to remove scratch directory %s: %s", scratch, rmErr)
			}
		}
	}()
	// The entry's own basename can't be trusted as a filename (consider "lib/.."), and the scratch
	// directory is fresh, so any fixed name will do.
	tmp := filepath.Join(scratch, scratchFile)
	result, err = writeEntry(f, tmp)
	if err != nil {
		return nil, err
	}
	if err := fs.RenameFile(tmp, out); err != nil {
		return nil, err
	}
	result.Entry = f.Name
	result.Out = out
	return result, nil
}

// writeEntry decompresses a single entry to the given path.
func writeEntry(f *zip.File, to string) (*Result, error) {
	r, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer r.Close()
	mode := f.Mode().Perm()
	if mode == 0 {
		mode = 0644
	}
	o, err := os.OpenFile(to, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode)
	if err != nil {
		return nil, err
	}
	h := blake3.New()
	n, err := io.Copy(io.MultiWriter(o, h), r)
	if err != nil {
		o.Close()
		return nil, err
	}
	if err := o.Close(); err != nil {
		return nil, err
	}
	return &Result{Size: uint64(n), Digest: hex.EncodeToString(h.Sum(nil))}, nil
}

var emptyDigest = func() string {
	sum := blake3.Sum256(nil)
	return hex.EncodeToString(sum[:])
}()
