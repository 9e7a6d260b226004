package svcerr

import (
	"io"
	"os"
	"sort"

	"github.com/go-git/go-billy/v5"
	"gopkg.in/yaml.v3"

	"github.com/jmgilman/go/svcerr/errors"
)

// Wildcard is the registry spelling of AllCodes and AllOperations.
const Wildcard = "*"

// Entry is a named selector definition.
type Entry struct {
	// Name identifies the selector, e.g. "MissingBucket".
	Name string `yaml:"name"`

	// Codes lists the accepted error codes. "*" accepts every code.
	Codes []string `yaml:"codes"`

	// Operations optionally restricts the accepted operations. "*" or an
	// empty list accepts every operation.
	Operations []string `yaml:"operations,omitempty"`

	// Classification states whether errors selected by this entry are
	// transient. Empty means "derive from the error".
	Classification errors.ErrorClassification `yaml:"classification,omitempty"`
}

func (e Entry) criteria() []Criterion {
	var cs []Criterion
	for _, code := range e.Codes {
		if code == Wildcard {
			cs = append(cs, AllCodes)
			continue
		}
		cs = append(cs, Code(code))
	}
	for _, op := range e.Operations {
		if op == Wildcard {
			cs = append(cs, AllOperations)
			continue
		}
		cs = append(cs, Operation(op))
	}
	return cs
}

type registryFile struct {
	Selectors []Entry `yaml:"selectors"`
}

type registryEntry struct {
	Entry
	selector Selector
	match    Predicate
}

// Registry maps names to selectors, typically loaded from configuration:
//
//	selectors:
//	  - name: MissingBucket
//	    codes: [NoSuchBucket]
//	    operations: [GetObject, ListObjectsV2]
//	  - name: Throttled
//	    codes: [Throttling, ThrottlingException, SlowDown]
//	    classification: RETRYABLE
//
// A Registry is read-only after construction.
type Registry struct {
	entries []registryEntry
	byName  map[string]int
}

// NewRegistry validates entries and builds a Registry. Every entry needs a
// unique name and at least one code.
func NewRegistry(entries ...Entry) (*Registry, error) {
	r := &Registry{
		byName: make(map[string]int, len(entries)),
	}

	for i, e := range entries {
		if err := validateEntry(e); err != nil {
			return nil, errors.WithContext(err, "entry", i)
		}
		if _, dup := r.byName[e.Name]; dup {
			err := errors.Newf(errors.CodeInvalidConfig, "duplicate selector name %q", e.Name)
			return nil, errors.WithContext(err, "entry", i)
		}

		cs := e.criteria()
		r.byName[e.Name] = len(r.entries)
		r.entries = append(r.entries, registryEntry{
			Entry:    e,
			selector: Catch(cs...),
			match:    Matching(cs...),
		})
	}

	return r, nil
}

func validateEntry(e Entry) error {
	if e.Name == "" {
		return errors.New(errors.CodeInvalidConfig, "selector name is required")
	}
	if len(e.Codes) == 0 {
		err := errors.Newf(errors.CodeInvalidConfig, "selector %q has no error codes", e.Name)
		return errors.WithContext(err, "name", e.Name)
	}
	for _, code := range e.Codes {
		if code == "" {
			err := errors.Newf(errors.CodeInvalidConfig, "selector %q has an empty error code", e.Name)
			return errors.WithContext(err, "name", e.Name)
		}
	}
	if e.Classification != "" && !e.Classification.Valid() {
		err := errors.Newf(errors.CodeInvalidConfig, "selector %q has unknown classification %q", e.Name, e.Classification)
		return errors.WithContext(err, "name", e.Name)
	}
	return nil
}

// LoadRegistry decodes a YAML registry document from r.
func LoadRegistry(r io.Reader) (*Registry, error) {
	var file registryFile

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, errors.CodeInvalidConfig, "failed to decode selector registry")
	}

	return NewRegistry(file.Selectors...)
}

// LoadRegistryFile reads a YAML registry document from path.
func LoadRegistryFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		err := errors.Wrap(err, errors.CodeInvalidConfig, "failed to open selector registry")
		return nil, errors.WithContext(err, "path", path)
	}
	defer f.Close()

	reg, err := LoadRegistry(f)
	if err != nil {
		return nil, errors.WithContext(err, "path", path)
	}
	return reg, nil
}

// LoadRegistryFS reads a YAML registry document from path within fsys, e.g.
// a registry bundled in a memfs or chroot filesystem.
func LoadRegistryFS(fsys billy.Basic, path string) (*Registry, error) {
	f, err := fsys.Open(path)
	if err != nil {
		err := errors.Wrap(err, errors.CodeInvalidConfig, "failed to open selector registry")
		return nil, errors.WithContext(err, "path", path)
	}
	defer f.Close()

	reg, err := LoadRegistry(f)
	if err != nil {
		return nil, errors.WithContext(err, "path", path)
	}
	return reg, nil
}

// Lookup returns the selector registered under name.
func (r *Registry) Lookup(name string) (Selector, bool) {
	i, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return r.entries[i].selector, true
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		names = append(names, e.Name)
	}
	sort.Strings(names)
	return names
}

// Match returns the name of the first entry, in declaration order, that
// matches err.
func (r *Registry) Match(err error) (string, bool) {
	se, ok := asServiceError(err)
	if !ok {
		return "", false
	}
	for _, e := range r.entries {
		if e.match(se) {
			return e.Name, true
		}
	}
	return "", false
}

// Classify returns the classification declared by the entry Match would
// pick for err. If no entry matches, or the matching entry declares none, it
// falls back to Classification(err).
func (r *Registry) Classify(err error) errors.ErrorClassification {
	if se, ok := asServiceError(err); ok {
		for _, e := range r.entries {
			if !e.match(se) {
				continue
			}
			if e.Classification != "" {
				return e.Classification
			}
			break
		}
	}
	return Classification(err)
}
