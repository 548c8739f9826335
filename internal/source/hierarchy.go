// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/specialistvlad/profilegrid/internal/config"
	"github.com/specialistvlad/profilegrid/internal/ctxlog"
	"github.com/specialistvlad/profilegrid/internal/fsutil"
	"github.com/specialistvlad/profilegrid/internal/hcl_adapter"
	"github.com/specialistvlad/profilegrid/internal/value"
	ctyyaml "github.com/zclconf/go-cty-yaml"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
	"gopkg.in/yaml.v3"
)

// HierarchyFile is the conventional name of the hierarchy definition.
const HierarchyFile = "hierarchy.yaml"

const defaultDatadir = "data"

// DataExtensions are the data file extensions a level may use.
var DataExtensions = []string{".yaml", ".yml", ".json", ".hcl"}

type hierarchyDoc struct {
	Version  int `yaml:"version"`
	Defaults struct {
		Datadir string `yaml:"datadir"`
	} `yaml:"defaults"`
	Hierarchy []levelDoc `yaml:"hierarchy"`
}

type levelDoc struct {
	Name    string   `yaml:"name"`
	Datadir string   `yaml:"datadir"`
	Path    string   `yaml:"path"`
	Paths   []string `yaml:"paths"`
	Glob    string   `yaml:"glob"`
	Globs   []string `yaml:"globs"`
}

// Hierarchy is a file-backed config.Source. Data files are read once, on
// the first lookup.
type Hierarchy struct {
	root  string
	doc   *hierarchyDoc
	facts Facts
	hcl   *hcl_adapter.Loader

	once   sync.Once
	levels config.Levels
	err    error
}

var _ config.Source = (*Hierarchy)(nil)

// Open prepares the hierarchy at path, which is either a hierarchy.yaml
// file or a directory. A directory containing hierarchy.yaml uses it;
// otherwise every data file in the directory is a level.
func Open(path string, facts Facts) (*Hierarchy, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing hierarchy %s: %w", path, err)
	}

	h := &Hierarchy{facts: facts, hcl: hcl_adapter.NewLoader(facts)}
	file := path
	if info.IsDir() {
		h.root = path
		file = filepath.Join(path, HierarchyFile)
		if _, err := os.Stat(file); errors.Is(err, os.ErrNotExist) {
			return h, nil
		}
	} else {
		h.root = filepath.Dir(path)
	}

	doc, err := readDoc(file)
	if err != nil {
		return nil, err
	}
	h.doc = doc
	return h, nil
}

func readDoc(path string) (*hierarchyDoc, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading hierarchy %s: %w", path, err)
	}
	var doc hierarchyDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding hierarchy %s: %w", path, err)
	}
	if doc.Version != 5 {
		return nil, fmt.Errorf("hierarchy %s: unsupported version %d (expected 5)", path, doc.Version)
	}
	if len(doc.Hierarchy) == 0 {
		return nil, fmt.Errorf("hierarchy %s: no levels defined", path)
	}
	for i, l := range doc.Hierarchy {
		if l.Name == "" {
			return nil, fmt.Errorf("hierarchy %s: level %d has no name", path, i)
		}
		n := 0
		for _, set := range []bool{l.Path != "", len(l.Paths) > 0, l.Glob != "", len(l.Globs) > 0} {
			if set {
				n++
			}
		}
		if n != 1 {
			return nil, fmt.Errorf("hierarchy %s: level %q must set exactly one of path, paths, glob or globs", path, l.Name)
		}
	}
	return &doc, nil
}

// Lookup implements config.Source.
func (h *Hierarchy) Lookup(ctx context.Context, path string, shape config.Shape, strategy config.MergeStrategy, def cty.Value) (cty.Value, error) {
	levels, err := h.Levels(ctx)
	if err != nil {
		return cty.NilVal, err
	}
	return levels.Lookup(ctx, path, shape, strategy, def)
}

// Levels loads and returns every data level, most specific first.
func (h *Hierarchy) Levels(ctx context.Context) (config.Levels, error) {
	h.once.Do(func() {
		h.levels, h.err = h.load(ctx)
	})
	return h.levels, h.err
}

func (h *Hierarchy) load(ctx context.Context) (config.Levels, error) {
	logger := ctxlog.FromContext(ctx).With("hierarchy", h.root)

	var files []levelFile
	if h.doc == nil {
		found, err := fsutil.FindFilesByExtension(h.root, DataExtensions...)
		if err != nil {
			return nil, fmt.Errorf("scanning %s for data files: %w", h.root, err)
		}
		for _, f := range found {
			files = append(files, levelFile{level: "flat", path: f})
		}
	} else {
		var err error
		if files, err = h.expand(ctx); err != nil {
			return nil, err
		}
	}

	levels := make(config.Levels, 0, len(files))
	for _, f := range files {
		data, err := h.readData(ctx, f.path)
		if errors.Is(err, os.ErrNotExist) {
			logger.Debug("Skipping missing data file.", "level", f.level, "file", f.path)
			continue
		}
		if err != nil {
			return nil, err
		}
		rel, _ := filepath.Rel(h.root, f.path)
		levels = append(levels, config.Level{Name: fmt.Sprintf("%s (%s)", f.level, rel), Data: data})
	}

	logger.Debug("Hierarchy loaded.", "levels", len(levels))
	return levels, nil
}

type levelFile struct {
	level string
	path  string
}

// expand turns the configured levels into concrete data file paths.
func (h *Hierarchy) expand(ctx context.Context) ([]levelFile, error) {
	logger := ctxlog.FromContext(ctx)

	var out []levelFile
	for _, l := range h.doc.Hierarchy {
		datadir := l.Datadir
		if datadir == "" {
			datadir = h.doc.Defaults.Datadir
		}
		if datadir == "" {
			datadir = defaultDatadir
		}
		if !filepath.IsAbs(datadir) {
			datadir = filepath.Join(h.root, datadir)
		}

		paths := append([]string(nil), l.Paths...)
		if l.Path != "" {
			paths = append(paths, l.Path)
		}
		globs := append([]string(nil), l.Globs...)
		if l.Glob != "" {
			globs = append(globs, l.Glob)
		}

		for _, p := range paths {
			resolved, ok := h.facts.Interpolate(p)
			if !ok {
				logger.Debug("Skipping level path with unresolved facts.", "level", l.Name, "path", p)
				continue
			}
			out = append(out, levelFile{level: l.Name, path: filepath.Join(datadir, resolved)})
		}

		for _, g := range globs {
			resolved, ok := h.facts.Interpolate(g)
			if !ok {
				logger.Debug("Skipping level glob with unresolved facts.", "level", l.Name, "glob", g)
				continue
			}
			matches, err := doublestar.FilepathGlob(filepath.Join(datadir, resolved))
			if err != nil {
				return nil, fmt.Errorf("level %q: bad glob %q: %w", l.Name, g, err)
			}
			sort.Strings(matches)
			for _, m := range matches {
				out = append(out, levelFile{level: l.Name, path: m})
			}
		}
	}
	return out, nil
}

// readData decodes one data file by extension. The result is always a
// mapping.
func (h *Hierarchy) readData(ctx context.Context, path string) (cty.Value, error) {
	var (
		data cty.Value
		err  error
	)

	switch filepath.Ext(path) {
	case ".hcl":
		if _, statErr := os.Stat(path); statErr != nil {
			return cty.NilVal, statErr
		}
		data, err = h.hcl.LoadFile(ctx, path)
	case ".yaml", ".yml", ".json":
		var raw []byte
		raw, err = os.ReadFile(path)
		if err != nil {
			return cty.NilVal, err
		}
		data, err = decodeData(path, raw)
	default:
		return cty.NilVal, fmt.Errorf("unsupported data file %s", path)
	}
	if err != nil {
		return cty.NilVal, err
	}

	if data.IsNull() {
		return value.EmptyMapping(), nil
	}
	if !value.IsMapping(data) {
		return cty.NilVal, fmt.Errorf("data file %s: expected a mapping at the top level, got a %s", path, value.KindOf(data))
	}
	return data, nil
}

func decodeData(path string, raw []byte) (cty.Value, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return value.EmptyMapping(), nil
	}

	if filepath.Ext(path) == ".json" {
		ty, err := ctyjson.ImpliedType(raw)
		if err != nil {
			return cty.NilVal, fmt.Errorf("decoding %s: %w", path, err)
		}
		v, err := ctyjson.Unmarshal(raw, ty)
		if err != nil {
			return cty.NilVal, fmt.Errorf("decoding %s: %w", path, err)
		}
		return v, nil
	}

	ty, err := ctyyaml.ImpliedType(raw)
	if err != nil {
		return cty.NilVal, fmt.Errorf("decoding %s: %w", path, err)
	}
	v, err := ctyyaml.Unmarshal(raw, ty)
	if err != nil {
		return cty.NilVal, fmt.Errorf("decoding %s: %w", path, err)
	}
	return v, nil
}
