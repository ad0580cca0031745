package decl

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/ecs-abi/errors"
	"github.com/wippyai/ecs-abi/schema"
)

// Format is a declaration file syntax.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, true
	case ".yaml", ".yml":
		return FormatYAML, true
	}
	return 0, false
}

// Parse decodes a declaration file. Unknown keys are rejected so that a
// misspelled "capacity" cannot silently produce a different layout.
func Parse(data []byte, format Format, path string) (*File, error) {
	f := &File{Path: path}

	switch format {
	case FormatTOML:
		meta, err := toml.Decode(string(data), f)
		if err != nil {
			return nil, loadError(path, err, "decode TOML")
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, loadError(path, nil, "unknown key "+undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(f); err != nil && err != io.EOF {
			return nil, loadError(path, err, "decode YAML")
		}
	default:
		return nil, loadError(path, nil, "unsupported declaration format")
	}

	f.Path = path
	return f, nil
}

// LoadFile reads and decodes one declaration file.
func LoadFile(path string) (*File, error) {
	format, ok := FormatOf(path)
	if !ok {
		return nil, loadError(path, nil, "unknown declaration file extension")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, loadError(path, err, "read declaration file")
	}
	return Parse(data, format, path)
}

// LoadFiles loads several files concurrently. Results keep the order of paths.
func LoadFiles(ctx context.Context, paths ...string) ([]*File, error) {
	files := make([]*File, len(paths))
	if len(paths) == 0 {
		return files, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(runtime.GOMAXPROCS(0), len(paths)))

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			f, err := LoadFile(path)
			if err != nil {
				return err
			}
			files[i] = f
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

// Schemas validates every component across files. Component names must be
// unique across all files.
func Schemas(files ...*File) ([]*schema.Schema, error) {
	var out []*schema.Schema
	seen := make(map[string]string)

	for _, f := range files {
		for _, c := range f.Components {
			if prev, dup := seen[c.Name]; dup {
				return nil, errors.New(errors.PhaseLoad, errors.KindDuplicate).
					Component(c.Name).
					Detail("declared in %s and %s", prev, f.Path).
					Build()
			}
			seen[c.Name] = f.Path

			s, err := c.Schema()
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
	}
	return out, nil
}

func loadError(path string, cause error, detail string) error {
	return errors.New(errors.PhaseLoad, errors.KindInvalidInput).
		Path(path).
		Cause(cause).
		Detail("%s", detail).
		Build()
}
