// SPDX-License-Identifier: MPL-2.0

package catalogfile

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/planbuild/planbuild/internal/source"
	"github.com/planbuild/planbuild/pkg/cueutil"
	"github.com/planbuild/planbuild/pkg/requirements"
	"github.com/planbuild/planbuild/pkg/types"
)

const (
	// FormatCUE is a CUE catalog file.
	FormatCUE Format = "cue"
	// FormatTOML is a TOML catalog file.
	FormatTOML Format = "toml"
	// FormatYAML is a YAML catalog file.
	FormatYAML Format = "yaml"

	// DirPattern selects catalog files when a directory is loaded.
	DirPattern = "**/*.{cue,toml,yaml,yml}"

	schemaPath = "#Catalog"
)

//go:embed catalog_schema.cue
var schemaBytes []byte

var (
	// ErrUnsupportedFormat is returned for files whose extension is not a
	// known catalog format.
	ErrUnsupportedFormat = errors.New("unsupported catalog file format")
	// ErrNoFiles is returned when none of the given paths yields a file.
	ErrNoFiles = errors.New("no catalog files found")
)

type (
	// Format is a catalog file encoding.
	Format string

	// document mirrors catalog_schema.cue. The json tags drive CUE decoding
	// and encoding.
	document struct {
		Tables []table `json:"tables,omitempty" toml:"tables" yaml:"tables"`
	}

	table struct {
		Name   string  `json:"name" toml:"name" yaml:"name"`
		Pieces []piece `json:"pieces,omitempty" toml:"pieces" yaml:"pieces"`
	}

	piece struct {
		Name         string         `json:"name" toml:"name" yaml:"name"`
		Prefab       string         `json:"prefab,omitempty" toml:"prefab" yaml:"prefab"`
		DisplayName  string         `json:"display_name,omitempty" toml:"display_name" yaml:"display_name"`
		Enabled      *bool          `json:"enabled,omitempty" toml:"enabled" yaml:"enabled"`
		Category     string         `json:"category,omitempty" toml:"category" yaml:"category"`
		Icon         string         `json:"icon,omitempty" toml:"icon" yaml:"icon"`
		Requirements map[string]int `json:"requirements,omitempty" toml:"requirements" yaml:"requirements"`
		Flags        *flags         `json:"flags,omitempty" toml:"flags" yaml:"flags"`
	}

	flags struct {
		Plant           bool `json:"plant,omitempty" toml:"plant" yaml:"plant"`
		TerrainOp       bool `json:"terrain_op,omitempty" toml:"terrain_op" yaml:"terrain_op"`
		TerrainModifier bool `json:"terrain_modifier,omitempty" toml:"terrain_modifier" yaml:"terrain_modifier"`
		Vehicle         bool `json:"vehicle,omitempty" toml:"vehicle" yaml:"vehicle"`
		Plan            bool `json:"plan,omitempty" toml:"plan" yaml:"plan"`
	}
)

// FormatOf returns the catalog format of path based on its extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cue":
		return FormatCUE, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// Load reads every path and merges the resulting tables. Directories are
// expanded to the catalog files below them, sorted by path.
func Load(paths ...string) ([]source.Table, error) {
	files, err := Expand(paths...)
	if err != nil {
		return nil, err
	}

	var merged []source.Table
	for _, f := range files {
		tables, err := LoadFile(f)
		if err != nil {
			return nil, err
		}
		merged = Merge(merged, tables...)
	}
	return merged, nil
}

// Expand resolves paths into the ordered list of catalog files they name.
func Expand(paths ...string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("catalog path %s: %w", p, err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}

		matches, err := doublestar.Glob(os.DirFS(p), DirPattern)
		if err != nil {
			return nil, fmt.Errorf("scan catalog dir %s: %w", p, err)
		}
		slices.Sort(matches)
		for _, m := range matches {
			files = append(files, filepath.Join(p, filepath.FromSlash(m)))
		}
	}
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	return files, nil
}

// LoadFile reads and parses one catalog file.
func LoadFile(path string) ([]source.Table, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file %s: %w", path, err)
	}
	return Parse(data, format, path)
}

// Parse decodes data in format. filename is used in error messages.
func Parse(data []byte, format Format, filename string) ([]source.Table, error) {
	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, filename); err != nil {
		return nil, err
	}

	var (
		doc *document
		err error
	)
	switch format {
	case FormatCUE:
		doc, err = parseCUE(data, filename)
	case FormatTOML:
		doc, err = parseTOML(data, filename)
	case FormatYAML:
		doc, err = parseYAML(data, filename)
	default:
		return nil, fmt.Errorf("%s: %w: %q", filename, ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}
	return doc.tables(), nil
}

func parseCUE(data []byte, filename string) (*document, error) {
	result, err := cueutil.ParseAndDecode[document](schemaBytes, data, schemaPath, cueutil.WithFilename(filename))
	if err != nil {
		return nil, err
	}
	return result.Value, nil
}

func parseTOML(data []byte, filename string) (*document, error) {
	var doc document
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("%s:%d:%d: %s", filename, row, col, derr.Error())
		}
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) {
			return nil, fmt.Errorf("%s: %s", filename, serr.String())
		}
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return &doc, validate(&doc, filename)
}

func parseYAML(data []byte, filename string) (*document, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return &doc, validate(&doc, filename)
}

// validate checks a document decoded from TOML or YAML against the schema.
func validate(doc *document, filename string) error {
	ctx := cuecontext.New()
	schema := ctx.CompileBytes(schemaBytes).LookupPath(cue.ParsePath(schemaPath))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("internal error: catalog schema: %w", err)
	}
	value := ctx.Encode(doc)
	if err := value.Err(); err != nil {
		return cueutil.FormatError(err, filename)
	}
	if err := schema.Unify(value).Validate(cue.Concrete(true)); err != nil {
		return cueutil.FormatError(err, filename)
	}
	return nil
}

func (d *document) tables() []source.Table {
	out := make([]source.Table, 0, len(d.Tables))
	for _, t := range d.Tables {
		name := types.TableName(t.Name)
		pieces := make([]*source.Piece, len(t.Pieces))
		for i, p := range t.Pieces {
			pieces[i] = p.toSource(name)
		}
		out = append(out, source.Table{Name: name, Pieces: pieces})
	}
	return out
}

func (p *piece) toSource(table types.TableName) *source.Piece {
	reqs := make(map[types.ResourceName]int, len(p.Requirements))
	for res, amount := range p.Requirements {
		reqs[types.ResourceName(res)] = amount
	}

	out := &source.Piece{
		Name:         types.PieceName(p.Name),
		Prefab:       types.PieceName(p.Prefab),
		DisplayName:  types.DisplayName(p.DisplayName),
		Enabled:      p.Enabled == nil || *p.Enabled,
		Requirements: requirements.FromMap(reqs),
		Icon:         types.IconRef(p.Icon),
		Category:     p.Category,
		Table:        table,
	}
	if p.Flags != nil {
		out.Flags = source.Flags{
			Plant:           p.Flags.Plant,
			TerrainOp:       p.Flags.TerrainOp,
			TerrainModifier: p.Flags.TerrainModifier,
			Vehicle:         p.Flags.Vehicle,
			Plan:            p.Flags.Plan,
		}
	}
	return out
}

// Merge appends tables to dst. A table whose name is already present has its
// pieces appended to the existing table.
func Merge(dst []source.Table, tables ...source.Table) []source.Table {
	for _, t := range tables {
		i := slices.IndexFunc(dst, func(existing source.Table) bool { return existing.Name == t.Name })
		if i == -1 {
			dst = append(dst, source.Table{Name: t.Name, Pieces: slices.Clone(t.Pieces)})
			continue
		}
		dst[i].Pieces = append(dst[i].Pieces, t.Pieces...)
	}
	return dst
}
