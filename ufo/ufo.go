// github.com/fkretlow/sebastian - tooling for the Sebastian music notation font
// Copyright (C) 2026 Florian Kretlow
// Use, distribute and edit this file as you wish.

// Package ufo reads and writes font sources in the Unified Font Object
// version 3 directory format.
//
// Only the default glyph layer is loaded.  The package understands the
// subset of the format the Sebastian build needs: the property lists,
// GLIF v2 glyph files and the feature file.  Kerning and groups are
// carried as opaque files and left untouched.
package ufo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FormatVersion is the UFO format version this package writes.
const FormatVersion = 3

// glyphOrderKey is the standard lib.plist key holding the glyph order.
const glyphOrderKey = "public.glyphOrder"

// A Font is a UFO font source.
type Font struct {
	Path string // the .ufo directory; empty for in-memory fonts

	Meta     MetaInfo
	Info     FontInfo
	Lib      map[string]any
	Features string // contents of features.fea

	layerDir string
	glyphs   map[string]*Glyph
	order    []string

	dirty         map[string]bool // glyphs whose .glif must be rewritten
	obsoleteFiles []string        // .glif files to remove on save
	contentsDirty bool
	libDirty      bool
	featuresDirty bool
}

// New creates an empty in-memory font.
func New(info FontInfo) *Font {
	return &Font{
		Meta:     MetaInfo{Creator: "com.github.fkretlow.sebastian", FormatVersion: FormatVersion},
		Info:     info,
		Lib:      make(map[string]any),
		layerDir: "glyphs",
		glyphs:   make(map[string]*Glyph),
		dirty:    make(map[string]bool),
	}
}

// Open reads a UFO font from disk.
func Open(path string) (*Font, error) {
	f := &Font{
		Path:   path,
		Lib:    make(map[string]any),
		glyphs: make(map[string]*Glyph),
		dirty:  make(map[string]bool),
	}

	if err := readPlist(filepath.Join(path, "metainfo.plist"), &f.Meta); err != nil {
		return nil, err
	}
	if f.Meta.FormatVersion != FormatVersion {
		return nil, fmt.Errorf("%s: unsupported UFO format version %d", path, f.Meta.FormatVersion)
	}
	if err := readPlist(filepath.Join(path, "fontinfo.plist"), &f.Info); err != nil {
		return nil, err
	}
	if err := readPlist(filepath.Join(path, "lib.plist"), &f.Lib); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	layerDir, err := defaultLayerDir(path)
	if err != nil {
		return nil, err
	}
	f.layerDir = layerDir

	if data, err := os.ReadFile(filepath.Join(path, "features.fea")); err == nil {
		f.Features = string(data)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	var contents map[string]string
	if err := readPlist(filepath.Join(path, layerDir, "contents.plist"), &contents); err != nil {
		return nil, err
	}
	for name, file := range contents {
		data, err := os.ReadFile(filepath.Join(path, layerDir, file))
		if err != nil {
			return nil, err
		}
		g, err := ParseGlif(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		if g.Name != name {
			return nil, fmt.Errorf("%s: glyph name %q does not match contents.plist entry %q",
				file, g.Name, name)
		}
		g.file = file
		f.glyphs[name] = g
	}
	f.order = f.makeOrder()

	return f, nil
}

// defaultLayerDir locates the public.default layer in
// layercontents.plist.  Fonts without the file use the conventional
// "glyphs" directory.
func defaultLayerDir(path string) (string, error) {
	var layers [][]string
	err := readPlist(filepath.Join(path, "layercontents.plist"), &layers)
	if errors.Is(err, os.ErrNotExist) {
		return "glyphs", nil
	}
	if err != nil {
		return "", err
	}
	for _, layer := range layers {
		if len(layer) == 2 && layer[0] == "public.default" {
			return layer[1], nil
		}
	}
	if len(layers) > 0 && len(layers[0]) == 2 {
		return layers[0][1], nil
	}
	return "", fmt.Errorf("%s: no default layer in layercontents.plist", path)
}

// makeOrder arranges glyph names per public.glyphOrder, then appends
// the remaining glyphs sorted by name.
func (f *Font) makeOrder() []string {
	order := make([]string, 0, len(f.glyphs))
	seen := make(map[string]bool, len(f.glyphs))
	if raw, ok := f.Lib[glyphOrderKey].([]any); ok {
		for _, v := range raw {
			name, ok := v.(string)
			if !ok || seen[name] {
				continue
			}
			if _, ok := f.glyphs[name]; ok {
				order = append(order, name)
				seen[name] = true
			}
		}
	}
	rest := make([]string, 0, len(f.glyphs)-len(order))
	for name := range f.glyphs {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

// NumGlyphs returns the number of glyphs in the default layer.
func (f *Font) NumGlyphs() int {
	return len(f.glyphs)
}

// Glyph looks up a glyph by name.
func (f *Font) Glyph(name string) (*Glyph, bool) {
	g, ok := f.glyphs[name]
	return g, ok
}

// Glyphs returns the glyphs in font order.
func (f *Font) Glyphs() []*Glyph {
	gg := make([]*Glyph, len(f.order))
	for i, name := range f.order {
		gg[i] = f.glyphs[name]
	}
	return gg
}

// AddGlyph adds a glyph to the default layer.
func (f *Font) AddGlyph(g *Glyph) error {
	if g.Name == "" {
		return errors.New("ufo: glyph without name")
	}
	if _, ok := f.glyphs[g.Name]; ok {
		return fmt.Errorf("ufo: glyph %q already exists", g.Name)
	}
	g.file = glifFileName(g.Name, f.fileExists)
	f.glyphs[g.Name] = g
	f.order = append(f.order, g.Name)
	f.dirty[g.Name] = true
	f.contentsDirty = true
	return nil
}

func (f *Font) fileExists(file string) bool {
	for _, g := range f.glyphs {
		if g.file == file {
			return true
		}
	}
	return false
}

// RenameGlyph renames a glyph and updates every reference to it:
// component bases, the glyph order, and mentions in the feature file.
// The .glif file name is rederived from the new glyph name.
func (f *Font) RenameGlyph(oldName, newName string) error {
	g, ok := f.glyphs[oldName]
	if !ok {
		return fmt.Errorf("ufo: no glyph %q", oldName)
	}
	if oldName == newName {
		return nil
	}
	if _, ok := f.glyphs[newName]; ok {
		return fmt.Errorf("ufo: cannot rename %q to %q: name already taken", oldName, newName)
	}

	if g.file != "" {
		f.obsoleteFiles = append(f.obsoleteFiles, g.file)
	}
	delete(f.glyphs, oldName)
	g.Name = newName
	g.file = glifFileName(newName, f.fileExists)
	f.glyphs[newName] = g
	f.dirty[newName] = true
	f.contentsDirty = true

	for i, name := range f.order {
		if name == oldName {
			f.order[i] = newName
		}
	}
	if raw, ok := f.Lib[glyphOrderKey].([]any); ok {
		for i, v := range raw {
			if v == oldName {
				raw[i] = newName
				f.libDirty = true
			}
		}
	}

	for _, other := range f.glyphs {
		for i := range other.Components {
			if other.Components[i].Base == oldName {
				other.Components[i].Base = newName
				f.dirty[other.Name] = true
			}
		}
	}

	if renamed := renameInFeatures(f.Features, oldName, newName); renamed != f.Features {
		f.Features = renamed
		f.featuresDirty = true
	}
	return nil
}

// isNameByte reports whether c can occur in a glyph name within a
// feature file.
func isNameByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' || c == '.' || c == '_'
}

// renameInFeatures replaces whole-token occurrences of a glyph name.
func renameInFeatures(text, oldName, newName string) string {
	var b strings.Builder
	for i := 0; i < len(text); {
		j := strings.Index(text[i:], oldName)
		if j < 0 {
			b.WriteString(text[i:])
			break
		}
		j += i
		end := j + len(oldName)
		before := j == 0 || !isNameByte(text[j-1])
		after := end == len(text) || !isNameByte(text[end])
		if before && after {
			b.WriteString(text[i:j])
			b.WriteString(newName)
		} else {
			b.WriteString(text[i:end])
		}
		i = end
	}
	return b.String()
}

// Save writes pending changes back to the font's directory.  Only the
// files affected by modifications are rewritten.
func (f *Font) Save() error {
	if f.Path == "" {
		return errors.New("ufo: font has no directory, use SaveTo")
	}
	layerPath := filepath.Join(f.Path, f.layerDir)

	for name := range f.dirty {
		g, ok := f.glyphs[name]
		if !ok {
			continue
		}
		data, err := g.MarshalGlif()
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(layerPath, g.file), data, 0o644); err != nil {
			return err
		}
	}
	for _, file := range f.obsoleteFiles {
		if f.fileExists(file) {
			continue // the name was reused by another glyph
		}
		if err := os.Remove(filepath.Join(layerPath, file)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	if f.contentsDirty {
		if err := writePlist(filepath.Join(layerPath, "contents.plist"), f.contents()); err != nil {
			return err
		}
	}
	if f.libDirty {
		if err := writePlist(filepath.Join(f.Path, "lib.plist"), f.Lib); err != nil {
			return err
		}
	}
	if f.featuresDirty {
		if err := os.WriteFile(filepath.Join(f.Path, "features.fea"), []byte(f.Features), 0o644); err != nil {
			return err
		}
	}

	f.dirty = make(map[string]bool)
	f.obsoleteFiles = nil
	f.contentsDirty = false
	f.libDirty = false
	f.featuresDirty = false
	return nil
}

// SaveTo writes the complete font to a new .ufo directory.
func (f *Font) SaveTo(path string) error {
	layerDir := f.layerDir
	if layerDir == "" {
		layerDir = "glyphs"
	}
	if err := os.MkdirAll(filepath.Join(path, layerDir), 0o755); err != nil {
		return err
	}

	if err := writePlist(filepath.Join(path, "metainfo.plist"), &f.Meta); err != nil {
		return err
	}
	if err := writePlist(filepath.Join(path, "fontinfo.plist"), &f.Info); err != nil {
		return err
	}
	if len(f.Lib) > 0 {
		if err := writePlist(filepath.Join(path, "lib.plist"), f.Lib); err != nil {
			return err
		}
	}
	layers := [][]string{{"public.default", layerDir}}
	if err := writePlist(filepath.Join(path, "layercontents.plist"), layers); err != nil {
		return err
	}
	if f.Features != "" {
		if err := os.WriteFile(filepath.Join(path, "features.fea"), []byte(f.Features), 0o644); err != nil {
			return err
		}
	}

	for _, g := range f.Glyphs() {
		if g.file == "" {
			g.file = glifFileName(g.Name, f.fileExists)
		}
		data, err := g.MarshalGlif()
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(path, layerDir, g.file), data, 0o644); err != nil {
			return err
		}
	}
	if err := writePlist(filepath.Join(path, layerDir, "contents.plist"), f.contents()); err != nil {
		return err
	}

	f.Path = path
	f.layerDir = layerDir
	f.dirty = make(map[string]bool)
	f.obsoleteFiles = nil
	f.contentsDirty = false
	f.libDirty = false
	f.featuresDirty = false
	return nil
}

func (f *Font) contents() map[string]string {
	m := make(map[string]string, len(f.glyphs))
	for name, g := range f.glyphs {
		m[name] = g.file
	}
	return m
}
