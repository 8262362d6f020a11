// github.com/fkretlow/sebastian - tooling for the Sebastian music notation font
// Copyright (C) 2026 Florian Kretlow
// Use, distribute and edit this file as you wish.

package sebastian

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/fkretlow/sebastian/smufl"
	"github.com/fkretlow/sebastian/ufo"
)

func loadNames(t *testing.T) *smufl.NameTable {
	t.Helper()
	names, err := smufl.LoadNames("testdata/glyphnames.json")
	if err != nil {
		t.Fatal(err)
	}
	return names
}

func TestSMuFLGlyphs(t *testing.T) {
	font, err := Open("testdata/Sebastian.ufo", loadNames(t), ReadOnly)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, g := range font.SMuFLGlyphs() {
		names = append(names, g.Name)
	}
	// space (U+0020) and the alternate at U+F400 lie outside the range
	want := []string{"noteheadBlack", "accidentalFlat", "accidentalDoubleFlat"}
	if d := cmp.Diff(want, names); d != "" {
		t.Errorf("SMuFLGlyphs (-want +got):\n%s", d)
	}
}

func TestCanonicalName(t *testing.T) {
	font, err := Open("testdata/Sebastian.ufo", loadNames(t), ReadOnly)
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		glyph, want string
	}{
		{"noteheadBlack", "noteheadBlack"},
		{"accidentalFlat", "accidentalFlat"},
		// U+F400 is not in the name table, the name stays
		{"noteheadBlack.salt01", "noteheadBlack.salt01"},
		// no codepoint, the name stays
		{"space", "space"},
	}
	for _, test := range cases {
		g, ok := font.UFO.Glyph(test.glyph)
		if !ok {
			t.Fatalf("glyph %q not found", test.glyph)
		}
		if got := font.CanonicalName(g); got != test.want {
			t.Errorf("CanonicalName(%q) = %q, want %q", test.glyph, got, test.want)
		}
	}
}

func TestMetadata(t *testing.T) {
	font, err := Open("testdata/Sebastian.ufo", loadNames(t), ReadOnly)
	if err != nil {
		t.Fatal(err)
	}
	defaults, err := smufl.LoadEngravingDefaults("src/sebastian_defaults.json")
	if err != nil {
		t.Fatal(err)
	}

	md, err := font.Metadata(defaults)
	if err != nil {
		t.Fatal(err)
	}

	if md.FontName != "Sebastian" {
		t.Errorf("FontName = %q", md.FontName)
	}
	if md.FontVersion != "1.20" {
		t.Errorf("FontVersion = %q, want 1.20", md.FontVersion)
	}
	if md.EngravingDefaults["staffLineThickness"] != 0.125 {
		t.Errorf("engraving defaults not passed through: %v", md.EngravingDefaults)
	}

	wantAnchors := map[string]map[string]smufl.Coord{
		"noteheadBlack": {
			"stemUpSE":   {1.18, 0.04},
			"stemDownNW": {0, -0.04},
		},
	}
	if d := cmp.Diff(wantAnchors, md.GlyphsWithAnchors); d != "" {
		t.Errorf("GlyphsWithAnchors (-want +got):\n%s", d)
	}

	wantBBoxes := map[string]smufl.BBox{
		"noteheadBlack":        {NE: smufl.Coord{1.18, 0.248}, SW: smufl.Coord{0, -0.248}},
		"accidentalFlat":       {NE: smufl.Coord{0.623, 1}, SW: smufl.Coord{0, -0.808}},
		"accidentalDoubleFlat": {NE: smufl.Coord{1.279, 1}, SW: smufl.Coord{0, -0.808}},
	}
	if d := cmp.Diff(wantBBoxes, md.GlyphBBoxes); d != "" {
		t.Errorf("GlyphBBoxes (-want +got):\n%s", d)
	}

	wantAlternates := map[string]smufl.Alternates{
		"noteheadBlack": {Alternates: []smufl.Alternate{
			{Codepoint: "U+F400", Name: "noteheadBlack.salt01"},
		}},
	}
	if d := cmp.Diff(wantAlternates, md.GlyphsWithAlternates); d != "" {
		t.Errorf("GlyphsWithAlternates (-want +got):\n%s", d)
	}

	wantLigatures := map[string]smufl.Ligature{
		"accidentalDoubleFlat": {
			Codepoint:       "U+E264",
			ComponentGlyphs: []string{"accidentalFlat", "accidentalFlat"},
		},
	}
	if d := cmp.Diff(wantLigatures, md.Ligatures); d != "" {
		t.Errorf("Ligatures (-want +got):\n%s", d)
	}
}

// Ligature glyphs encoded outside the standard SMuFL range, such as
// font-specific glyphs in the optional U+F400+ area, stay out of the
// ligatures section.
func TestMetadataSkipsOutOfRangeLigatures(t *testing.T) {
	u := ufo.New(ufo.FontInfo{FamilyName: "Sebastian", UnitsPerEm: 1000})
	glyphs := []*ufo.Glyph{
		{Name: "accidentalFlat", Width: 226, Unicodes: []rune{0xE260}},
		{Name: "accidentalDoubleFlat", Width: 390, Unicodes: []rune{0xE264}},
		{Name: "flatFlat.lig", Width: 390, Unicodes: []rune{0xF500}},
	}
	for _, g := range glyphs {
		if err := u.AddGlyph(g); err != nil {
			t.Fatal(err)
		}
	}
	u.Features = `
feature liga {
    sub accidentalFlat accidentalFlat by accidentalDoubleFlat;
    sub accidentalFlat accidentalFlat by flatFlat.lig;
} liga;
`
	font := New(u, loadNames(t))

	md, err := font.Metadata(nil)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]smufl.Ligature{
		"accidentalDoubleFlat": {
			Codepoint:       "U+E264",
			ComponentGlyphs: []string{"accidentalFlat", "accidentalFlat"},
		},
	}
	if d := cmp.Diff(want, md.Ligatures); d != "" {
		t.Errorf("Ligatures (-want +got):\n%s", d)
	}
}

func TestExportMetadata(t *testing.T) {
	font, err := Open("testdata/Sebastian.ufo", loadNames(t), ReadOnly)
	if err != nil {
		t.Fatal(err)
	}
	buf := &bytes.Buffer{}
	if err := font.ExportMetadata(buf, nil); err != nil {
		t.Fatal(err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"fontName", "fontVersion", "glyphsWithAnchors", "glyphBBoxes"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("missing key %q", key)
		}
	}
	if _, ok := doc["engravingDefaults"]; ok {
		t.Error("engravingDefaults present without defaults file")
	}
	if !strings.HasPrefix(buf.String(), "{\n  ") {
		t.Error("output is not indented")
	}
}

func TestExportFont(t *testing.T) {
	font, err := Open("testdata/Sebastian.ufo", loadNames(t), ReadOnly)
	if err != nil {
		t.Fatal(err)
	}
	buf := &bytes.Buffer{}
	if err := font.ExportFont(buf); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("OTTO")) {
		t.Error("output is not an OpenType/CFF font")
	}
}

func copyFixture(t *testing.T, name string) string {
	t.Helper()
	dst := filepath.Join(t.TempDir(), name)
	if err := os.MkdirAll(dst, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.CopyFS(dst, os.DirFS(filepath.Join("testdata", name))); err != nil {
		t.Fatal(err)
	}
	return dst
}

func TestRenameGlyphs(t *testing.T) {
	dir := copyFixture(t, "Uncanonical.ufo")
	font, err := Open(dir, loadNames(t), ReadWrite)
	if err != nil {
		t.Fatal(err)
	}

	renames, err := font.RenameGlyphs()
	if err != nil {
		t.Fatal(err)
	}
	want := []Rename{
		{Old: "uniE0A4", New: "noteheadBlack"},
		{Old: "uniE260", New: "accidentalFlat"},
		{Old: "uniE264", New: "accidentalDoubleFlat"},
	}
	if d := cmp.Diff(want, renames); d != "" {
		t.Errorf("renames (-want +got):\n%s", d)
	}
	if err := font.Save(); err != nil {
		t.Fatal(err)
	}

	reopened, err := Open(dir, font.Names, ReadOnly)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"noteheadBlack", "accidentalFlat", "accidentalDoubleFlat", "flatAlt"} {
		if _, ok := reopened.UFO.Glyph(name); !ok {
			t.Errorf("glyph %q missing after rename", name)
		}
	}
	dflat, _ := reopened.UFO.Glyph("accidentalDoubleFlat")
	for _, c := range dflat.Components {
		if c.Base != "accidentalFlat" {
			t.Errorf("component base = %q, want accidentalFlat", c.Base)
		}
	}
	if strings.Contains(reopened.UFO.Features, "uniE260") {
		t.Error("feature file still mentions uniE260")
	}

	// a second run must be a no-op
	again, err := reopened.RenameGlyphs()
	if err != nil {
		t.Fatal(err)
	}
	if len(again) != 0 {
		t.Errorf("second rename pass changed glyphs: %v", again)
	}
}

func TestSaveReadOnly(t *testing.T) {
	dir := copyFixture(t, "Uncanonical.ufo")
	font, err := Open(dir, loadNames(t), ReadOnly)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := font.RenameGlyphs(); err != nil {
		t.Fatal(err)
	}
	if err := font.Save(); !errors.Is(err, ErrReadOnly) {
		t.Errorf("Save() = %v, want ErrReadOnly", err)
	}
}
