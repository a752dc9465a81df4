package files

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/langtable/langtable/pkg/models"
)

var fixedNow = time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

func TestProjectFileName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"my-pack_1", "my-pack_1.mctp"},
		{"My Pack!", "My_Pack_.mctp"},
		{"日本語", "___.mctp"},
		{"", ".mctp"},
	}
	for _, tt := range tests {
		if got := ProjectFileName(tt.name); got != tt.want {
			t.Errorf("ProjectFileName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestEncodeDecodeProject(t *testing.T) {
	p := NewProject("Pack", fixedNow)
	p.Data.TranslateSource = models.OrderedMapOf("z", "Zed", "a", "Ay")
	p.Data.TranslateTarget = models.OrderedMapOf("a", "エー")
	p.Data.SourceComments = models.Comments{"key:z": "last letter"}
	p.Data.Glossary = []models.GlossaryTerm{{Key: "Zed", Value: "ゼット"}}

	later := fixedNow.Add(time.Hour)
	content, err := EncodeProject(p, later)
	if err != nil {
		t.Fatalf("EncodeProject failed: %v", err)
	}
	if !strings.Contains(string(content), `"updatedAt": "2025-03-01T10:30:00.000Z"`) {
		t.Errorf("updatedAt not bumped:\n%s", content)
	}
	if !strings.Contains(string(content), `"createdAt": "2025-03-01T09:30:00.000Z"`) {
		t.Errorf("createdAt changed:\n%s", content)
	}

	got, err := DecodeProject(content)
	if err != nil {
		t.Fatalf("DecodeProject failed: %v", err)
	}
	if got.Version != ProjectVersion || got.Name != "Pack" {
		t.Errorf("header = %q %q", got.Version, got.Name)
	}
	if !reflect.DeepEqual(got.Data.TranslateSource.Keys(), []string{"z", "a"}) {
		t.Errorf("source order lost: %v", got.Data.TranslateSource.Keys())
	}
	if v, _ := got.Data.TranslateTarget.Get("a"); v != "エー" {
		t.Errorf("target a = %q", v)
	}
	if got.Data.SourceComments["key:z"] != "last letter" {
		t.Errorf("comments = %v", got.Data.SourceComments)
	}
	if !reflect.DeepEqual(got.Data.Glossary, p.Data.Glossary) {
		t.Errorf("glossary = %v", got.Data.Glossary)
	}
	if got.Metadata.SourceLang != "en" || got.Metadata.TargetLang != "ja" {
		t.Errorf("metadata = %+v", got.Metadata)
	}
}

func TestDecodeProject_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", `{"version":`},
		{"array", `[]`},
		{"missing version", `{"name":"a","createdAt":"x","updatedAt":"y","data":{}}`},
		{"numeric name", `{"version":"1.0.0","name":3,"createdAt":"x","updatedAt":"y","data":{}}`},
		{"missing updatedAt", `{"version":"1.0.0","name":"a","createdAt":"x","data":{}}`},
		{"data not object", `{"version":"1.0.0","name":"a","createdAt":"x","updatedAt":"y","data":[]}`},
		{"missing data", `{"version":"1.0.0","name":"a","createdAt":"x","updatedAt":"y"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeProject([]byte(tt.content))
			if !errors.Is(err, models.ErrInvalidProject) {
				t.Fatalf("error = %v, want ErrInvalidProject", err)
			}
			if !models.IsIO(err) {
				t.Errorf("error kind = %v, want io", models.KindOf(err))
			}
		})
	}
}

func TestDecodeProject_NullTables(t *testing.T) {
	content := `{"version":"1.0.0","name":"a","createdAt":"x","updatedAt":"y",
		"data":{"translateSource":null,"translateTarget":null,"sourceComments":null,"targetComments":null,"glossary":[]},
		"metadata":{"sourceLang":"en","targetLang":"ja","description":"","tags":[]}}`

	p, err := DecodeProject([]byte(content))
	if err != nil {
		t.Fatalf("DecodeProject failed: %v", err)
	}
	if p.Data.TranslateSource != nil {
		t.Errorf("expected nil source")
	}
	if p.Data.SourceComments == nil {
		t.Errorf("comments should default to empty")
	}
}

func TestProjectStore(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ProjectFileName("pack"))

	p := NewProject("pack", fixedNow)
	p.Data.TranslateSource = models.OrderedMapOf("a", "Apple", "b", "Bee")
	if err := WriteProject(path, p, fixedNow); err != nil {
		t.Fatalf("WriteProject failed: %v", err)
	}

	store, err := OpenProjectStore(path)
	if err != nil {
		t.Fatalf("OpenProjectStore failed: %v", err)
	}
	store.now = func() time.Time { return fixedNow.Add(time.Minute) }

	target, err := store.TargetMap()
	if err != nil || target.Len() != 0 {
		t.Fatalf("TargetMap() = %v, %v", target, err)
	}

	if err := store.SetTargetMap(models.OrderedMapOf("a", "りんご")); err != nil {
		t.Fatalf("SetTargetMap failed: %v", err)
	}
	if err := store.SetGlossary([]models.GlossaryTerm{{Key: "Bee", Value: "ハチ"}}); err != nil {
		t.Fatalf("SetGlossary failed: %v", err)
	}

	reopened, err := ReadProject(path)
	if err != nil {
		t.Fatalf("ReadProject failed: %v", err)
	}
	if v, _ := reopened.Data.TranslateTarget.Get("a"); v != "りんご" {
		t.Errorf("target a = %q", v)
	}
	if len(reopened.Data.Glossary) != 1 || reopened.Data.Glossary[0].Value != "ハチ" {
		t.Errorf("glossary = %v", reopened.Data.Glossary)
	}
	if reopened.UpdatedAt != "2025-03-01T09:31:00.000Z" {
		t.Errorf("updatedAt = %q", reopened.UpdatedAt)
	}
}

func TestProjectStore_NoSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.mctp")
	if err := WriteProject(path, NewProject("empty", fixedNow), fixedNow); err != nil {
		t.Fatalf("WriteProject failed: %v", err)
	}
	store, err := OpenProjectStore(path)
	if err != nil {
		t.Fatalf("OpenProjectStore failed: %v", err)
	}
	if _, err := store.SourceMap(); !errors.Is(err, models.ErrNoSource) {
		t.Errorf("SourceMap() error = %v, want ErrNoSource", err)
	}
}

func TestPackUnpack(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "en_us.lang")
	dst := filepath.Join(dir, "ja_jp.json")

	if err := WriteTable(src, models.OrderedMapOf("a", "Apple"), models.Comments{"key:a": "fruit"}, SaveOptions{}); err != nil {
		t.Fatalf("WriteTable failed: %v", err)
	}

	p, err := Pack("fruit", src, dst, fixedNow)
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	if p.Data.SourceComments["key:a"] != "fruit" {
		t.Errorf("source comments = %v", p.Data.SourceComments)
	}
	if p.Data.TranslateTarget.Len() != 0 {
		t.Errorf("missing target should pack as empty")
	}

	outSrc := filepath.Join(dir, "out", "en_us.lang")
	outDst := filepath.Join(dir, "out", "ja_jp.json")
	if err := Unpack(p, outSrc, outDst, SaveOptions{}); err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}
	loaded, err := ReadTable(outSrc)
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}
	if loaded.Comments["key:a"] != "fruit" {
		t.Errorf("comments not unpacked: %v", loaded.Comments)
	}
}
