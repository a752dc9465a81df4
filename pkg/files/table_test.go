package files

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/langtable/langtable/pkg/models"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		ext      string
		wantKeys []string
		wantErr  error
	}{
		{
			name:     "json keeps file order",
			contents: `{"z.key": "Z", "a.key": "A", "m.key": "M"}`,
			ext:      ".json",
			wantKeys: []string{"z.key", "a.key", "m.key"},
		},
		{
			name:     "lang",
			contents: "z=1\na=2\n",
			ext:      "lang",
			wantKeys: []string{"z", "a"},
		},
		{
			name:     "extension is case-insensitive",
			contents: `{}`,
			ext:      ".JSON",
			wantKeys: []string{},
		},
		{
			name:     "unsupported extension",
			contents: "a: b",
			ext:      ".yaml",
			wantErr:  models.ErrUnsupportedFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loaded, err := Load([]byte(tt.contents), tt.ext)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Load() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() failed: %v", err)
			}
			keys := loaded.Data.Keys()
			if keys == nil {
				keys = []string{}
			}
			if !reflect.DeepEqual(keys, tt.wantKeys) {
				t.Errorf("keys = %v, want %v", keys, tt.wantKeys)
			}
		})
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	for _, contents := range []string{`{"a":`, `["a"]`, `{"a": {"nested": "x"}}`} {
		_, err := Load([]byte(contents), ".json")
		if err == nil {
			t.Errorf("Load(%q) succeeded, want error", contents)
			continue
		}
		if !models.IsIO(err) {
			t.Errorf("Load(%q) error kind = %v, want io", contents, models.KindOf(err))
		}
	}
}

func TestSaveJSON(t *testing.T) {
	data := models.OrderedMapOf("b", "<B & \"b\">", "a", "日本語")

	got, err := Save(data, nil, FormatJSON, DefaultSaveOptions)
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	want := "{\n  \"b\": \"<B & \\\"b\\\">\",\n  \"a\": \"日本語\"\n}\n"
	if string(got) != want {
		t.Errorf("Save() = %q, want %q", got, want)
	}

	empty, _ := Save(models.NewOrderedMap(), nil, FormatJSON, DefaultSaveOptions)
	if string(empty) != "{}\n" {
		t.Errorf("empty table = %q", empty)
	}
}

func TestSave_UnsupportedFormat(t *testing.T) {
	_, err := Save(models.NewOrderedMap(), nil, Format("csv"), DefaultSaveOptions)
	if !errors.Is(err, models.ErrUnsupportedFormat) {
		t.Errorf("error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestReadWriteTable(t *testing.T) {
	dir := t.TempDir()
	data := models.OrderedMapOf("gui.done", "完了", "gui.cancel", "キャンセル")

	for _, name := range []string{"ja_jp.json", "ja_jp.lang"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, "nested", name)
			comments := models.Comments{"key:gui.done": "buttons"}

			if err := WriteTable(path, data, comments, SaveOptions{}); err != nil {
				t.Fatalf("WriteTable failed: %v", err)
			}
			loaded, err := ReadTable(path)
			if err != nil {
				t.Fatalf("ReadTable failed: %v", err)
			}
			if !loaded.Data.Equal(data) {
				t.Errorf("read back %v, want %v", loaded.Data.Map(), data.Map())
			}
			if filepath.Ext(name) == ".lang" && loaded.Comments["key:gui.done"] != "buttons" {
				t.Errorf("comment not written: %v", loaded.Comments)
			}
		})
	}
}

func TestReadTable_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")

	_, err := ReadTable(path)
	if !errors.Is(err, os.ErrNotExist) || !models.IsIO(err) {
		t.Errorf("ReadTable() error = %v", err)
	}

	loaded, err := ReadTableOrEmpty(path)
	if err != nil {
		t.Fatalf("ReadTableOrEmpty failed: %v", err)
	}
	if loaded.Data.Len() != 0 {
		t.Errorf("expected empty table, got %d keys", loaded.Data.Len())
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"en_us.json":        FormatJSON,
		"assets/ja_jp.lang": FormatLang,
		"X.Lang":            FormatLang,
	}
	for path, want := range tests {
		got, err := FormatFromPath(path)
		if err != nil || got != want {
			t.Errorf("FormatFromPath(%q) = %q, %v; want %q", path, got, err, want)
		}
	}
	if _, err := FormatFromPath("README"); err == nil {
		t.Error("expected error for missing extension")
	}
}
