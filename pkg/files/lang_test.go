package files

import (
	"reflect"
	"testing"

	"github.com/langtable/langtable/pkg/models"
)

func TestParseLang(t *testing.T) {
	content := "# Blocks\n" +
		"tile.stone.name=Stone\n" +
		"\n" +
		"# free comment\n" +
		"\n" +
		"  tile.dirt.name =  Dirt  \n" +
		"no separator here\n" +
		"gui.url=https://example.com/?a=b\r\n" +
		"# trailing\n"

	data, comments := parseLang(content)

	wantKeys := []string{"tile.stone.name", "tile.dirt.name", "gui.url"}
	if !reflect.DeepEqual(data.Keys(), wantKeys) {
		t.Fatalf("keys = %v, want %v", data.Keys(), wantKeys)
	}
	if v, _ := data.Get("tile.dirt.name"); v != "Dirt" {
		t.Errorf("tile.dirt.name = %q, want trimmed %q", v, "Dirt")
	}
	if v, _ := data.Get("gui.url"); v != "https://example.com/?a=b" {
		t.Errorf("value split on first '=' only, got %q", v)
	}

	wantComments := models.Comments{
		"key:tile.stone.name": "Blocks",
		"line:3":              "free comment",
		"line:8":              "trailing",
	}
	if !reflect.DeepEqual(comments, wantComments) {
		t.Errorf("comments = %v, want %v", comments, wantComments)
	}
}

func TestParseLang_CommentBeforeComment(t *testing.T) {
	_, comments := parseLang("# first\n# second\nkey=value\n")

	want := models.Comments{"line:0": "first", "key:key": "second"}
	if !reflect.DeepEqual(comments, want) {
		t.Errorf("comments = %v, want %v", comments, want)
	}
}

func TestParseLang_DuplicateKeyKeepsFirstPosition(t *testing.T) {
	data, _ := parseLang("a=1\nb=2\na=3\n")

	if !reflect.DeepEqual(data.Keys(), []string{"a", "b"}) {
		t.Fatalf("keys = %v", data.Keys())
	}
	if v, _ := data.Get("a"); v != "3" {
		t.Errorf("a = %q, want last value", v)
	}
}

func TestEncodeLang(t *testing.T) {
	data := models.OrderedMapOf("b.key", "B", "a.key", "A")
	comments := models.Comments{
		"key:b.key": "about b",
		"line:12":   "twelve",
		"line:2":    "two",
	}

	tests := []struct {
		name   string
		sorted bool
		want   string
	}{
		{
			name:   "sorted",
			sorted: true,
			want:   "a.key=A\n# about b\nb.key=B\n\n# two\n# twelve\n",
		},
		{
			name:   "table order",
			sorted: false,
			want:   "# about b\nb.key=B\na.key=A\n\n# two\n# twelve\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(encodeLang(data, comments, tt.sorted))
			if got != tt.want {
				t.Errorf("encodeLang() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLangRoundTrip(t *testing.T) {
	original := "# Blocks\na=Alpha\nb=Beta\n\n# note\n"
	data, comments := parseLang(original)

	again, againComments := parseLang(string(encodeLang(data, comments, true)))
	if !again.Equal(data) {
		t.Errorf("data changed: %v -> %v", data.Keys(), again.Keys())
	}
	if againComments["key:a"] != "Blocks" {
		t.Errorf("attached comment lost: %v", againComments)
	}
	found := false
	for k, v := range againComments {
		if v == "note" && k != "key:a" {
			found = true
		}
	}
	if !found {
		t.Errorf("line comment lost: %v", againComments)
	}
}
