package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/langtable/langtable/pkg/files"
)

// setupTables writes a source and a target table into a temp dir and
// points the settings at a file that does not exist
func setupTables(t *testing.T) (dir, src, dst string) {
	t.Helper()
	dir = t.TempDir()
	t.Setenv("LANGTABLE_SETTINGS", filepath.Join(dir, "settings.yaml"))
	t.Setenv("LANGTABLE_UI_LANG", "en")

	src = filepath.Join(dir, "en_us.json")
	dst = filepath.Join(dir, "ja_jp.json")
	require.NoError(t, os.WriteFile(src, []byte(`{
  "greet": "Hello there",
  "bye": "Goodbye",
  "item.stone": "§7Stone"
}`), 0644))
	require.NoError(t, os.WriteFile(dst, []byte(`{
  "greet": "Hello there",
  "item.stone": "§7石"
}`), 0644))
	return dir, src, dst
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand("test")
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func readTarget(t *testing.T, path string) map[string]string {
	t.Helper()
	loaded, err := files.ReadTable(path)
	require.NoError(t, err)
	return loaded.Data.Map()
}

func TestStatsCommand(t *testing.T) {
	_, src, dst := setupTables(t)

	tests := []struct {
		name     string
		args     []string
		contains []string
	}{
		{
			name: "text output",
			args: []string{"stats", src, dst},
			contains: []string{
				"Entries:       3",
				"Translated:    1",
				"Untranslated:  2",
				"Progress:      33.3%",
			},
		},
		{
			name:     "yaml output",
			args:     []string{"stats", src, dst, "-o", "yaml"},
			contains: []string{"total: 3", "untranslated: 2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCommand(t, tt.args...)
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
		})
	}
}

func TestStatsCommand_JSON(t *testing.T) {
	_, src, dst := setupTables(t)

	out, err := executeCommand(t, "stats", src, dst, "-o", "json")
	require.NoError(t, err)

	var result StatsResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 1, result.Translated)
	assert.InDelta(t, 33.3, result.Percent, 0.1)
}

func TestStatsCommand_Errors(t *testing.T) {
	dir, src, _ := setupTables(t)

	_, err := executeCommand(t, "stats", filepath.Join(dir, "missing.json"), src)
	assert.Error(t, err)

	_, err = executeCommand(t, "stats", filepath.Join(dir, "table.txt"), src)
	assert.Error(t, err)

	_, err = executeCommand(t, "stats", src, src, "-o", "xml")
	assert.Error(t, err)
}

func TestSearchCommand(t *testing.T) {
	_, src, dst := setupTables(t)

	out, err := executeCommand(t, "search", "STONE", src, dst, "-o", "json")
	require.NoError(t, err)
	var res SearchResults
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Equal(t, 1, res.Count)
	assert.Equal(t, "item.stone", res.Entries[0].Key)

	out, err = executeCommand(t, "search", "", src, dst, "--filter", "untranslated", "-o", "json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	keys := []string{}
	for _, e := range res.Entries {
		keys = append(keys, e.Key)
	}
	assert.Equal(t, []string{"greet", "bye"}, keys)

	out, err = executeCommand(t, "search", "", src, dst, "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "KEY")
	assert.Contains(t, out, "greet")
	assert.NotContains(t, out, "bye")
	assert.Contains(t, out, "1 of 3 entries")

	out, err = executeCommand(t, "search", "nothing-like-this", src, dst)
	require.NoError(t, err)
	assert.Contains(t, out, "No matching entries")

	_, err = executeCommand(t, "search", "x", src, dst, "--filter", "bogus")
	assert.Error(t, err)
}

func TestReplaceCommand(t *testing.T) {
	t.Run("dry run leaves the file alone", func(t *testing.T) {
		_, src, dst := setupTables(t)

		out, err := executeCommand(t, "replace", "hello", "Hi", src, dst, "--dry-run")
		require.NoError(t, err)
		assert.Contains(t, out, "greet")
		assert.Contains(t, out, "  - Hello there")
		assert.Contains(t, out, "  + Hi there")
		assert.Equal(t, "Hello there", readTarget(t, dst)["greet"])
	})

	t.Run("yes applies the plan", func(t *testing.T) {
		_, src, dst := setupTables(t)

		out, err := executeCommand(t, "replace", "hello", "Hi", src, dst, "--yes", "-o", "json")
		require.NoError(t, err)

		var res ReplaceResult
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		assert.True(t, res.Applied)
		require.Len(t, res.Changes, 1)
		assert.Equal(t, "Hi there", res.Changes[0].After)

		target := readTarget(t, dst)
		assert.Equal(t, "Hi there", target["greet"])
		assert.Equal(t, "§7石", target["item.stone"])
	})

	t.Run("nothing to change", func(t *testing.T) {
		_, src, dst := setupTables(t)

		_, err := executeCommand(t, "replace", "absent", "x", src, dst, "--yes")
		require.NoError(t, err)
		assert.Equal(t, "Hello there", readTarget(t, dst)["greet"])
	})

	t.Run("empty search term", func(t *testing.T) {
		_, src, dst := setupTables(t)

		_, err := executeCommand(t, "replace", "  ", "x", src, dst, "--yes")
		assert.Error(t, err)
	})
}

func TestConvertCommand(t *testing.T) {
	dir, src, _ := setupTables(t)
	out := filepath.Join(dir, "en_US.lang")

	_, err := executeCommand(t, "convert", src, out)
	require.NoError(t, err)

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "bye=Goodbye\ngreet=Hello there\nitem.stone=§7Stone\n", string(content))

	back := filepath.Join(dir, "back.json")
	_, err = executeCommand(t, "convert", out, back)
	require.NoError(t, err)
	assert.Equal(t, "Goodbye", readTarget(t, back)["bye"])

	_, err = executeCommand(t, "convert", src, filepath.Join(dir, "out.yaml"))
	assert.Error(t, err)
}

func TestProjectCommands(t *testing.T) {
	dir, src, dst := setupTables(t)
	project := filepath.Join(dir, "mod.mctp")

	now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = time.Now })

	_, err := executeCommand(t, "project", "pack", "My Mod", src, dst,
		"--file", project, "--target-lang", "ko", "--tag", "mc", "--tag", "mod", "-d", "A test mod")
	require.NoError(t, err)

	out, err := executeCommand(t, "project", "info", project, "-o", "json")
	require.NoError(t, err)
	var info ProjectInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "My Mod", info.Name)
	assert.Equal(t, "ko", info.TargetLang)
	assert.Equal(t, []string{"mc", "mod"}, info.Tags)
	assert.Equal(t, 3, info.Counts.Total)
	assert.Equal(t, "2026-03-01T12:00:00.000Z", info.CreatedAt)

	out, err = executeCommand(t, "project", "info", project)
	require.NoError(t, err)
	assert.Contains(t, out, "Languages:    en → ko")
	assert.Contains(t, out, "Tags:         mc, mod")

	// the project is editable like a table pair
	_, err = executeCommand(t, "replace", "hello", "Hi", project, "--yes")
	require.NoError(t, err)

	outSrc := filepath.Join(dir, "out_src.lang")
	outDst := filepath.Join(dir, "out_dst.json")
	_, err = executeCommand(t, "project", "unpack", project, outSrc, outDst)
	require.NoError(t, err)
	assert.Equal(t, "Hi there", readTarget(t, outDst)["greet"])
	assert.Equal(t, "Goodbye", readTarget(t, outSrc)["bye"])

	_, err = executeCommand(t, "project", "pack", "", src, dst, "--file", project, "--force")
	assert.Error(t, err)
}

func TestGlossaryCommands(t *testing.T) {
	dir, src, dst := setupTables(t)
	project := filepath.Join(dir, "mod.mctp")
	_, err := executeCommand(t, "project", "pack", "mod", src, dst, "--file", project)
	require.NoError(t, err)

	_, err = executeCommand(t, "glossary", "add", project, "Stone", "石")
	require.NoError(t, err)
	_, err = executeCommand(t, "glossary", "add", project, "Goodbye", "さようなら")
	require.NoError(t, err)

	out, err := executeCommand(t, "glossary", "list", project, "-o", "json")
	require.NoError(t, err)
	var items []GlossaryItem
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 2)
	assert.Equal(t, GlossaryItem{Index: 2, Term: "Goodbye", Value: "さようなら"}, items[1])

	// filtered numbers stay those of the full list
	out, err = executeCommand(t, "glossary", "list", project, "--filter", "good", "-o", "json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Index)

	out, err = executeCommand(t, "show", "item.stone", project, "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"glossary"`)
	assert.Contains(t, out, "石")

	_, err = executeCommand(t, "glossary", "remove", project, "1")
	require.NoError(t, err)
	p, err := files.ReadProject(project)
	require.NoError(t, err)
	require.Len(t, p.Data.Glossary, 1)
	assert.Equal(t, "Goodbye", p.Data.Glossary[0].Key)

	_, err = executeCommand(t, "glossary", "remove", project, "5")
	assert.Error(t, err)
	_, err = executeCommand(t, "glossary", "remove", project, "zero")
	assert.Error(t, err)
	_, err = executeCommand(t, "glossary", "add", project, " ", "x")
	assert.Error(t, err)
	_, err = executeCommand(t, "glossary", "list", src)
	assert.Error(t, err)
}

func TestShowCommand(t *testing.T) {
	_, src, dst := setupTables(t)

	out, err := executeCommand(t, "show", "bye", src, dst, "--raw")
	require.NoError(t, err)
	assert.Contains(t, out, "Key:     bye")
	assert.Contains(t, out, "Source:  Goodbye")
	assert.Contains(t, out, "(untranslated)")

	out, err = executeCommand(t, "show", "item.stone", src, dst, "--raw")
	require.NoError(t, err)
	assert.Contains(t, out, "Target:  §7石")
	assert.NotContains(t, out, "untranslated")

	_, err = executeCommand(t, "show", "missing.key", src, dst)
	assert.Error(t, err)
}

func TestClipboardCommand(t *testing.T) {
	_, src, dst := setupTables(t)

	var copied string
	orig := writeClipboard
	writeClipboard = func(s string) error {
		copied = s
		return nil
	}
	t.Cleanup(func() { writeClipboard = orig })

	_, err := executeCommand(t, "clipboard", "item.stone", src, dst)
	require.NoError(t, err)
	assert.Equal(t, "§7石", copied)

	out, err := executeCommand(t, "copy", "item.stone", src, dst, "--source", "--print")
	require.NoError(t, err)
	assert.Equal(t, "§7Stone", copied)
	assert.Contains(t, out, "§7Stone")
}

func TestTranslateCommand(t *testing.T) {
	_, src, dst := setupTables(t)

	var got map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"translatedText":"さようなら","detectedLanguage":"en"}`))
	}))
	defer server.Close()
	t.Setenv("LANGTABLE_TRANSLATE_ENDPOINT", server.URL)

	out, err := executeCommand(t, "translate", "Goodbye", "--to", "ja")
	require.NoError(t, err)
	assert.Equal(t, "さようなら\n", out)
	assert.Equal(t, "Goodbye", got["text"])
	assert.Equal(t, "ja", got["to"])

	out, err = executeCommand(t, "translate", "--key", "bye", src, dst, "--apply", "--from", "en", "-o", "json")
	require.NoError(t, err)
	var res TranslateResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.Applied)
	assert.Equal(t, "bye", res.Key)
	assert.Equal(t, "en", got["from"])
	assert.Equal(t, "さようなら", readTarget(t, dst)["bye"])

	_, err = executeCommand(t, "translate", "Goodbye", "--apply")
	assert.Error(t, err)
}

func TestTranslateCommand_ServiceError(t *testing.T) {
	setupTables(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()
	t.Setenv("LANGTABLE_TRANSLATE_ENDPOINT", server.URL)

	root := NewRootCommand("test")
	root.SetOut(new(bytes.Buffer))
	root.SetArgs([]string{"translate", "Hello"})
	cmd, err := root.ExecuteC()
	require.Error(t, err)
	assert.Contains(t, ErrorText(cmd, err), "too many requests")
}

func TestMarkupCommand(t *testing.T) {
	setupTables(t)

	out, err := executeCommand(t, "markup", "§6Gold §lbold§r plain", "--strip")
	require.NoError(t, err)
	assert.Equal(t, "Gold bold plain\n", out)

	out, err = executeCommand(t, "markup", "Hello", "--insert", "c", "--at", "2", "-o", "json")
	require.NoError(t, err)
	var segs []MarkupSegment
	require.NoError(t, json.Unmarshal([]byte(out), &segs))
	require.Len(t, segs, 3)
	assert.Equal(t, "He", segs[0].Text)
	assert.True(t, segs[1].Code)
	assert.Equal(t, "llo", segs[2].Text)
	assert.NotEmpty(t, segs[2].Color)

	out, err = executeCommand(t, "markup", "--legend")
	require.NoError(t, err)
	assert.Contains(t, out, "gold")

	_, err = executeCommand(t, "markup", "x", "--insert", "z")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "langtable test")
}

func TestSettingsCommands(t *testing.T) {
	dir, src, dst := setupTables(t)
	path := filepath.Join(dir, "settings.yaml")

	out, err := executeCommand(t, "settings", "path")
	require.NoError(t, err)
	assert.Equal(t, path+"\n", out)

	_, err = executeCommand(t, "settings", "init")
	require.NoError(t, err)
	_, err = executeCommand(t, "settings", "init")
	assert.Error(t, err)

	_, err = executeCommand(t, "settings", "set", "ui.default_filter", "untranslated")
	require.NoError(t, err)
	_, err = executeCommand(t, "settings", "set", "translate.to", "ko")
	require.NoError(t, err)

	settings, err := files.ReadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "untranslated", settings.UI.DefaultFilter)
	assert.Equal(t, "ko", settings.Translate.To)
	assert.True(t, settings.Editor.SortLangKeys)

	out, err = executeCommand(t, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "default_filter: untranslated")

	// the default filter applies to commands that open a document
	out, err = executeCommand(t, "stats", src, dst)
	require.NoError(t, err)
	assert.Contains(t, out, "Entries:       3")

	_, err = executeCommand(t, "settings", "set", "ui.value_width", "3")
	assert.Error(t, err)
	_, err = executeCommand(t, "settings", "set", "ui.nope", "x")
	assert.Error(t, err)
}
