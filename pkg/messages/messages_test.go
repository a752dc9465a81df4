package messages

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/langtable/langtable/pkg/models"
)

func TestCatalog_Text(t *testing.T) {
	en, err := New("en")
	require.NoError(t, err)
	assert.Equal(t, "Replaced text in 2 entries", en.Text(ReplaceCommitted, map[string]any{"Count": 2}))

	ja, err := New("ja")
	require.NoError(t, err)
	assert.Equal(t, "2 件の項目を置換しました", ja.Text(ReplaceCommitted, map[string]any{"Count": 2}))
}

func TestCatalog_FallsBackToEnglish(t *testing.T) {
	c, err := New("fr")
	require.NoError(t, err)
	assert.Equal(t, "Copied to clipboard", c.Text(Copied, nil))
}

func TestCatalog_UnknownID(t *testing.T) {
	c, err := New("en")
	require.NoError(t, err)
	assert.Equal(t, "no_such_message", c.Text("no_such_message", nil))
}

func TestErrorID(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "sentinel", err: models.Validation("start", models.ErrEmptyQuery), want: "error_empty_query"},
		{name: "wrapped sentinel", err: fmt.Errorf("ctx: %w", models.ErrNoMatches), want: "error_no_matches"},
		{name: "io kind", err: models.IOError("read", errors.New("permission denied")), want: ErrorIO},
		{name: "external kind", err: models.External("translate", errors.New("502")), want: ErrorExternal},
		{name: "plain", err: errors.New("boom"), want: ErrorUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorID(tt.err))
		})
	}
}

func TestCatalog_Error(t *testing.T) {
	c, err := New("en")
	require.NoError(t, err)

	keyErr := models.Validation("apply edit", fmt.Errorf("%w: gui.done", models.ErrKeyNotFound))
	assert.Equal(t, "Key not found: gui.done", c.Error(keyErr))

	assert.Equal(t, "Enter a search term", c.Error(models.Validation("start", models.ErrEmptyQuery)))
	assert.Equal(t, "File error: read a.json: denied", c.Error(models.IOError("read a.json", errors.New("denied"))))
	assert.Empty(t, c.Error(nil))
}

func TestCatalogsDefineSameMessages(t *testing.T) {
	en, err := New("en")
	require.NoError(t, err)
	ja, err := New("ja")
	require.NoError(t, err)

	ids := []string{Loaded, Saved, ReplaceStarted, ReplaceReview, BulkPlanned, Translating, GlossaryAdded, ErrorExternal}
	for _, e := range errorIDs {
		ids = append(ids, e.id)
	}
	data := map[string]any{"Count": 1, "Total": 1, "Untranslated": 0, "Key": "k", "Path": "p", "Search": "s", "Replace": "r", "Detail": "d"}
	for _, id := range ids {
		assert.NotEqual(t, id, en.Text(id, data), "en missing %s", id)
		assert.NotEqual(t, id, ja.Text(id, data), "ja missing %s", id)
	}
}
