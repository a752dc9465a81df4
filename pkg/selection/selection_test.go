package selection

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/langtable/langtable/pkg/models"
	"github.com/langtable/langtable/pkg/table"
)

type memBackend struct {
	values map[string]string
	err    error
}

func (b *memBackend) Has(key string) bool {
	_, ok := b.values[key]
	return ok
}

func (b *memBackend) WriteTarget(key, value string) error {
	if b.err != nil {
		return b.err
	}
	b.values[key] = value
	return nil
}

type fakeSession struct {
	active     bool
	candidates map[string]bool
	jumped     []string
}

func (s *fakeSession) Active() bool                { return s.active }
func (s *fakeSession) IsCandidate(key string) bool { return s.candidates[key] }
func (s *fakeSession) JumpTo(key string) error {
	s.jumped = append(s.jumped, key)
	return nil
}

func newBackend() *memBackend {
	return &memBackend{values: map[string]string{"a": "", "b": "B"}}
}

func TestCoordinator_StartsEmpty(t *testing.T) {
	c := NewCoordinator(newBackend())
	assert.True(t, c.Current().Empty())
	assert.Equal(t, models.NoSelection, c.Current().Key)
}

func TestCoordinator_DirectEdit(t *testing.T) {
	b := newBackend()
	c := NewCoordinator(b)

	require.NoError(t, c.Select("a", "Apple", ""))
	require.NoError(t, c.EditTarget("りんご"))

	assert.Equal(t, "りんご", b.values["a"])
	assert.Equal(t, "りんご", c.Current().Target)
}

func TestCoordinator_EditRefusedDuringReplace(t *testing.T) {
	b := newBackend()
	c := NewCoordinator(b)
	require.NoError(t, c.Select("b", "Bee", "B"))

	c.Attach(&fakeSession{active: true})
	err := c.EditTarget("changed")
	assert.ErrorIs(t, err, models.ErrReplaceActive)
	assert.True(t, models.IsValidation(err))
	assert.Equal(t, "B", b.values["b"])

	c.Detach()
	require.NoError(t, c.EditTarget("changed"))
	assert.Equal(t, "changed", b.values["b"])
}

func TestCoordinator_EditWithoutSelection(t *testing.T) {
	c := NewCoordinator(newBackend())
	assert.ErrorIs(t, c.EditTarget("x"), models.ErrNoSelection)
}

func TestCoordinator_WriteFailureKeepsSelection(t *testing.T) {
	b := newBackend()
	b.err = errors.New("disk full")
	c := NewCoordinator(b)
	require.NoError(t, c.Select("b", "Bee", "B"))

	assert.Error(t, c.EditTarget("x"))
	assert.Equal(t, "B", c.Current().Target)
}

func TestCoordinator_SelectJumpsSession(t *testing.T) {
	c := NewCoordinator(newBackend())
	s := &fakeSession{active: true, candidates: map[string]bool{"b": true}}
	c.Attach(s)

	require.NoError(t, c.Select("a", "Apple", ""))
	require.NoError(t, c.Select("b", "Bee", "B"))
	assert.Equal(t, []string{"b"}, s.jumped)
	assert.Equal(t, "b", c.Current().Key)
}

func TestCoordinator_SelectUnknownKey(t *testing.T) {
	c := NewCoordinator(newBackend())
	err := c.Select("zzz", "", "")
	assert.ErrorIs(t, err, models.ErrKeyNotFound)
	assert.True(t, c.Current().Empty())
}

func TestCoordinator_Revalidate(t *testing.T) {
	c := NewCoordinator(newBackend())
	require.NoError(t, c.Select("a", "Apple", ""))

	reloaded := table.Build(models.OrderedMapOf("a", "Apple"), models.OrderedMapOf("a", "林檎"))
	assert.True(t, c.Revalidate(reloaded))
	assert.Equal(t, "林檎", c.Current().Target)

	gone := table.Build(models.OrderedMapOf("x", "X"), nil)
	assert.False(t, c.Revalidate(gone))
	assert.Equal(t, models.NoSelection, c.Current().Key)
}
