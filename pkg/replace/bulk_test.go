package replace

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/langtable/langtable/pkg/models"
	"github.com/langtable/langtable/pkg/table"
)

func TestBulkReplace(t *testing.T) {
	tbl := table.Build(
		models.OrderedMapOf("a.b", "Hello", "c", "World", "d", "Nothing"),
		models.OrderedMapOf("a.b", "Hello", "c", "World", "d", "xyz"),
	)

	next, n, err := BulkReplace(tbl, "o", "0")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	ab, _ := next.Get("a.b")
	c, _ := next.Get("c")
	d, _ := next.Get("d")
	assert.Equal(t, "Hell0", ab.Target)
	assert.Equal(t, "W0rld", c.Target)
	assert.Equal(t, "xyz", d.Target)

	orig, _ := tbl.Get("a.b")
	assert.Equal(t, "Hello", orig.Target)
}

func TestBulkReplace_EmptySearch(t *testing.T) {
	tbl := helloTable()

	next, n, err := BulkReplace(tbl, "", "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrEmptyQuery))
	assert.Zero(t, n)
	assert.Same(t, tbl, next)
}

func TestBulkReplace_NoMatchIsNotAnError(t *testing.T) {
	tbl := helloTable()

	next, n, err := BulkReplace(tbl, "zzz", "x")
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Same(t, tbl, next)
}

func TestPlanBulk(t *testing.T) {
	tbl := threeTable()

	plan, err := PlanBulk(tbl, "RED", "green")
	require.NoError(t, err)
	assert.Equal(t, StateBulkConfirm, plan.State())
	assert.Equal(t, []models.Edit{
		{Key: "k1", Before: "red fox", After: "green fox"},
		{Key: "k3", Before: "Red sky red", After: "green sky green"},
	}, plan.Changes())

	plan.Discard()
	assert.Equal(t, StateIdle, plan.State())
	_, _, err = plan.Apply(tbl, nil)
	assert.ErrorIs(t, err, models.ErrNoSession)
}

func TestPlanBulk_SkipsNoOpChanges(t *testing.T) {
	tbl := table.Build(
		models.OrderedMapOf("k", "src"),
		models.OrderedMapOf("k", "Abc"),
	)
	plan, err := PlanBulk(tbl, "abc", "Abc")
	require.NoError(t, err)
	assert.Zero(t, plan.Len())
}

func TestBulkPlan_ApplyWriteFailure(t *testing.T) {
	tbl := threeTable()
	plan, err := PlanBulk(tbl, "red", "green")
	require.NoError(t, err)

	boom := errors.New("read-only")
	next, n, err := plan.Apply(tbl, func(*table.Table) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, n)
	assert.Same(t, tbl, next)
	assert.Equal(t, StateBulkConfirm, plan.State(), "plan can be retried")

	var written *table.Table
	next, n, err = plan.Apply(tbl, func(out *table.Table) error {
		written = out
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Same(t, written, next)
}
