package assoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type link struct {
	OtherID int64
	Primary bool
}

func newLinkSet() *JunctionSet[link] {
	return NewJunctionSet(func(l link) int64 { return l.OtherID })
}

func TestJunctionSetAddKeepsFirstRecord(t *testing.T) {
	j := newLinkSet()

	assert.True(t, j.Add(link{OtherID: 4, Primary: true}))
	assert.False(t, j.Add(link{OtherID: 4, Primary: false}))

	records := j.Records()
	require.Len(t, records, 1)
	assert.True(t, records[0].Primary)
}

func TestJunctionSetAddRejectsZeroKey(t *testing.T) {
	j := newLinkSet()
	assert.False(t, j.Add(link{OtherID: 0}))
	assert.Equal(t, 0, j.Len())
}

func TestJunctionSetRemoveDropsAllMatches(t *testing.T) {
	j := newLinkSet()
	j.Add(link{OtherID: 1})
	j.Add(link{OtherID: 2})

	j.Remove(1)
	j.Remove(1)

	assert.Equal(t, []int64{2}, j.IDs())
}

func TestJunctionSetReconcileReplacesMembership(t *testing.T) {
	j := newLinkSet()
	j.Add(link{OtherID: 1, Primary: true})

	j.Reconcile([]link{{OtherID: 2}, {OtherID: 3}, {OtherID: 0}})

	assert.Equal(t, []int64{2, 3}, j.IDs())
	assert.False(t, j.Has(1))
}

func TestJunctionSetRecordsReturnsCopy(t *testing.T) {
	j := newLinkSet()
	j.Add(link{OtherID: 1})

	records := j.Records()
	records[0].OtherID = 42

	assert.Equal(t, []int64{1}, j.IDs())
}
