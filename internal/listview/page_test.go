package listview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	Name string
	Code string
}

var rowFields = func(r row) []string { return []string{r.Name, r.Code} }

func TestFilterMatchesCaseInsensitively(t *testing.T) {
	items := []row{
		{Name: "Computer Science", Code: "CS"},
		{Name: "Graphic Design", Code: "GD"},
	}

	assert.Len(t, Filter(items, "computer", rowFields), 1)
	assert.Len(t, Filter(items, "GRAPHIC", rowFields), 1)
	assert.Len(t, Filter(items, "gd", rowFields), 1)
	assert.Empty(t, Filter(items, "law", rowFields))
}

func TestFilterEmptyQueryKeepsEverything(t *testing.T) {
	items := []row{{Name: "a"}, {Name: "b"}}
	assert.Equal(t, items, Filter(items, "   ", rowFields))
}

func TestPaginateSlicesAndReports(t *testing.T) {
	items := []row{{Name: "1"}, {Name: "2"}, {Name: "3"}, {Name: "4"}, {Name: "5"}}

	page, pagination := Paginate(items, 2, 2)

	require.Len(t, page, 2)
	assert.Equal(t, "3", page[0].Name)
	assert.Equal(t, 2, pagination.Page)
	assert.Equal(t, 2, pagination.PageSize)
	assert.Equal(t, 5, pagination.TotalCount)
}

func TestPaginateOutOfRangeYieldsEmpty(t *testing.T) {
	items := []row{{Name: "1"}}

	page, pagination := Paginate(items, 9, 10)

	assert.Empty(t, page)
	assert.Equal(t, 1, pagination.TotalCount)
}

func TestPaginateDefaultsInvalidInputs(t *testing.T) {
	items := []row{{Name: "1"}, {Name: "2"}}

	page, pagination := Paginate(items, 0, -5)

	assert.Len(t, page, 2)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 10, pagination.PageSize)
}
