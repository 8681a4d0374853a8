package datatable

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardtime.app/cardtime/web/i18n"
)

type person struct {
	Account string
	Name    string
	Email   string
}

var people = []person{
	{Account: "walter", Name: "Walter Chen", Email: "WALTER@EXAMPLE.COM"},
	{Account: "amy", Name: "Amy Lin", Email: "amy@example.com"},
	{Account: "zoe", Name: "Zoe Wang", Email: "zoe@example.com"},
	{Account: "ben", Name: "Ben Liu", Email: "ben@other.org"},
	{Account: "carol", Name: "Carol Wu", Email: "carol@example.com"},
}

func personSource(rows []person) *MemorySource[person] {
	return NewMemorySource(rows, MemoryConfig[person]{
		Searchable: []func(person) string{
			func(p person) string { return p.Account },
			func(p person) string { return p.Name },
			func(p person) string { return p.Email },
		},
		Sortable: map[string]func(person) string{
			"Account": func(p person) string { return p.Account },
			"Name":    func(p person) string { return p.Name },
			"Email":   func(p person) string { return p.Email },
		},
		DefaultSort: "Account",
	})
}

func TestPaginateWindow(t *testing.T) {
	src := personSource(people)

	tests := []struct {
		start, length int
		wantRows      int
	}{
		{0, 2, 2},
		{2, 2, 2},
		{4, 2, 1},  // truncated tail page
		{5, 2, 0},  // start at end
		{10, 2, 0}, // start past end
		{0, 0, 0},
		{0, 100, 5},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("start=%d,length=%d", tt.start, tt.length), func(t *testing.T) {
			res, err := Paginate(src, Request{Draw: 7, Start: tt.start, Length: tt.length})
			require.NoError(t, err)
			assert.Len(t, res.Data, tt.wantRows)
			assert.Equal(t, 7, res.Draw)
			assert.EqualValues(t, 5, res.RecordsTotal)
			assert.EqualValues(t, 5, res.RecordsFiltered)
		})
	}
}

func TestPaginateSearch(t *testing.T) {
	src := personSource(people)

	res, err := Paginate(src, Request{Length: 10, Search: "example"})
	require.NoError(t, err)
	assert.EqualValues(t, 5, res.RecordsTotal, "total ignores the filter")
	assert.EqualValues(t, 4, res.RecordsFiltered)
	assert.Len(t, res.Data, 4)
	for _, p := range res.Data {
		assert.NotEqual(t, "ben", p.Account, "ben@other.org must not match")
	}

	// Case-insensitive both ways.
	res, err = Paginate(src, Request{Length: 10, Search: "WALTER"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.RecordsFiltered)

	// Empty term matches everything.
	res, err = Paginate(src, Request{Length: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 5, res.RecordsFiltered)

	// No match is an empty page, not an error.
	res, err = Paginate(src, Request{Length: 10, Search: "nobody"})
	require.NoError(t, err)
	assert.EqualValues(t, 0, res.RecordsFiltered)
	assert.Empty(t, res.Data)
}

func TestPaginateSort(t *testing.T) {
	src := personSource(people)

	res, err := Paginate(src, Request{Length: 10, SortColumn: "Name", SortDir: "DESC"})
	require.NoError(t, err)
	assert.Equal(t, "Zoe Wang", res.Data[0].Name)
	assert.Equal(t, "Amy Lin", res.Data[len(res.Data)-1].Name)

	// Unknown column falls back to the default sort, ascending, even when
	// descending was requested.
	res, err = Paginate(src, Request{Length: 10, SortColumn: "Bogus", SortDir: "DESC"})
	require.NoError(t, err)
	assert.Equal(t, "amy", res.Data[0].Account)

	res, err = Paginate(src, Request{Length: 10, SortColumn: "Account", SortDir: "asc"})
	require.NoError(t, err)
	assert.Equal(t, "amy", res.Data[0].Account)
	assert.Equal(t, "zoe", res.Data[4].Account)
}

func TestPaginateSearchThenPage(t *testing.T) {
	src := personSource(people)

	res, err := Paginate(src, Request{Start: 3, Length: 5, Search: "example"})
	require.NoError(t, err)
	assert.EqualValues(t, 4, res.RecordsFiltered)
	assert.Len(t, res.Data, 1, "window clamps against the filtered count")
}

func TestDescribe(t *testing.T) {
	cols := []Column{
		{Name: "Account", DisplayKey: "field.account"},
		{Name: "Birthday", DisplayKey: "field.birthday", Type: DisplayDate, Params: []string{"yyyy-MM-dd"}},
		{Name: "Raw", Unsortable: true},
	}
	// Catalog lookups return "" for unknown tokens.
	localize := func(key string) string {
		if key == "field.account" {
			return "帳號"
		}
		return ""
	}

	meta := Describe(cols, localize)
	require.Len(t, meta, 3)

	assert.EqualValues(t, 0, meta[0].Seq)
	assert.Equal(t, "帳號", meta[0].DisplayName)
	assert.Equal(t, "Text", meta[0].DisplayType)
	assert.Equal(t, SortingEnabled, meta[0].SortingType)
	assert.True(t, meta[0].IsVisible)

	assert.Equal(t, "Date", meta[1].DisplayType)
	assert.Equal(t, []string{"yyyy-MM-dd"}, meta[1].DisplayParameters)
	assert.Equal(t, "field.birthday", meta[1].DisplayName, "missing catalog entry keeps the token")

	assert.Equal(t, "Raw", meta[2].DisplayName, "no display key falls back to the field name")
	assert.Equal(t, SortingDisabled, meta[2].SortingType)
}

func TestDescribeCatalogMiss(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "zh-TW.yaml"),
		[]byte("Account: 帳號\n"), 0o644))
	catalog, err := i18n.Load(dir)
	require.NoError(t, err)

	cols := []Column{
		{Name: "account", DisplayKey: "Account"},
		{Name: "nickname", DisplayKey: "Nickname"},
	}
	meta := Describe(cols, catalog.Localize("zh-TW"))
	require.Len(t, meta, 2)

	assert.Equal(t, "帳號", meta[0].DisplayName)
	assert.Equal(t, "Nickname", meta[1].DisplayName, "missing catalog entry must not blank the column header")
}
