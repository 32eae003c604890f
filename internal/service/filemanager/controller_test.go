package filemanager

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transcriptfolder/internal/domain"
	models "transcriptfolder/internal/domain/models/filemanager"
	fmSvc "transcriptfolder/internal/domain/services/filemanager"
)

func TestViewController_Defaults(t *testing.T) {
	c := NewViewController()
	p := c.Params()

	assert.True(t, p.Scope.IsPersonal())
	assert.Nil(t, p.FolderID)
	assert.Empty(t, p.Search)
	assert.Equal(t, models.SortByName, p.SortKey)
	assert.Equal(t, models.SortAsc, p.SortOrder)
	assert.Equal(t, models.ViewGrid, p.ViewMode)
}

func TestViewController_ToggleSort(t *testing.T) {
	c := NewViewController()

	require.NoError(t, c.ToggleSort(models.SortByName))
	assert.Equal(t, models.SortDesc, c.Params().SortOrder)
	require.NoError(t, c.ToggleSort(models.SortByName))
	assert.Equal(t, models.SortAsc, c.Params().SortOrder, "toggling twice restores the direction")

	require.NoError(t, c.ToggleSort(models.SortByName))
	require.NoError(t, c.ToggleSort(models.SortBySize))
	assert.Equal(t, models.SortBySize, c.Params().SortKey)
	assert.Equal(t, models.SortAsc, c.Params().SortOrder, "a new key starts ascending")

	assert.ErrorIs(t, c.ToggleSort("color"), domain.ErrValidation)
}

func TestViewController_SetScopeResetsFolder(t *testing.T) {
	c := NewViewController()
	c.NavigateTo(ptr("docs"))

	require.NoError(t, c.SetScope(models.TeamScope("team1")))
	p := c.Params()
	assert.Nil(t, p.FolderID)
	assert.Equal(t, "team1", *p.Scope.TeamID)

	assert.ErrorIs(t, c.SetScope(models.Scope{TeamID: ptr("")}), domain.ErrValidation)
}

func TestViewController_Validation(t *testing.T) {
	c := NewViewController()

	assert.ErrorIs(t, c.SetViewMode("table"), domain.ErrValidation)
	assert.ErrorIs(t, c.SetSort(models.SortByName, "up"), domain.ErrValidation)
	assert.ErrorIs(t, c.SetSearch(string(make([]rune, 300))), domain.ErrValidation)

	require.NoError(t, c.SetViewMode(models.ViewList))
	require.NoError(t, c.SetSort(models.SortByModified, models.SortDesc))
	require.NoError(t, c.SetSearch("report"))

	p := c.Params()
	assert.Equal(t, models.ViewList, p.ViewMode)
	assert.Equal(t, models.SortByModified, p.SortKey)
	assert.Equal(t, models.SortDesc, p.SortOrder)
	assert.Equal(t, "report", p.Search)
}

func TestViewController_NotifiesOnlyOnChange(t *testing.T) {
	c := NewViewController()
	var changes []fmSvc.Change
	c.Subscribe(func(ch fmSvc.Change) { changes = append(changes, ch) })

	c.NavigateTo(nil)
	require.NoError(t, c.SetSearch(""))
	require.NoError(t, c.SetViewMode(models.ViewGrid))
	assert.Empty(t, changes)

	c.NavigateTo(ptr("x"))
	require.Len(t, changes, 1)
	assert.Equal(t, fmSvc.ChangeView, changes[0].Kind)
	assert.Equal(t, uint64(1), changes[0].Revision)
}

func TestViewController_ParamsAreCopies(t *testing.T) {
	c := NewViewController()
	c.NavigateTo(ptr("x"))

	p := c.Params()
	*p.FolderID = "y"
	assert.Equal(t, "x", *c.Params().FolderID)
}
