package filemanager

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transcriptfolder/internal/domain"
	models "transcriptfolder/internal/domain/models/filemanager"
)

func mixedCollection() []models.Item {
	return []models.Item{
		folder("docs", nil),
		file("Report.pdf", nil, 2048576),
		file("notes.txt", ptr("docs"), 10),
		folder("drafts", ptr("docs")),
		inTeam(folder("team-docs", nil), "team1"),
		inTeam(file("team-report.pdf", nil, 5), "team1"),
		inTeam(file("other-team.pdf", nil, 5), "team2"),
		inTeam(file("team-nested.pdf", ptr("team-docs"), 5), "team1"),
	}
}

func TestVisibleItems_Filters(t *testing.T) {
	items := mixedCollection()
	sorter := NewSorter("en")

	tests := []struct {
		name   string
		params func(p *models.ViewParams)
		want   []string
	}{
		{"personal root", func(p *models.ViewParams) {}, []string{"docs", "Report.pdf"}},
		{"personal folder", func(p *models.ViewParams) { p.FolderID = ptr("docs") }, []string{"drafts", "notes.txt"}},
		{"team root", func(p *models.ViewParams) { p.Scope = models.TeamScope("team1") }, []string{"team-docs", "team-report.pdf"}},
		{"other team", func(p *models.ViewParams) { p.Scope = models.TeamScope("team2") }, []string{"other-team.pdf"}},
		{"unknown team", func(p *models.ViewParams) { p.Scope = models.TeamScope("nope") }, []string{}},
		{"search is case-insensitive", func(p *models.ViewParams) { p.Search = "REPORT" }, []string{"Report.pdf"}},
		{"search only within active folder", func(p *models.ViewParams) { p.Search = "notes" }, []string{}},
		{"scope folder mismatch", func(p *models.ViewParams) {
			p.Scope = models.TeamScope("team1")
			p.FolderID = ptr("docs")
		}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := models.DefaultViewParams()
			tt.params(&params)
			got := VisibleItems(items, params, sorter)
			assert.ElementsMatch(t, tt.want, ids(got))
		})
	}
}

func TestVisibleItems_ReturnsCopies(t *testing.T) {
	items := mixedCollection()
	got := VisibleItems(items, models.DefaultViewParams(), NewSorter("en"))
	require.NotEmpty(t, got)

	got[0].Name = "mutated"
	for _, item := range items {
		assert.NotEqual(t, "mutated", item.Name)
	}
}

func TestBuildFolderTree_ScopeIsolation(t *testing.T) {
	items := mixedCollection()

	personal, err := BuildFolderTree(items, models.PersonalScope(), 16)
	require.NoError(t, err)
	require.Len(t, personal, 1)
	assert.Equal(t, "docs", personal[0].Item.ID)
	require.Len(t, personal[0].Children, 1)
	assert.Equal(t, "drafts", personal[0].Children[0].Item.ID)
	assertNoTeamItems(t, personal)

	team, err := BuildFolderTree(items, models.TeamScope("team1"), 16)
	require.NoError(t, err)
	require.Len(t, team, 1)
	assert.Equal(t, "team-docs", team[0].Item.ID)
	assert.Empty(t, team[0].Children, "files never appear in the tree")
}

func assertNoTeamItems(t *testing.T, nodes []*models.FolderNode) {
	t.Helper()
	for _, n := range nodes {
		assert.False(t, n.Item.IsTeamScoped, "team item %q in personal tree", n.Item.ID)
		assertNoTeamItems(t, n.Children)
	}
}

func TestBuildFolderTree_ChildrenInCollectionOrder(t *testing.T) {
	items := []models.Item{
		folder("root", nil),
		folder("z", ptr("root")),
		folder("a", ptr("root")),
	}
	tree, err := BuildFolderTree(items, models.PersonalScope(), 16)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, "z", tree[0].Children[0].Item.ID)
	assert.Equal(t, "a", tree[0].Children[1].Item.ID)
}

func TestBuildFolderTree_OrphanIsSkipped(t *testing.T) {
	items := []models.Item{folder("orphan", ptr("missing"))}
	tree, err := BuildFolderTree(items, models.PersonalScope(), 16)
	require.NoError(t, err)
	assert.Empty(t, tree)
}

func TestBuildFolderTree_CycleIsInvariantViolation(t *testing.T) {
	items := []models.Item{
		folder("ok", nil),
		folder("a", ptr("b")),
		folder("b", ptr("a")),
	}
	tree, err := BuildFolderTree(items, models.PersonalScope(), 16)
	assert.Nil(t, tree)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvariantViolation)
}

func TestBuildFolderTree_DepthBound(t *testing.T) {
	items := chain(5)
	_, err := BuildFolderTree(items, models.PersonalScope(), 5)
	require.NoError(t, err)

	_, err = BuildFolderTree(items, models.PersonalScope(), 4)
	assert.ErrorIs(t, err, domain.ErrInvariantViolation)
}

// chain builds f0 > f1 > ... > f(n-1)
func chain(n int) []models.Item {
	items := make([]models.Item, n)
	var parent *string
	for i := range n {
		id := fmt.Sprintf("f%d", i)
		items[i] = folder(id, parent)
		parent = ptr(id)
	}
	return items
}

func TestBuildBreadcrumbs_ThreeLevels(t *testing.T) {
	items := chain(3)
	crumbs, err := BuildBreadcrumbs(items, "Personal Files", ptr("f2"), 16)
	require.NoError(t, err)

	require.Len(t, crumbs, 4)
	assert.Nil(t, crumbs[0].ID)
	assert.Equal(t, "Personal Files", crumbs[0].Name)
	for i, want := range []string{"f0", "f1", "f2"} {
		require.NotNil(t, crumbs[i+1].ID)
		assert.Equal(t, want, *crumbs[i+1].ID)
		assert.Equal(t, want, crumbs[i+1].Name)
	}
}

func TestBuildBreadcrumbs_RootAndMissing(t *testing.T) {
	items := chain(2)

	crumbs, err := BuildBreadcrumbs(items, "Design Team", nil, 16)
	require.NoError(t, err)
	assert.Equal(t, []models.Breadcrumb{{Name: "Design Team"}}, crumbs)

	crumbs, err = BuildBreadcrumbs(items, "Personal Files", ptr("gone"), 16)
	require.NoError(t, err)
	assert.Len(t, crumbs, 1)
}

func TestBuildBreadcrumbs_Corruption(t *testing.T) {
	cyclic := []models.Item{folder("a", ptr("b")), folder("b", ptr("a"))}
	_, err := BuildBreadcrumbs(cyclic, "Personal Files", ptr("a"), 16)
	assert.ErrorIs(t, err, domain.ErrInvariantViolation)

	_, err = BuildBreadcrumbs(chain(10), "Personal Files", ptr("f9"), 5)
	assert.ErrorIs(t, err, domain.ErrInvariantViolation)
}
