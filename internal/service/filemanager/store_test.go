package filemanager

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transcriptfolder/internal/domain"
	models "transcriptfolder/internal/domain/models/filemanager"
	fmSvc "transcriptfolder/internal/domain/services/filemanager"
)

func loadedStore(t *testing.T, items ...models.Item) *Store {
	t.Helper()
	s := newTestStore()
	require.NoError(t, s.Load(items))
	return s
}

func TestStore_CreateDefaults(t *testing.T) {
	s := newTestStore()

	item, err := s.Create(&fmSvc.CreateItemRequest{})
	require.NoError(t, err)

	assert.Equal(t, "gen-1", item.ID)
	assert.Equal(t, "New Folder", item.Name)
	assert.Equal(t, models.KindFolder, item.Kind)
	assert.Equal(t, models.ColorBlue, item.Color)
	assert.Equal(t, testNow, item.ModifiedAt)
	assert.Equal(t, "Current User", item.ModifiedBy)
	assert.Equal(t, "user1", item.OwnerID)
	assert.False(t, item.IsTeamScoped)
	assert.Nil(t, item.TeamID)
	assert.Equal(t, 1, s.Len())
}

func TestStore_CreateInTeamScope(t *testing.T) {
	s := newTestStore()

	item, err := s.Create(&fmSvc.CreateItemRequest{Scope: models.TeamScope("team1")})
	require.NoError(t, err)
	assert.True(t, item.IsTeamScoped)
	require.NotNil(t, item.TeamID)
	assert.Equal(t, "team1", *item.TeamID)
}

func TestStore_CreateRejectsBadParent(t *testing.T) {
	s := loadedStore(t,
		folder("personal", nil),
		file("doc", nil, 1),
		inTeam(folder("shared", nil), "team1"),
	)
	before := s.Items()
	rev := s.Revision()

	tests := []struct {
		name   string
		req    fmSvc.CreateItemRequest
		target error
	}{
		{"missing parent", fmSvc.CreateItemRequest{ParentID: ptr("nope")}, domain.ErrNotFound},
		{"file parent", fmSvc.CreateItemRequest{ParentID: ptr("doc")}, domain.ErrValidation},
		{"cross scope parent", fmSvc.CreateItemRequest{ParentID: ptr("shared")}, domain.ErrValidation},
		{"size on folder", fmSvc.CreateItemRequest{Size: ptr(int64(3))}, domain.ErrValidation},
		{"negative size", fmSvc.CreateItemRequest{Kind: models.KindFile, Name: "x", Size: ptr(int64(-1))}, domain.ErrValidation},
		{"bad color", fmSvc.CreateItemRequest{Color: "pink"}, domain.ErrValidation},
		{"file without name", fmSvc.CreateItemRequest{Kind: models.KindFile}, domain.ErrValidation},
		{"empty team id", fmSvc.CreateItemRequest{Scope: models.Scope{TeamID: ptr(" ")}}, domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := s.Create(&req)
			assert.ErrorIs(t, err, tt.target)
			assert.Equal(t, before, s.Items())
			assert.Equal(t, rev, s.Revision())
		})
	}
}

func TestStore_DeleteEvictsSelection(t *testing.T) {
	s := loadedStore(t, file("a", nil, 1), file("b", nil, 1))
	require.NoError(t, s.SelectAll([]string{"a", "b"}, true))

	var changes []fmSvc.Change
	s.Subscribe(func(c fmSvc.Change) { changes = append(changes, c) })

	removed, err := s.Delete("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids(removed))

	assert.Equal(t, []string{"b"}, s.Selected())
	assert.False(t, s.IsSelected("a"))
	require.Len(t, changes, 1, "delete and eviction are one change")
	assert.Equal(t, fmSvc.ChangeItems, changes[0].Kind)
}

func TestStore_DeleteCascades(t *testing.T) {
	s := loadedStore(t,
		folder("top", nil),
		folder("mid", ptr("top")),
		file("leaf", ptr("mid"), 1),
		file("other", nil, 1),
	)
	require.NoError(t, s.Select("leaf", true))

	removed, err := s.Delete("top")
	require.NoError(t, err)
	assert.Equal(t, []string{"top", "mid", "leaf"}, ids(removed))
	assert.Equal(t, []string{"other"}, ids(s.Items()))
	assert.Empty(t, s.Selected())
}

func TestStore_DeleteMissing(t *testing.T) {
	s := loadedStore(t, file("a", nil, 1))
	_, err := s.Delete("nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 1, s.Len())
}

func TestStore_BulkDelete(t *testing.T) {
	s := loadedStore(t,
		folder("top", nil),
		file("child", ptr("top"), 1),
		file("solo", nil, 1),
	)
	changes := 0
	s.Subscribe(func(fmSvc.Change) { changes++ })

	result := s.BulkDelete([]string{"top", "child", "missing", "solo", "solo"})

	assert.Equal(t, []string{"top", "child", "solo"}, result.Deleted)
	assert.Equal(t, []string{"missing"}, result.Skipped)
	assert.Equal(t, 3, result.Removed)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 1, changes)
}

func TestStore_BulkDeleteNothingFound(t *testing.T) {
	s := loadedStore(t, file("a", nil, 1))
	rev := s.Revision()

	result := s.BulkDelete([]string{"x"})
	assert.Empty(t, result.Deleted)
	assert.Equal(t, []string{"x"}, result.Skipped)
	assert.Equal(t, rev, s.Revision())
}

func TestStore_SetColor(t *testing.T) {
	s := loadedStore(t, folder("dir", nil), file("doc", nil, 1))

	item, err := s.SetColor("dir", models.ColorRed)
	require.NoError(t, err)
	assert.Equal(t, models.ColorRed, item.Color)

	_, err = s.SetColor("doc", models.ColorRed)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = s.SetColor("dir", "magenta")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = s.SetColor("nope", models.ColorRed)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := s.Get("dir")
	require.NoError(t, err)
	assert.Equal(t, models.ColorRed, got.Color)
}

func TestStore_Rename(t *testing.T) {
	s := loadedStore(t, file("doc", nil, 1))

	item, err := s.Rename("doc", "  Budget.xlsx ")
	require.NoError(t, err)
	assert.Equal(t, "Budget.xlsx", item.Name)

	_, err = s.Rename("doc", "   ")
	assert.ErrorIs(t, err, domain.ErrValidation)

	got, _ := s.Get("doc")
	assert.Equal(t, "Budget.xlsx", got.Name)
}

func TestStore_Move(t *testing.T) {
	s := loadedStore(t,
		folder("a", nil),
		folder("b", ptr("a")),
		folder("c", nil),
		file("doc", nil, 1),
		inTeam(folder("t", nil), "team1"),
	)

	item, err := s.Move("doc", ptr("b"))
	require.NoError(t, err)
	require.NotNil(t, item.ParentID)
	assert.Equal(t, "b", *item.ParentID)

	item, err = s.Move("doc", nil)
	require.NoError(t, err)
	assert.Nil(t, item.ParentID)

	tests := []struct {
		name   string
		id     string
		to     *string
		target error
	}{
		{"into itself", "a", ptr("a"), domain.ErrValidation},
		{"into descendant", "a", ptr("b"), domain.ErrValidation},
		{"into file", "c", ptr("doc"), domain.ErrValidation},
		{"across scopes", "c", ptr("t"), domain.ErrValidation},
		{"missing parent", "c", ptr("zzz"), domain.ErrNotFound},
		{"missing item", "zzz", nil, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Move(tt.id, tt.to)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestStore_UpdateIsAllOrNothing(t *testing.T) {
	s := loadedStore(t, folder("dir", nil), folder("other", nil))
	rev := s.Revision()

	_, err := s.Update("dir", fmSvc.ItemPatch{Name: ptr("Renamed"), Color: ptr(models.Color("pink"))})
	assert.ErrorIs(t, err, domain.ErrValidation)
	got, _ := s.Get("dir")
	assert.Equal(t, "dir", got.Name)
	assert.Equal(t, rev, s.Revision())

	item, err := s.Update("dir", fmSvc.ItemPatch{
		Name:   ptr("Renamed"),
		Color:  ptr(models.ColorGreen),
		Move:   true,
		MoveTo: ptr("other"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", item.Name)
	assert.Equal(t, models.ColorGreen, item.Color)
	assert.Equal(t, "other", *item.ParentID)
	assert.Equal(t, rev+1, s.Revision())
}

func TestStore_Selection(t *testing.T) {
	s := loadedStore(t, file("a", nil, 1), file("b", nil, 1), file("c", nil, 1))

	require.NoError(t, s.Select("c", true))
	require.NoError(t, s.Select("a", true))
	assert.Equal(t, []string{"a", "c"}, s.Selected(), "collection order")

	rev := s.Revision()
	require.NoError(t, s.Select("a", true))
	assert.Equal(t, rev, s.Revision(), "idempotent select does not notify")

	err := s.SelectAll([]string{"b", "missing"}, true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, []string{"a", "c"}, s.Selected(), "failed select leaves the set unchanged")

	require.NoError(t, s.Select("missing", false), "deselecting an absent id is a no-op")

	require.NoError(t, s.ReplaceSelection([]string{"b"}))
	assert.Equal(t, []string{"b"}, s.Selected())

	s.ClearSelection()
	assert.Empty(t, s.Selected())
}

func TestStore_LoadValidates(t *testing.T) {
	tests := []struct {
		name  string
		items []models.Item
	}{
		{"duplicate ids", []models.Item{file("a", nil, 1), file("a", nil, 1)}},
		{"team id without team scope", []models.Item{func() models.Item {
			i := file("a", nil, 1)
			i.TeamID = ptr("team1")
			return i
		}()}},
		{"team scope without team id", []models.Item{func() models.Item {
			i := file("a", nil, 1)
			i.IsTeamScoped = true
			return i
		}()}},
		{"cycle", []models.Item{folder("a", ptr("b")), folder("b", ptr("a"))}},
		{"bad role", []models.Item{func() models.Item {
			i := file("a", nil, 1)
			i.Permissions = []models.Permission{{ActorID: "u", Role: "owner"}}
			return i
		}()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := loadedStore(t, file("keep", nil, 1))
			assert.Error(t, s.Load(tt.items))
			assert.Equal(t, []string{"keep"}, ids(s.Items()), "failed load keeps the old collection")
		})
	}
}

func TestStore_ItemsAreCopies(t *testing.T) {
	s := loadedStore(t, folder("dir", nil))
	items := s.Items()
	items[0].Name = "changed"

	got, _ := s.Get("dir")
	assert.Equal(t, "dir", got.Name)
}

func TestStore_UnsubscribeStopsNotifications(t *testing.T) {
	s := newTestStore()
	calls := 0
	unsub := s.Subscribe(func(fmSvc.Change) { calls++ })

	_, _ = s.Create(&fmSvc.CreateItemRequest{})
	unsub()
	_, _ = s.Create(&fmSvc.CreateItemRequest{})
	assert.Equal(t, 1, calls)
}
