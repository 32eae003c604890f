package filemanager

import (
	"slices"
	"strings"

	"transcriptfolder/internal/domain"
	models "transcriptfolder/internal/domain/models/filemanager"
)

// rootKey indexes root-level children. Item ids are never empty.
const rootKey = ""

// VisibleItems filters items to the active scope, the active folder and the
// search text (case-insensitive substring), then sorts them.
// Returns a fresh slice; items is not modified.
func VisibleItems(items []models.Item, params models.ViewParams, sorter *Sorter) []models.Item {
	needle := strings.ToLower(params.Search)

	filtered := make([]models.Item, 0)
	for i := range items {
		item := &items[i]
		if !params.Scope.Contains(item) {
			continue
		}
		if !item.HasParent(params.FolderID) {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(item.Name), needle) {
			continue
		}
		filtered = append(filtered, item.Clone())
	}

	return sorter.Sort(filtered, params.SortKey, params.SortOrder)
}

// BuildFolderTree nests the scope's folders under their parents, children in
// collection order. Folders that can never be reached from the root because
// their parent chain loops are reported as an invariant violation instead of
// being silently dropped. Trees deeper than maxDepth are treated the same way.
func BuildFolderTree(items []models.Item, scope models.Scope, maxDepth int) ([]*models.FolderNode, error) {
	byID := make(map[string]*models.Item, len(items))
	children := make(map[string][]*models.Item)
	var folders []*models.Item

	// First pass: index everything, bucket in-scope folders by parent
	for i := range items {
		item := &items[i]
		byID[item.ID] = item
		if !item.IsFolder() || !scope.Contains(item) {
			continue
		}
		folders = append(folders, item)
		key := rootKey
		if item.ParentID != nil {
			key = *item.ParentID
		}
		children[key] = append(children[key], item)
	}

	// Second pass: walk down from the root
	reached := make(map[string]bool, len(folders))
	var build func(parentKey string, depth int) ([]*models.FolderNode, error)
	build = func(parentKey string, depth int) ([]*models.FolderNode, error) {
		kids := children[parentKey]
		nodes := make([]*models.FolderNode, 0, len(kids))
		for _, folder := range kids {
			if depth >= maxDepth {
				return nil, domain.NewInvariantViolation(folder.ID,
					"folder tree is deeper than %d levels at %q", maxDepth, folder.ID)
			}
			reached[folder.ID] = true
			sub, err := build(folder.ID, depth+1)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, &models.FolderNode{
				Item:     folder.Clone(),
				Children: sub,
			})
		}
		return nodes, nil
	}

	roots, err := build(rootKey, 0)
	if err != nil {
		return nil, err
	}

	// Third pass: anything unreached either hangs off a missing parent
	// (skipped, like the original tree) or sits on a cycle (corruption)
	for _, folder := range folders {
		if reached[folder.ID] {
			continue
		}
		if onCycle(byID, folder) {
			return nil, domain.NewInvariantViolation(folder.ID,
				"folder %q is its own ancestor", folder.ID)
		}
	}

	return roots, nil
}

// onCycle walks up from item and reports whether the chain revisits an id
func onCycle(byID map[string]*models.Item, item *models.Item) bool {
	seen := map[string]bool{item.ID: true}
	current := item.ParentID
	for current != nil {
		if seen[*current] {
			return true
		}
		seen[*current] = true
		parent, ok := byID[*current]
		if !ok {
			return false
		}
		current = parent.ParentID
	}
	return false
}

// BuildBreadcrumbs returns the scope-root entry followed by the ancestors of
// folderID and folderID itself, root to leaf. A missing folder ends the walk.
// A revisited id or a chain longer than maxDepth is an invariant violation.
func BuildBreadcrumbs(items []models.Item, rootName string, folderID *string, maxDepth int) ([]models.Breadcrumb, error) {
	crumbs := []models.Breadcrumb{{Name: rootName}}
	if folderID == nil {
		return crumbs, nil
	}

	byID := make(map[string]*models.Item, len(items))
	for i := range items {
		byID[items[i].ID] = &items[i]
	}

	var path []models.Breadcrumb
	seen := make(map[string]bool)
	for current := folderID; current != nil; {
		folder, ok := byID[*current]
		if !ok {
			break
		}
		if seen[folder.ID] {
			return nil, domain.NewInvariantViolation(folder.ID,
				"ancestor chain of %q loops at %q", *folderID, folder.ID)
		}
		if len(path) >= maxDepth {
			return nil, domain.NewInvariantViolation(*folderID,
				"ancestor chain of %q exceeds %d levels", *folderID, maxDepth)
		}
		seen[folder.ID] = true

		id := folder.ID
		path = append(path, models.Breadcrumb{ID: &id, Name: folder.Name})
		current = folder.ParentID
	}

	slices.Reverse(path)
	return append(crumbs, path...), nil
}
