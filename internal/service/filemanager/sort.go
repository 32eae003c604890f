package filemanager

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	models "transcriptfolder/internal/domain/models/filemanager"
)

// Sorter orders items by a key and direction with locale-aware name comparison.
// A collate.Collator keeps internal buffers, so a Sorter must not be shared
// between goroutines; each session owns one.
type Sorter struct {
	collator *collate.Collator
}

// NewSorter creates a sorter for a BCP 47 locale. Unparseable locales fall back to English.
func NewSorter(locale string) *Sorter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Sorter{collator: collate.New(tag)}
}

// CompareNames compares two names the way the current locale orders them
func (s *Sorter) CompareNames(a, b string) int {
	return s.collator.CompareString(a, b)
}

// kindRank puts folders before files
func kindRank(kind models.ItemKind) int {
	if kind == models.KindFolder {
		return 0
	}
	return 1
}

// Compare applies one sort key in ascending order.
// For SortByType the kind rank and the name form a single two-key comparison.
func (s *Sorter) Compare(a, b *models.Item, key models.SortKey) int {
	switch key {
	case models.SortByModified:
		return a.ModifiedAt.Compare(b.ModifiedAt)
	case models.SortBySize:
		return cmp.Compare(a.SizeOrZero(), b.SizeOrZero())
	case models.SortByType:
		if c := cmp.Compare(kindRank(a.Kind), kindRank(b.Kind)); c != 0 {
			return c
		}
		return s.CompareNames(a.Name, b.Name)
	default:
		return s.CompareNames(a.Name, b.Name)
	}
}

// Sort returns a new slice ordered by key. Descending negates the whole
// comparison, so descending type order lists files before folders.
// Equal elements keep their input order.
func (s *Sorter) Sort(items []models.Item, key models.SortKey, order models.SortOrder) []models.Item {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b models.Item) int {
		c := s.Compare(&a, &b, key)
		if order == models.SortDesc {
			return -c
		}
		return c
	})
	return sorted
}
