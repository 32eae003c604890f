package config

const (
	// MaxItemNameLength is the maximum length for file and folder names.
	MaxItemNameLength = 255

	// MaxSearchLength caps the search box text.
	MaxSearchLength = 255

	// MaxAncestorDepth bounds breadcrumb walks and tree recursion.
	// A chain deeper than this is treated as a corrupted (cyclic) graph.
	MaxAncestorDepth = 256

	// MaxBulkItems caps the number of ids in one selection request.
	MaxBulkItems = 1000

	// DefaultFolderName is the name given to folders created without one.
	DefaultFolderName = "New Folder"

	// PersonalRootName labels the breadcrumb root of the personal space.
	PersonalRootName = "Personal Files"
)
