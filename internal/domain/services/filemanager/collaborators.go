package filemanager

import (
	"context"
	"time"

	models "transcriptfolder/internal/domain/models/filemanager"
)

// IDGenerator supplies fresh unique ids on create
type IDGenerator interface {
	NewID() string
}

// Clock supplies the current timestamp for modified_at
type Clock interface {
	Now() time.Time
}

// ActorProvider supplies the acting user for modified_by and owner_id
type ActorProvider interface {
	CurrentActor() models.Actor
}

// Notifier receives semantic events. It decides how (or whether) they are shown.
// Implementations must not block the caller.
type Notifier interface {
	Notify(ctx context.Context, event models.Event)
}

// Opener handles double-click on a file. Opening is outside the core.
type Opener interface {
	Open(ctx context.Context, item models.Item) error
}

// TeamCatalog resolves the teams a session can switch between
type TeamCatalog interface {
	// Teams lists all teams in display order
	Teams() []models.Team

	// Team returns one team, or domain.NotFoundError
	Team(id string) (models.Team, error)
}
