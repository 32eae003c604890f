package filemanager

import (
	"time"

	"github.com/google/uuid"

	models "transcriptfolder/internal/domain/models/filemanager"
)

// UUIDGenerator issues random UUIDv4 ids
type UUIDGenerator struct{}

// NewID implements fmSvc.IDGenerator
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// SystemClock reads the wall clock
type SystemClock struct{}

// Now implements fmSvc.Clock
func (SystemClock) Now() time.Time {
	return time.Now()
}

// StaticActor always reports the same actor
type StaticActor models.Actor

// CurrentActor implements fmSvc.ActorProvider
func (a StaticActor) CurrentActor() models.Actor {
	return models.Actor(a)
}
