package filemanager

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"transcriptfolder/internal/domain"
	models "transcriptfolder/internal/domain/models/filemanager"
)

var testNow = time.Date(2024, 1, 25, 12, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type seqIDs struct{ n int }

func (g *seqIDs) NewID() string {
	g.n++
	return fmt.Sprintf("gen-%d", g.n)
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var testActor = models.Actor{ID: "user1", Name: "Current User"}

func newTestStore() *Store {
	return NewStore(&seqIDs{}, fixedClock{testNow}, StaticActor(testActor), discardLogger())
}

func ptr[T any](v T) *T { return &v }

func folder(id string, parent *string) models.Item {
	return models.Item{
		ID:          id,
		Name:        id,
		Kind:        models.KindFolder,
		ModifiedAt:  testNow,
		ModifiedBy:  "John Doe",
		Color:       models.ColorBlue,
		ParentID:    parent,
		Permissions: []models.Permission{},
		OwnerID:     "user1",
	}
}

func file(id string, parent *string, size int64) models.Item {
	return models.Item{
		ID:          id,
		Name:        id,
		Kind:        models.KindFile,
		Size:        ptr(size),
		ModifiedAt:  testNow,
		ModifiedBy:  "John Doe",
		ParentID:    parent,
		Permissions: []models.Permission{},
		OwnerID:     "user1",
	}
}

func inTeam(item models.Item, teamID string) models.Item {
	item.IsTeamScoped = true
	item.TeamID = ptr(teamID)
	return item
}

func ids(items []models.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

type staticTeams []models.Team

func (t staticTeams) Teams() []models.Team { return t }

func (t staticTeams) Team(id string) (models.Team, error) {
	for _, team := range t {
		if team.ID == id {
			return team, nil
		}
	}
	return models.Team{}, domain.NewNotFound("team", id)
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []models.Event
}

func (r *recordingNotifier) Notify(_ context.Context, e models.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// semantic drops view_changed
func (r *recordingNotifier) semantic() []models.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Event
	for _, e := range r.events {
		if e.Type != models.EventViewChanged {
			out = append(out, e)
		}
	}
	return out
}

func (r *recordingNotifier) count(t models.EventType) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

type recordingOpener struct{ opened []string }

func (o *recordingOpener) Open(_ context.Context, item models.Item) error {
	o.opened = append(o.opened, item.ID)
	return nil
}
