package seed

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"log/slog"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"transcriptfolder/internal/domain"
	models "transcriptfolder/internal/domain/models/filemanager"
	"transcriptfolder/internal/service/filemanager"
)

//go:embed data/*.yaml
var dataFiles embed.FS

// Dataset is the starting state every session is created from:
// the team catalog, the known users and the item collection.
type Dataset struct {
	Teams []models.Team `yaml:"teams"`
	Users []models.User `yaml:"users"`
	Items []models.Item `yaml:"items"`
}

// Default loads the embedded demo dataset
func Default() (*Dataset, error) {
	data, err := dataFiles.ReadFile("data/dataset.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded dataset: %w", err)
	}
	return Parse(data)
}

// LoadFile loads and validates a dataset from a YAML file
func LoadFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	ds, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Parse decodes and validates a YAML dataset
func Parse(data []byte) (*Dataset, error) {
	var ds Dataset
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&ds); err != nil && err != io.EOF {
		return nil, domain.NewValidation("failed to decode dataset: %v", err)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// Validate checks teams, users and every item invariant, including the parent graph
func (d *Dataset) Validate() error {
	teamIDs := make(map[string]bool, len(d.Teams))
	for _, team := range d.Teams {
		err := validation.ValidateStruct(&team,
			validation.Field(&team.ID, validation.Required),
			validation.Field(&team.Name, validation.Required),
			validation.Field(&team.MemberCount, validation.Min(0)),
		)
		if err != nil {
			return domain.NewValidation("team %q: %v", team.ID, err)
		}
		if teamIDs[team.ID] {
			return domain.NewValidation("duplicate team id %q", team.ID)
		}
		teamIDs[team.ID] = true
	}

	userIDs := make(map[string]bool, len(d.Users))
	for _, user := range d.Users {
		err := validation.ValidateStruct(&user,
			validation.Field(&user.ID, validation.Required),
			validation.Field(&user.Name, validation.Required),
			validation.Field(&user.Role, validation.In(models.UserRoleManager, models.UserRoleMember)),
		)
		if err != nil {
			return domain.NewValidation("user %q: %v", user.ID, err)
		}
		if userIDs[user.ID] {
			return domain.NewValidation("duplicate user id %q", user.ID)
		}
		userIDs[user.ID] = true
		for _, teamID := range user.Teams {
			if !teamIDs[teamID] {
				return domain.NewValidation("user %q: unknown team %q", user.ID, teamID)
			}
		}
	}

	for _, item := range d.Items {
		if item.TeamID != nil && !teamIDs[*item.TeamID] {
			return domain.NewValidation("item %q: unknown team %q", item.ID, *item.TeamID)
		}
	}

	// the store runs the same checks a live session would
	store := filemanager.NewStore(
		filemanager.UUIDGenerator{},
		filemanager.SystemClock{},
		filemanager.StaticActor{},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return store.Load(d.Items)
}

// Marshal encodes the dataset as YAML
func (d *Dataset) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("failed to encode dataset: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode dataset: %w", err)
	}
	return buf.Bytes(), nil
}

// ItemsFor returns a private copy of the collection for a new session
func (d *Dataset) ItemsFor(models.Actor) []models.Item {
	items := make([]models.Item, len(d.Items))
	for i, item := range d.Items {
		items[i] = item.Clone()
	}
	return items
}

// TeamList returns a copy of the teams
func (d *Dataset) TeamList() []models.Team {
	out := make([]models.Team, len(d.Teams))
	copy(out, d.Teams)
	return out
}

// User looks up a known user
func (d *Dataset) User(id string) (models.User, bool) {
	for _, user := range d.Users {
		if user.ID == id {
			return user, true
		}
	}
	return models.User{}, false
}

// Catalog exposes the dataset's teams as a fmSvc.TeamCatalog
func (d *Dataset) Catalog() *Catalog {
	return &Catalog{teams: d.TeamList()}
}

// Catalog is a read-only team lookup
type Catalog struct {
	teams []models.Team
}

// Teams lists all teams in dataset order
func (c *Catalog) Teams() []models.Team {
	out := make([]models.Team, len(c.teams))
	copy(out, c.teams)
	return out
}

// Team returns one team or a NotFoundError
func (c *Catalog) Team(id string) (models.Team, error) {
	for _, team := range c.teams {
		if team.ID == id {
			return team, nil
		}
	}
	return models.Team{}, domain.NewNotFound("team", id)
}
