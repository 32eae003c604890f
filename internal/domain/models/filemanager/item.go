package filemanager

import (
	"time"
)

// ItemKind distinguishes files from folders
type ItemKind string

const (
	KindFile   ItemKind = "file"
	KindFolder ItemKind = "folder"
)

// Color is a folder tag from a fixed palette
type Color string

const (
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorPurple Color = "purple"
	ColorOrange Color = "orange"
	ColorRed    Color = "red"
)

// Palette lists the accepted folder colors in display order
var Palette = []Color{ColorBlue, ColorGreen, ColorPurple, ColorOrange, ColorRed}

// Role is a permission level. Stored, never enforced.
type Role string

const (
	RoleViewer Role = "viewer"
	RoleEditor Role = "editor"
	RoleAdmin  Role = "admin"
)

// Permission grants a role to an actor, optionally through a team
type Permission struct {
	ActorID string  `json:"actor_id" yaml:"actor_id"`
	Role    Role    `json:"role" yaml:"role"`
	TeamID  *string `json:"team_id,omitempty" yaml:"team_id,omitempty"`
}

// Item is a file or a folder
type Item struct {
	ID           string       `json:"id" yaml:"id"`
	Name         string       `json:"name" yaml:"name"`
	Kind         ItemKind     `json:"type" yaml:"type"`
	Size         *int64       `json:"size,omitempty" yaml:"size,omitempty"` // files only
	ModifiedAt   time.Time    `json:"modified_at" yaml:"modified_at"`
	ModifiedBy   string       `json:"modified_by" yaml:"modified_by"`
	Color        Color        `json:"color,omitempty" yaml:"color,omitempty"`
	ParentID     *string      `json:"parent_id,omitempty" yaml:"parent_id,omitempty"` // nil = root of its scope
	IsShared     bool         `json:"is_shared" yaml:"is_shared"`
	Permissions  []Permission `json:"permissions" yaml:"permissions"`
	OwnerID      string       `json:"owner_id" yaml:"owner_id"`
	IsTeamScoped bool         `json:"is_team_scoped" yaml:"is_team_scoped"`
	TeamID       *string      `json:"team_id,omitempty" yaml:"team_id,omitempty"` // present iff IsTeamScoped
}

// IsFolder reports whether the item is a folder
func (i *Item) IsFolder() bool {
	return i.Kind == KindFolder
}

// SizeOrZero returns the byte count, treating an absent size as 0
func (i *Item) SizeOrZero() int64 {
	if i.Size == nil {
		return 0
	}
	return *i.Size
}

// Scope returns the scope the item lives in
func (i *Item) Scope() Scope {
	if !i.IsTeamScoped || i.TeamID == nil {
		return PersonalScope()
	}
	return TeamScope(*i.TeamID)
}

// HasParent reports whether the item sits directly under parentID (nil = root)
func (i *Item) HasParent(parentID *string) bool {
	if parentID == nil {
		return i.ParentID == nil
	}
	return i.ParentID != nil && *i.ParentID == *parentID
}

// Clone returns a deep copy so callers never share pointers with the store
func (i Item) Clone() Item {
	out := i
	if i.Size != nil {
		size := *i.Size
		out.Size = &size
	}
	if i.ParentID != nil {
		parent := *i.ParentID
		out.ParentID = &parent
	}
	if i.TeamID != nil {
		team := *i.TeamID
		out.TeamID = &team
	}
	out.Permissions = make([]Permission, len(i.Permissions))
	for idx, p := range i.Permissions {
		out.Permissions[idx] = p
		if p.TeamID != nil {
			team := *p.TeamID
			out.Permissions[idx].TeamID = &team
		}
	}
	return out
}
