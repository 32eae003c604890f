package filemanager

// Scope partitions the collection into the personal space and team spaces.
// A nil TeamID is the personal space.
type Scope struct {
	TeamID *string `json:"team_id,omitempty"`
}

// PersonalScope returns the personal space
func PersonalScope() Scope {
	return Scope{}
}

// TeamScope returns the space of one team
func TeamScope(teamID string) Scope {
	return Scope{TeamID: &teamID}
}

// IsPersonal reports whether this is the personal space
func (s Scope) IsPersonal() bool {
	return s.TeamID == nil
}

// Equal compares two scopes by team id
func (s Scope) Equal(other Scope) bool {
	if s.TeamID == nil || other.TeamID == nil {
		return s.TeamID == nil && other.TeamID == nil
	}
	return *s.TeamID == *other.TeamID
}

// Contains reports whether an item belongs to this scope.
// Personal scope keeps only items that are not team scoped.
func (s Scope) Contains(item *Item) bool {
	if s.TeamID == nil {
		return !item.IsTeamScoped
	}
	return item.IsTeamScoped && item.TeamID != nil && *item.TeamID == *s.TeamID
}

// String renders the scope for logs
func (s Scope) String() string {
	if s.TeamID == nil {
		return "personal"
	}
	return "team:" + *s.TeamID
}
