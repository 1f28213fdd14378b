package domain

// Role is the kind of principal behind a session token.
type Role string

const (
	RoleTable Role = "table"
	RoleTeam  Role = "team"
	RoleAdmin Role = "admin"
)

// Actor is the authenticated principal a request acts as.
type Actor struct {
	ID   string
	Role Role
	// TableID is set for table and team principals.
	TableID string
}

// CanActOn reports whether the actor may mutate the team.
func (a Actor) CanActOn(t *Team) bool {
	switch a.Role {
	case RoleAdmin:
		return true
	case RoleTable:
		return a.TableID == t.TableID
	case RoleTeam:
		return a.ID == t.TeamID
	}
	return false
}

// CanViewTable reports whether the actor may read the table's state.
func (a Actor) CanViewTable(tableID string) bool {
	return a.Role == RoleAdmin || a.TableID == tableID
}
