package domain

// Well-known role names used to gate actions
const (
	RoleAdministrator    = "administrator"
	RoleLogisticsManager = "logisticsManager"
	RoleCarrierManager   = "carrierManager"
)

// SystemUser is the principal recorded for changes made by triggers and
// background reconciliation rather than an interactive user.
var SystemUser = User{ID: "system", Name: "system"}

// User is the authenticated principal invoking an operation. Language drives
// localization of result messages; Roles gate action availability.
type User struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Language string   `json:"language"`
	Roles    []string `json:"roles"`
}

// HasRole reports whether the user carries the given role
func (u User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether the user carries at least one of the roles.
// An empty roles list means the operation is not role-restricted.
func (u User) HasAnyRole(roles []string) bool {
	if len(roles) == 0 {
		return true
	}
	for _, r := range roles {
		if u.HasRole(r) {
			return true
		}
	}
	return false
}
