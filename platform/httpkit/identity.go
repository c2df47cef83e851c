package httpkit

import "github.com/gin-gonic/gin"

// Identity represents the authenticated caller of a protected route.
// Handlers read it without depending on the JWT claim layout.
type Identity interface {
	// Subject returns the token subject.
	Subject() string
	// Roles returns the caller's assigned roles.
	Roles() []string
	// HasRole checks if the caller has a specific role.
	HasRole(role string) bool
	// IsAuthenticated returns true if the caller is authenticated.
	IsAuthenticated() bool
}

type identity struct {
	subject       string
	roles         []string
	authenticated bool
}

func (i *identity) Subject() string { return i.subject }

func (i *identity) Roles() []string { return i.roles }

func (i *identity) HasRole(role string) bool {
	for _, r := range i.roles {
		if r == role {
			return true
		}
	}
	return false
}

func (i *identity) IsAuthenticated() bool { return i.authenticated }

// GetIdentity extracts the Identity from a Gin context.
// Returns an unauthenticated identity if AuthRequired has not run.
func GetIdentity(c *gin.Context) Identity {
	subject, ok := c.Get(ContextSubjectKey)
	if !ok {
		return &identity{}
	}

	text, _ := subject.(string)
	var roles []string
	if value, ok := c.Get(ContextRolesKey); ok {
		roles, _ = value.([]string)
	}

	return &identity{subject: text, roles: roles, authenticated: text != ""}
}
