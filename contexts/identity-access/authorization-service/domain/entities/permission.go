package entities

// UserPermission is a capability grantable to an individual user. It is a
// distinct tagged type from the company-scoped permission kind on purpose:
// the two namespaces share nothing, so a grant can never cross them.
type UserPermission string

const (
	// UserPermissionAcceptCompanyRequest allows adjudicating
	// company-creation requests.
	UserPermissionAcceptCompanyRequest UserPermission = "accept_company_request"
)

// Valid reports whether the kind is one of the defined user permissions.
func (p UserPermission) Valid() bool {
	return p == UserPermissionAcceptCompanyRequest
}
