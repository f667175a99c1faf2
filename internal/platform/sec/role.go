// Copyright (c) 2026 Inkwell CMS. All rights reserved.

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted system access, including category management
	RoleAdmin UserRole = "admin"

	// Can moderate comments and other community content
	RoleModerator UserRole = "moderator"

	// Can create and manage their own articles
	RoleAuthor UserRole = "author"

	// Default role for standard registered users
	RoleMember UserRole = "member"
)

// roleRank orders roles from least to most privileged.
var roleRank = map[UserRole]int{
	RoleMember:    0,
	RoleAuthor:    1,
	RoleModerator: 2,
	RoleAdmin:     3,
}

// AtLeast reports whether r grants at least the privileges of required.
func (r UserRole) AtLeast(required UserRole) bool {
	return roleRank[r] >= roleRank[required]
}
