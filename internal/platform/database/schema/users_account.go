package schema

// UsersAccountTable represents the 'users.account' table
type UsersAccountTable struct {
	Table       string
	ID          string
	Username    string
	Email       string
	DisplayName string
	Role        string
	CreatedAt   string
	UpdatedAt   string
}

// UsersAccount is the schema definition for users.account
var UsersAccount = UsersAccountTable{
	Table:       "users.account",
	ID:          "id",
	Username:    "username",
	Email:       "email",
	DisplayName: "displayname",
	Role:        "role",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

func (t UsersAccountTable) Columns() []string {
	return []string{t.ID, t.Username, t.Email, t.DisplayName, t.Role, t.CreatedAt, t.UpdatedAt}
}
