package schema

// BlogTagTable represents the 'blog.tag' table
type BlogTagTable struct {
	Table     string
	ID        string
	Name      string
	CreatedAt string
}

// BlogTag is the schema definition for blog.tag
var BlogTag = BlogTagTable{
	Table:     "blog.tag",
	ID:        "id",
	Name:      "name",
	CreatedAt: "createdat",
}

func (t BlogTagTable) Columns() []string {
	return []string{t.ID, t.Name, t.CreatedAt}
}
