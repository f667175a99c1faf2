package schema

// BlogArticleTable represents the 'blog.article' table
type BlogArticleTable struct {
	Table       string
	ID          string
	AuthorID    string
	CategoryID  string
	Title       string
	Slug        string
	Body        string
	Status      string
	PublishedAt string
	CreatedAt   string
	UpdatedAt   string
}

// BlogArticle is the schema definition for blog.article
var BlogArticle = BlogArticleTable{
	Table:       "blog.article",
	ID:          "id",
	AuthorID:    "authorid",
	CategoryID:  "categoryid",
	Title:       "title",
	Slug:        "slug",
	Body:        "body",
	Status:      "status",
	PublishedAt: "publishedat",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

func (t BlogArticleTable) Columns() []string {
	return []string{
		t.ID, t.AuthorID, t.CategoryID, t.Title, t.Slug, t.Body,
		t.Status, t.PublishedAt, t.CreatedAt, t.UpdatedAt,
	}
}

// ForeignKeys documents the relations hanging off blog.article. An author
// delete removes their articles; a category delete only detaches them.
func (t BlogArticleTable) ForeignKeys() []ForeignKey {
	return []ForeignKey{
		{From: t.AuthorID, To: UsersAccount.Table, OnDelete: Cascade},
		{From: t.CategoryID, To: BlogCategory.Table, OnDelete: SetNull},
	}
}
