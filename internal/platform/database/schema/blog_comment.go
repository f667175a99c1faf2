package schema

// BlogCommentTable represents the 'blog.comment' table
type BlogCommentTable struct {
	Table      string
	ID         string
	ArticleID  string
	AuthorID   string
	Body       string
	IsApproved string
	CreatedAt  string
}

// BlogComment is the schema definition for blog.comment
var BlogComment = BlogCommentTable{
	Table:      "blog.comment",
	ID:         "id",
	ArticleID:  "articleid",
	AuthorID:   "authorid",
	Body:       "body",
	IsApproved: "isapproved",
	CreatedAt:  "createdat",
}

func (t BlogCommentTable) Columns() []string {
	return []string{t.ID, t.ArticleID, t.AuthorID, t.Body, t.IsApproved, t.CreatedAt}
}

func (t BlogCommentTable) ForeignKeys() []ForeignKey {
	return []ForeignKey{
		{From: t.ArticleID, To: BlogArticle.Table, OnDelete: Cascade},
		{From: t.AuthorID, To: UsersAccount.Table, OnDelete: Cascade},
	}
}
