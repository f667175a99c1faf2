package schema

// BlogArticleTagTable represents the 'blog.articletag' junction table
type BlogArticleTagTable struct {
	Table     string
	ArticleID string
	TagID     string
}

// BlogArticleTag is the schema definition for blog.articletag
var BlogArticleTag = BlogArticleTagTable{
	Table:     "blog.articletag",
	ArticleID: "articleid",
	TagID:     "tagid",
}

func (t BlogArticleTagTable) Columns() []string {
	return []string{t.ArticleID, t.TagID}
}

// ForeignKeys: both sides cascade, a link row has no life of its own.
func (t BlogArticleTagTable) ForeignKeys() []ForeignKey {
	return []ForeignKey{
		{From: t.ArticleID, To: BlogArticle.Table, OnDelete: Cascade},
		{From: t.TagID, To: BlogTag.Table, OnDelete: Cascade},
	}
}
