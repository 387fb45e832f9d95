package getbook

const (
	queryType = "GetBook"
)

// Query represents the intent to read one book of the catalog.
type Query struct {
	BookID int64
}

// QueryType returns the type identifier for this query, used for observability and routing.
func (q Query) QueryType() string {
	return queryType
}

// BuildQuery creates a new Query with the provided parameters.
func BuildQuery(bookID int64) Query {
	return Query{BookID: bookID}
}
