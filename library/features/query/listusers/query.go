package listusers

const (
	queryType = "ListUsers"
)

// Query represents the intent of an admin to list all users.
type Query struct{}

// QueryType returns the type identifier for this query, used for observability and routing.
func (q Query) QueryType() string {
	return queryType
}

// BuildQuery creates a new Query.
func BuildQuery() Query {
	return Query{}
}
