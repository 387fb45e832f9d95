package userstats

const (
	queryType = "UserStats"
)

// Query represents the intent of an admin to read the user statistics.
type Query struct{}

// QueryType returns the type identifier for this query, used for observability and routing.
func (q Query) QueryType() string {
	return queryType
}

// BuildQuery creates a new Query.
func BuildQuery() Query {
	return Query{}
}
