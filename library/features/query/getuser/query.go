package getuser

const (
	queryType = "GetUser"
)

// Query represents the intent to read one user.
type Query struct {
	UserID string
}

// QueryType returns the type identifier for this query, used for observability and routing.
func (q Query) QueryType() string {
	return queryType
}

// BuildQuery creates a new Query with the provided parameters.
func BuildQuery(userID string) Query {
	return Query{UserID: userID}
}
