package authenticateuser

const (
	queryType = "AuthenticateUser"
)

// Query represents a login attempt.
type Query struct {
	Identifier string
	Password   string
}

// QueryType returns the type identifier for this query, used for observability and routing.
func (q Query) QueryType() string {
	return queryType
}

// BuildQuery creates a new Query with the provided parameters.
func BuildQuery(identifier string, password string) Query {
	return Query{
		Identifier: identifier,
		Password:   password,
	}
}
