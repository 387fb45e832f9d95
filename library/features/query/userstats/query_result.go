package userstats

// Stats represents the query result.
type Stats struct {
	TotalUsers      int64
	AdminCount      int64
	MemberCount     int64
	ActiveBorrowers int64
	InactiveUsers   int64
}
