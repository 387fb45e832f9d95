package userstats

import (
	"github.com/AntonStoeckl/library-backend-go/librarystore"
)

// ProjectStats derives the member and inactive counts from the stored aggregates.
func ProjectStats(stats librarystore.UserStats) Stats {
	return Stats{
		TotalUsers:      stats.TotalUsers,
		AdminCount:      stats.AdminCount,
		MemberCount:     stats.TotalUsers - stats.AdminCount,
		ActiveBorrowers: stats.ActiveBorrowers,
		InactiveUsers:   stats.TotalUsers - stats.ActiveBorrowers,
	}
}
