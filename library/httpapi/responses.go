package httpapi

import (
	"time"

	"github.com/AntonStoeckl/library-backend-go/library/features/query/overdueborrows"
	"github.com/AntonStoeckl/library-backend-go/library/features/query/userstats"
	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
)

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func toUserResponse(user core.User) userResponse {
	return userResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role.String(),
	}
}

func toUserResponses(users []core.User) []userResponse {
	responses := make([]userResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, toUserResponse(user))
	}

	return responses
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type bookResponse struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	Available       bool   `json:"available"`
	TotalCopies     int64  `json:"total_copies"`
	AvailableCopies int64  `json:"available_copies"`
	BorrowedCopies  int64  `json:"borrowed_copies"`
	Discontinued    bool   `json:"discontinued"`
}

func toBookResponse(book core.Book) bookResponse {
	return bookResponse{
		ID:              book.ID,
		Title:           book.Title,
		Author:          book.Author,
		Available:       book.Available,
		TotalCopies:     book.TotalCopies,
		AvailableCopies: book.AvailableCopies,
		BorrowedCopies:  book.BorrowedCopies,
		Discontinued:    book.Discontinued,
	}
}

func toBookResponses(books []core.Book) []bookResponse {
	responses := make([]bookResponse, 0, len(books))
	for _, book := range books {
		responses = append(responses, toBookResponse(book))
	}

	return responses
}

type bookMessageResponse struct {
	Message string       `json:"message"`
	Book    bookResponse `json:"book"`
}

type borrowResponse struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	BookID     int64      `json:"book_id"`
	BorrowedAt time.Time  `json:"borrowed_at"`
	ReturnedAt *time.Time `json:"returned_at"`
}

func toBorrowResponse(borrow core.BorrowRecord) borrowResponse {
	return borrowResponse{
		ID:         borrow.ID,
		UserID:     borrow.UserID,
		BookID:     borrow.BookID,
		BorrowedAt: borrow.BorrowedAt,
		ReturnedAt: borrow.ReturnedAt,
	}
}

func toBorrowResponses(borrows []core.BorrowRecord) []borrowResponse {
	responses := make([]borrowResponse, 0, len(borrows))
	for _, borrow := range borrows {
		responses = append(responses, toBorrowResponse(borrow))
	}

	return responses
}

type overdueBorrowResponse struct {
	BorrowID    string    `json:"borrow_id"`
	UserID      string    `json:"user_id"`
	UserName    string    `json:"user_name"`
	UserEmail   string    `json:"user_email"`
	BookID      int64     `json:"book_id"`
	BookTitle   string    `json:"book_title"`
	BookAuthor  string    `json:"book_author"`
	BorrowedAt  time.Time `json:"borrowed_at"`
	DaysOverdue int64     `json:"days_overdue"`
}

func toOverdueBorrowResponses(overdue overdueborrows.OverdueBorrows) []overdueBorrowResponse {
	responses := make([]overdueBorrowResponse, 0, overdue.Count)
	for _, row := range overdue.Borrows {
		responses = append(responses, overdueBorrowResponse{
			BorrowID:    row.BorrowID,
			UserID:      row.UserID,
			UserName:    row.UserName,
			UserEmail:   row.UserEmail,
			BookID:      row.BookID,
			BookTitle:   row.BookTitle,
			BookAuthor:  row.BookAuthor,
			BorrowedAt:  row.BorrowedAt,
			DaysOverdue: row.DaysOverdue,
		})
	}

	return responses
}

type userStatsResponse struct {
	TotalUsers      int64 `json:"total_users"`
	AdminCount      int64 `json:"admin_count"`
	MemberCount     int64 `json:"member_count"`
	ActiveBorrowers int64 `json:"active_borrowers"`
	InactiveUsers   int64 `json:"inactive_users"`
}

func toUserStatsResponse(stats userstats.Stats) userStatsResponse {
	return userStatsResponse{
		TotalUsers:      stats.TotalUsers,
		AdminCount:      stats.AdminCount,
		MemberCount:     stats.MemberCount,
		ActiveBorrowers: stats.ActiveBorrowers,
		InactiveUsers:   stats.InactiveUsers,
	}
}

type deletedUserResponse struct {
	Message       string `json:"message"`
	DeletedUserID string `json:"deleted_user_id"`
}

type roleChangeResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
	OldRole string `json:"old_role"`
	NewRole string `json:"new_role"`
}
