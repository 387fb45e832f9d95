package httpapi

import (
	"errors"
	"time"

	"github.com/AntonStoeckl/library-backend-go/library/features/command/addbook"
	"github.com/AntonStoeckl/library-backend-go/library/features/command/addbookcopies"
	"github.com/AntonStoeckl/library-backend-go/library/features/command/borrowbook"
	"github.com/AntonStoeckl/library-backend-go/library/features/command/changeuserrole"
	"github.com/AntonStoeckl/library-backend-go/library/features/command/deleteuser"
	"github.com/AntonStoeckl/library-backend-go/library/features/command/discontinuebook"
	"github.com/AntonStoeckl/library-backend-go/library/features/command/overridebookavailability"
	"github.com/AntonStoeckl/library-backend-go/library/features/command/registeruser"
	"github.com/AntonStoeckl/library-backend-go/library/features/command/removebook"
	"github.com/AntonStoeckl/library-backend-go/library/features/command/removebookcopies"
	"github.com/AntonStoeckl/library-backend-go/library/features/command/returnbook"
	"github.com/AntonStoeckl/library-backend-go/library/features/query/authenticateuser"
	"github.com/AntonStoeckl/library-backend-go/library/features/query/getbook"
	"github.com/AntonStoeckl/library-backend-go/library/features/query/getuser"
	"github.com/AntonStoeckl/library-backend-go/library/features/query/listbooks"
	"github.com/AntonStoeckl/library-backend-go/library/features/query/listborrows"
	"github.com/AntonStoeckl/library-backend-go/library/features/query/listusers"
	"github.com/AntonStoeckl/library-backend-go/library/features/query/overdueborrows"
	"github.com/AntonStoeckl/library-backend-go/library/features/query/userstats"
	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
	"github.com/AntonStoeckl/library-backend-go/library/shared/credentials"
	"github.com/AntonStoeckl/library-backend-go/library/shared/shell"
	"github.com/AntonStoeckl/library-backend-go/library/shared/shell/observable"
	"github.com/AntonStoeckl/library-backend-go/librarystore/sqlengine"
)

// Handlers holds one handler per use case. NewHandlers wraps each of them with observability.
type Handlers struct {
	RegisterUser     shell.CoreCommandHandler[registeruser.Command, core.User]
	DeleteUser       shell.CoreCommandHandler[deleteuser.Command, core.User]
	ChangeUserRole   shell.CoreCommandHandler[changeuserrole.Command, changeuserrole.RoleChange]
	AddBook          shell.CoreCommandHandler[addbook.Command, core.Book]
	AddBookCopies    shell.CoreCommandHandler[addbookcopies.Command, core.Book]
	RemoveBookCopies shell.CoreCommandHandler[removebookcopies.Command, core.Book]
	OverrideBook     shell.CoreCommandHandler[overridebookavailability.Command, core.Book]
	RemoveBook       shell.CoreCommandHandler[removebook.Command, core.Book]
	DiscontinueBook  shell.CoreCommandHandler[discontinuebook.Command, core.Book]
	BorrowBook       shell.CoreCommandHandler[borrowbook.Command, core.BorrowRecord]
	ReturnBook       shell.CoreCommandHandler[returnbook.Command, core.BorrowRecord]

	AuthenticateUser shell.CoreQueryHandler[authenticateuser.Query, authenticateuser.Authenticated]
	GetUser          shell.CoreQueryHandler[getuser.Query, core.User]
	ListUsers        shell.CoreQueryHandler[listusers.Query, listusers.Users]
	UserStats        shell.CoreQueryHandler[userstats.Query, userstats.Stats]
	ListBooks        shell.CoreQueryHandler[listbooks.Query, listbooks.Books]
	GetBook          shell.CoreQueryHandler[getbook.Query, core.Book]
	ListBorrows      shell.CoreQueryHandler[listborrows.Query, listborrows.Borrows]
	OverdueBorrows   shell.CoreQueryHandler[overdueborrows.Query, overdueborrows.OverdueBorrows]
}

// HandlerSettings configures the use cases behind the handlers. A zero OverdueThreshold keeps the default.
type HandlerSettings struct {
	OverdueThreshold time.Duration
	AllowAdminSignup bool
	Logger           shell.Logger
	ContextualLogger shell.ContextualLogger
}

type wiring struct {
	options []observable.Option
	errs    []error
}

func wrapCommand[C shell.Command, R any](w *wiring, handler shell.CoreCommandHandler[C, R]) shell.CoreCommandHandler[C, R] {
	wrapped, err := observable.NewCommandWrapper(handler, w.options...)
	if err != nil {
		w.errs = append(w.errs, err)
		return handler
	}

	return wrapped
}

func wrapQuery[Q shell.Query, R any](w *wiring, handler shell.CoreQueryHandler[Q, R]) shell.CoreQueryHandler[Q, R] {
	wrapped, err := observable.NewQueryWrapper(handler, w.options...)
	if err != nil {
		w.errs = append(w.errs, err)
		return handler
	}

	return wrapped
}

// NewHandlers builds every use case handler on top of the store and the credential service,
// each wrapped with the given observability options.
func NewHandlers(
	store sqlengine.LibraryStore,
	service credentials.Service,
	settings HandlerSettings,
	opts ...observable.Option,
) (Handlers, error) {
	w := &wiring{options: opts}

	var overdueOptions []overdueborrows.Option
	if settings.OverdueThreshold != 0 {
		overdueOptions = append(overdueOptions, overdueborrows.WithThreshold(settings.OverdueThreshold))
	}

	overdue, err := overdueborrows.NewQueryHandler(store, overdueOptions...)
	if err != nil {
		return Handlers{}, err
	}

	var borrowOptions []borrowbook.Option
	var returnOptions []returnbook.Option

	if settings.Logger != nil {
		borrowOptions = append(borrowOptions, borrowbook.WithLogging(settings.Logger))
		returnOptions = append(returnOptions, returnbook.WithLogging(settings.Logger))
	}

	if settings.ContextualLogger != nil {
		borrowOptions = append(borrowOptions, borrowbook.WithContextualLogging(settings.ContextualLogger))
		returnOptions = append(returnOptions, returnbook.WithContextualLogging(settings.ContextualLogger))
	}

	handlers := Handlers{
		RegisterUser: wrapCommand[registeruser.Command, core.User](
			w, registeruser.NewCommandHandler(store, service, registeruser.WithAdminSignup(settings.AllowAdminSignup)),
		),
		DeleteUser:       wrapCommand[deleteuser.Command, core.User](w, deleteuser.NewCommandHandler(store)),
		ChangeUserRole:   wrapCommand[changeuserrole.Command, changeuserrole.RoleChange](w, changeuserrole.NewCommandHandler(store)),
		AddBook:          wrapCommand[addbook.Command, core.Book](w, addbook.NewCommandHandler(store)),
		AddBookCopies:    wrapCommand[addbookcopies.Command, core.Book](w, addbookcopies.NewCommandHandler(store)),
		RemoveBookCopies: wrapCommand[removebookcopies.Command, core.Book](w, removebookcopies.NewCommandHandler(store)),
		OverrideBook:     wrapCommand[overridebookavailability.Command, core.Book](w, overridebookavailability.NewCommandHandler(store)),
		RemoveBook:       wrapCommand[removebook.Command, core.Book](w, removebook.NewCommandHandler(store)),
		DiscontinueBook:  wrapCommand[discontinuebook.Command, core.Book](w, discontinuebook.NewCommandHandler(store)),
		BorrowBook:       wrapCommand[borrowbook.Command, core.BorrowRecord](w, borrowbook.NewCommandHandler(store, borrowOptions...)),
		ReturnBook:       wrapCommand[returnbook.Command, core.BorrowRecord](w, returnbook.NewCommandHandler(store, returnOptions...)),

		AuthenticateUser: wrapQuery[authenticateuser.Query, authenticateuser.Authenticated](
			w, authenticateuser.NewQueryHandler(store, service),
		),
		GetUser:        wrapQuery[getuser.Query, core.User](w, getuser.NewQueryHandler(store)),
		ListUsers:      wrapQuery[listusers.Query, listusers.Users](w, listusers.NewQueryHandler(store)),
		UserStats:      wrapQuery[userstats.Query, userstats.Stats](w, userstats.NewQueryHandler(store)),
		ListBooks:      wrapQuery[listbooks.Query, listbooks.Books](w, listbooks.NewQueryHandler(store)),
		GetBook:        wrapQuery[getbook.Query, core.Book](w, getbook.NewQueryHandler(store)),
		ListBorrows:    wrapQuery[listborrows.Query, listborrows.Borrows](w, listborrows.NewQueryHandler(store)),
		OverdueBorrows: wrapQuery[overdueborrows.Query, overdueborrows.OverdueBorrows](w, overdue),
	}

	if len(w.errs) > 0 {
		return Handlers{}, errors.Join(w.errs...)
	}

	return handlers, nil
}
