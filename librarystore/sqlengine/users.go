package sqlengine

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/AntonStoeckl/library-backend-go/librarystore"
	"github.com/AntonStoeckl/library-backend-go/librarystore/sqlengine/internal/adapters"
)

const (
	operationFindUser             = "find_user"
	operationFindUserByEmail      = "find_user_by_email"
	operationFindUsersByEmailName = "find_users_by_email_or_name"
	operationListUsers            = "list_users"
	operationInsertUser           = "insert_user"
	operationUpdateUserRole       = "update_user_role"
	operationDeleteUser           = "delete_user"
	operationUserStats            = "user_stats"
)

var userColumns = []any{colID, colName, colEmail, colPasswordHash, colRole}

func scanUser(rows adapters.DBRows) (librarystore.UserRecord, error) {
	var user librarystore.UserRecord
	err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role)

	return user, err
}

// FindUserByID loads one user. It returns librarystore.ErrRecordNotFound if the user does not exist.
func (s LibraryStore) FindUserByID(ctx context.Context, userID string) (librarystore.UserRecord, error) {
	users, err := s.findUsers(ctx, operationFindUser, goqu.C(colID).Eq(userID))
	if err != nil {
		return librarystore.UserRecord{}, err
	}

	if len(users) == 0 {
		return librarystore.UserRecord{}, librarystore.ErrRecordNotFound
	}

	return users[0], nil
}

// FindUserByEmail loads the user with the given email address.
// It returns librarystore.ErrRecordNotFound if nobody registered with it.
func (s LibraryStore) FindUserByEmail(ctx context.Context, email string) (librarystore.UserRecord, error) {
	users, err := s.findUsers(ctx, operationFindUserByEmail, goqu.C(colEmail).Eq(email))
	if err != nil {
		return librarystore.UserRecord{}, err
	}

	if len(users) == 0 {
		return librarystore.UserRecord{}, librarystore.ErrRecordNotFound
	}

	return users[0], nil
}

// FindUsersByEmailOrName returns every user whose email or name equals the login identifier.
// Users matching by email come first.
func (s LibraryStore) FindUsersByEmailOrName(ctx context.Context, identifier string) (librarystore.UserRecords, error) {
	users, err := s.findUsers(
		ctx,
		operationFindUsersByEmailName,
		goqu.Or(
			goqu.C(colEmail).Eq(identifier),
			goqu.C(colName).Eq(identifier),
		),
	)
	if err != nil {
		return nil, err
	}

	byEmail := make(librarystore.UserRecords, 0, len(users))
	byName := make(librarystore.UserRecords, 0, len(users))

	for _, user := range users {
		if user.Email == identifier {
			byEmail = append(byEmail, user)
		} else {
			byName = append(byName, user)
		}
	}

	return append(byEmail, byName...), nil
}

// ListUsers returns all users ordered by name.
func (s LibraryStore) ListUsers(ctx context.Context) (librarystore.UserRecords, error) {
	return s.findUsers(ctx, operationListUsers)
}

func (s LibraryStore) findUsers(ctx context.Context, operation string, where ...exp.Expression) (librarystore.UserRecords, error) {
	statement := s.builder().
		From(tableUsers).
		Select(userColumns...).
		Order(goqu.C(colName).Asc(), goqu.C(colID).Asc())

	if len(where) > 0 {
		statement = statement.Where(where...)
	}

	sqlQuery, err := s.toSQL(ctx, operation, statement)
	if err != nil {
		return nil, err
	}

	users := make(librarystore.UserRecords, 0)

	err = s.runQuery(ctx, operation, sqlQuery, func(rows adapters.DBRows) error {
		user, scanErr := scanUser(rows)
		if scanErr != nil {
			return scanErr
		}

		users = append(users, user)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return users, nil
}

// InsertUser stores a new user.
// It returns librarystore.ErrDuplicateRecord if the id or the email is taken.
func (s LibraryStore) InsertUser(ctx context.Context, user librarystore.UserRecord) error {
	statement := s.builder().
		Insert(tableUsers).
		Rows(goqu.Record{
			colID:           user.ID,
			colName:         user.Name,
			colEmail:        user.Email,
			colPasswordHash: user.PasswordHash,
			colRole:         user.Role,
		})

	sqlQuery, err := s.toSQL(ctx, operationInsertUser, statement)
	if err != nil {
		return err
	}

	if _, err = s.runExec(ctx, operationInsertUser, sqlQuery); err != nil {
		return err
	}

	s.logOperation(ctx, operationInsertUser, logAttrUserID, user.ID)

	return nil
}

// UpdateUserRole changes the role of a user, but only while the stored role still equals expectedRole.
// Otherwise, or if the user does not exist anymore, it returns librarystore.ErrConcurrencyConflict.
func (s LibraryStore) UpdateUserRole(ctx context.Context, userID string, expectedRole string, newRole string) error {
	statement := s.builder().
		Update(tableUsers).
		Set(goqu.Record{colRole: newRole}).
		Where(
			goqu.C(colID).Eq(userID),
			goqu.C(colRole).Eq(expectedRole),
		)

	sqlQuery, err := s.toSQL(ctx, operationUpdateUserRole, statement)
	if err != nil {
		return err
	}

	rowsAffected, err := s.runExec(ctx, operationUpdateUserRole, sqlQuery)
	if err != nil {
		return err
	}

	if err = s.conditionalWriteApplied(ctx, operationUpdateUserRole, rowsAffected, logAttrUserID, userID); err != nil {
		return err
	}

	s.logOperation(ctx, operationUpdateUserRole, logAttrUserID, userID)

	return nil
}

// DeleteUser removes a user that has no active borrow records.
// If the user does not exist anymore, or borrowed a book in the meantime, it returns librarystore.ErrConcurrencyConflict.
func (s LibraryStore) DeleteUser(ctx context.Context, userID string) error {
	activeBorrows := s.builder().
		From(tableBorrows).
		Select(goqu.L("1")).
		Where(
			goqu.C(colUserID).Eq(userID),
			goqu.C(colReturnedAt).IsNull(),
		)

	statement := s.builder().
		Delete(tableUsers).
		Where(
			goqu.C(colID).Eq(userID),
			goqu.L("NOT EXISTS ?", activeBorrows),
		)

	sqlQuery, err := s.toSQL(ctx, operationDeleteUser, statement)
	if err != nil {
		return err
	}

	rowsAffected, err := s.runExec(ctx, operationDeleteUser, sqlQuery)
	if err != nil {
		return err
	}

	if err = s.conditionalWriteApplied(ctx, operationDeleteUser, rowsAffected, logAttrUserID, userID); err != nil {
		return err
	}

	s.logOperation(ctx, operationDeleteUser, logAttrUserID, userID)

	return nil
}

// UserStats counts all users, the admins among them, and the distinct users holding at least one active borrow.
func (s LibraryStore) UserStats(ctx context.Context) (librarystore.UserStats, error) {
	activeBorrowers := s.builder().
		From(tableBorrows).
		Select(goqu.COUNT(goqu.DISTINCT(colUserID))).
		Where(goqu.C(colReturnedAt).IsNull())

	statement := s.builder().
		From(tableUsers).
		Select(
			goqu.COUNT(goqu.Star()),
			goqu.COALESCE(
				goqu.SUM(goqu.Case().When(goqu.C(colRole).Eq(roleAdmin), 1).Else(0)),
				0,
			),
			activeBorrowers,
		)

	sqlQuery, err := s.toSQL(ctx, operationUserStats, statement)
	if err != nil {
		return librarystore.UserStats{}, err
	}

	var stats librarystore.UserStats

	err = s.runQuery(ctx, operationUserStats, sqlQuery, func(rows adapters.DBRows) error {
		return rows.Scan(&stats.TotalUsers, &stats.AdminCount, &stats.ActiveBorrowers)
	})
	if err != nil {
		return librarystore.UserStats{}, err
	}

	return stats, nil
}
