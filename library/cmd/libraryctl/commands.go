package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/AntonStoeckl/library-backend-go/library/features/command/reconcilebookcopies"
	"github.com/AntonStoeckl/library-backend-go/library/features/command/registeruser"
	"github.com/AntonStoeckl/library-backend-go/library/features/query/overdueborrows"
	"github.com/AntonStoeckl/library-backend-go/library/features/query/userstats"
	"github.com/AntonStoeckl/library-backend-go/library/shared/core"
	"github.com/AntonStoeckl/library-backend-go/library/shared/credentials"
	"github.com/AntonStoeckl/library-backend-go/library/shared/shell"
	"github.com/AntonStoeckl/library-backend-go/library/shared/shell/config"
	"github.com/AntonStoeckl/library-backend-go/librarystore/sqlengine"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create all tables and indexes that do not exist yet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd, func(ctx context.Context, _ config.Config, store sqlengine.LibraryStore) error {
				if err := store.CreateSchema(ctx); err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")

				return nil
			})
		},
	}
}

func newCreateAdminCommand() *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Register an admin user, independent of LIBRARY_ALLOW_ADMIN_SIGNUP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				var err error
				if password, err = readPassword(cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
					return fmt.Errorf("reading password: %w", err)
				}
			}

			return withStore(cmd, func(ctx context.Context, cfg config.Config, store sqlengine.LibraryStore) error {
				service, err := credentials.NewService(cfg.JWTSecret, cfg.JWTExpiry)
				if err != nil {
					return err
				}

				userID, err := shell.NewID()
				if err != nil {
					return err
				}

				handler := registeruser.NewCommandHandler(store, service, registeruser.WithAdminSignup(true))

				user, _, err := handler.Handle(ctx, registeruser.BuildCommand(userID, name, email, password, string(core.RoleAdmin)))
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "created admin %s <%s> with id %s\n", user.Name, user.Email, user.ID)

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name of the admin")
	cmd.Flags().StringVar(&email, "email", "", "email address of the admin")
	cmd.Flags().StringVar(&password, "password", "", "password of the admin, prompted for when empty")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

// readPassword reads without echo from a terminal, or one line from any other input.
func readPassword(in io.Reader, out io.Writer) (string, error) {
	if file, ok := in.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		fmt.Fprint(out, "Password: ")

		raw, err := term.ReadPassword(int(file.Fd()))
		fmt.Fprintln(out)

		if err != nil {
			return "", err
		}

		return strings.TrimSpace(string(raw)), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}

	return strings.TrimSpace(line), nil
}

func newReconcileCopiesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile-copies",
		Short: "Align the borrowed copy counters of all books with the active borrow records",
		Long: "Recounts the active borrow records per book and corrects the copy counters that disagree, " +
			"for example after an availability override. Run it while the library is quiet.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd, func(ctx context.Context, _ config.Config, store sqlengine.LibraryStore) error {
				report, result, err := reconcilebookcopies.NewCommandHandler(store).Handle(ctx, reconcilebookcopies.BuildCommand())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				for _, c := range report.Corrections {
					fmt.Fprintf(out, "book %d %q: borrowed %d -> %d, available %d -> %d, total %d -> %d\n",
						c.After.ID, c.After.Title,
						c.Before.BorrowedCopies, c.After.BorrowedCopies,
						c.Before.AvailableCopies, c.After.AvailableCopies,
						c.Before.TotalCopies, c.After.TotalCopies,
					)
				}

				fmt.Fprintf(out, "checked %d books, corrected %d, retries %d\n",
					report.CheckedBooks, len(report.Corrections), result.RetryAttempts-1)

				return nil
			})
		},
	}
}

func newOverdueCommand() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "overdue",
		Short: "List active borrows older than the overdue threshold",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd, func(ctx context.Context, cfg config.Config, store sqlengine.LibraryStore) error {
				threshold := cfg.OverdueThreshold
				if days > 0 {
					threshold = time.Duration(days) * 24 * time.Hour
				}

				handler, err := overdueborrows.NewQueryHandler(store, overdueborrows.WithThreshold(threshold))
				if err != nil {
					return err
				}

				overdue, err := handler.Handle(ctx, overdueborrows.BuildQuery())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				for _, b := range overdue.Borrows {
					fmt.Fprintf(out, "%3d days  %-30s  %-25s  %s <%s>\n",
						b.DaysOverdue, b.BookTitle, b.BookAuthor, b.UserName, b.UserEmail)
				}

				fmt.Fprintf(out, "%d overdue borrows\n", overdue.Count)

				return nil
			})
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "overdue threshold in days, defaults to OVERDUE_THRESHOLD_DAYS")

	return cmd
}

func newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print the user statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd, func(ctx context.Context, _ config.Config, store sqlengine.LibraryStore) error {
				stats, err := userstats.NewQueryHandler(store).Handle(ctx, userstats.BuildQuery())
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(),
					"users: %d\nadmins: %d\nmembers: %d\nactive borrowers: %d\ninactive users: %d\n",
					stats.TotalUsers, stats.AdminCount, stats.MemberCount, stats.ActiveBorrowers, stats.InactiveUsers)

				return nil
			})
		},
	}
}

func newNextIDCommand() *cobra.Command {
	var sequence string

	cmd := &cobra.Command{
		Use:   "next-id",
		Short: "Draw the next value of a named sequence, for example to skip ids taken by imported books",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd, func(ctx context.Context, _ config.Config, store sqlengine.LibraryStore) error {
				value, err := store.NextSequenceValue(ctx, sequence)
				if err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), value)

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&sequence, "sequence", sqlengine.SequenceBookID, "name of the sequence")

	return cmd
}
