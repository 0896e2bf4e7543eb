package main

import (
	"fmt"
	"os"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"shopfront/internal/auth"
	"shopfront/internal/config"
	"shopfront/internal/store"
)

// Admin user commands talk to the database directly rather than the API:
// they are the bootstrap path for credential management and must work
// before any admin exists.
func newAdminCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage admin users",
	}
	cmd.AddCommand(
		newAdminAddCmd(cfg),
		newAdminListCmd(cfg),
		newAdminDisableCmd(cfg, true),
		newAdminDisableCmd(cfg, false),
		newAdminRemoveCmd(cfg),
	)
	return cmd
}

func withStore(cfg *config.Config, fn func(st *store.Store) error) error {
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()
	return fn(st)
}

func newAdminAddCmd(cfg *config.Config) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "add <username>",
		Short: "Create an admin user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username, err := auth.NormalizeUsername(args[0])
			if err != nil {
				return err
			}
			if password == "" {
				password, err = promptPassword()
				if err != nil {
					return err
				}
			}
			if err := auth.ValidatePassword(password); err != nil {
				return err
			}
			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}
			return withStore(cfg, func(st *store.Store) error {
				user, err := st.CreateAdminUser(cmd.Context(), username, hash, time.Now().UTC())
				if err != nil {
					return err
				}
				writePlain("created admin " + user.Username)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "password (prompted if omitted)")
	return cmd
}

func newAdminListCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List admin users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cfg, func(st *store.Store) error {
				users, err := st.ListAdmins(cmd.Context())
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "USERNAME\tSTATUS\tCREATED")
				for _, u := range users {
					status := "enabled"
					if u.Disabled {
						status = "disabled"
					}
					fmt.Fprintf(w, "%s\t%s\t%s\n", u.Username, status, u.CreatedAt.Format(time.RFC3339))
				}
				return w.Flush()
			})
		},
	}
}

func newAdminDisableCmd(cfg *config.Config, disable bool) *cobra.Command {
	use, short := "disable <username>", "Disable an admin user"
	if !disable {
		use, short = "enable <username>", "Re-enable a disabled admin user"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username, err := auth.NormalizeUsername(args[0])
			if err != nil {
				return err
			}
			return withStore(cfg, func(st *store.Store) error {
				user, err := st.SetAdminDisabled(cmd.Context(), username, disable, time.Now().UTC())
				if err != nil {
					return err
				}
				if user.Disabled {
					writePlain("disabled " + user.Username)
				} else {
					writePlain("enabled " + user.Username)
				}
				return nil
			})
		},
	}
}

func newAdminRemoveCmd(cfg *config.Config) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove <username>",
		Short: "Delete an admin user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username, err := auth.NormalizeUsername(args[0])
			if err != nil {
				return err
			}
			confirmed, err := confirmDestructive("remove admin "+username, yes)
			if err != nil {
				return err
			}
			if !confirmed {
				writePlain("aborted")
				return nil
			}
			return withStore(cfg, func(st *store.Store) error {
				deleted, err := st.DeleteAdmin(cmd.Context(), username)
				if err != nil {
					return err
				}
				if !deleted {
					return fmt.Errorf("admin %q not found", username)
				}
				writePlain("removed " + username)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "skip confirmation prompt")
	return cmd
}

func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "password: ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}
