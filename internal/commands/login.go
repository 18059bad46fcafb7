package commands

import (
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewLoginCommand 登录命令
func NewLoginCommand() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the PBX API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}
			defer app.Close()

			if email == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Email: ")
				fmt.Fscanln(cmd.InOrStdin(), &email)
			}
			if password == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Password: ")
				raw, err := term.ReadPassword(int(syscall.Stdin))
				fmt.Fprintln(cmd.OutOrStdout())
				if err != nil {
					return err
				}
				password = string(raw)
			}

			result, err := app.Client.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			app.Session.SetToken(result.Token)
			app.Session.SetUser(&result.User)

			// 有激活 profile 就把 token 持久化进去
			if name := app.Session.Profile(); name != "" {
				if err := app.Store.SetToken(name, result.Token); err != nil {
					return err
				}
			}

			app.Notify.Success("Signed in", fmt.Sprintf("%s (%s)", result.User.Name, result.User.Role))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted if omitted)")
	return cmd
}

// NewLogoutCommand 退出登录命令
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}
			defer app.Close()

			if name := app.Session.Profile(); name != "" {
				if err := app.Store.SetToken(name, ""); err != nil {
					return err
				}
			}
			app.Session.Clear()
			app.Notify.Success("Signed out", "")
			return nil
		},
	}
}
