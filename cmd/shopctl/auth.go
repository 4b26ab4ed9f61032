package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spec-kit/shop-service/internal/client/api"
	"github.com/spec-kit/shop-service/internal/client/session"
)

func registerCmd(getApp func() (*app, error)) *cobra.Command {
	var in api.RegisterInput

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp()
			if err != nil {
				return err
			}

			env, err := a.client.Register(cmd.Context(), in)
			if err != nil {
				return err
			}
			if !env.Success {
				return errors.New(env.Message)
			}
			// No auto-login: the account exists, but a token is only
			// minted by an explicit login.
			fmt.Println(env.Message)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&in.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&in.Password, "password", "", "Password (min 6 characters)")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&in.Address, "address", "", "Postal address")
	cmd.Flags().StringVar(&in.Answer, "answer", "", "Security question answer")
	return cmd
}

func loginCmd(getApp func() (*app, error)) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp()
			if err != nil {
				return err
			}

			resp, err := a.client.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			if !resp.Success || resp.User == nil {
				return errors.New(resp.Message)
			}

			profile := &session.Profile{
				ID:      resp.User.ID,
				Name:    resp.User.Name,
				Email:   resp.User.Email,
				Phone:   resp.User.Phone,
				Address: resp.User.Address,
				Role:    resp.User.Role,
			}
			if err := a.sess.Login(profile, resp.Token); err != nil {
				return err
			}
			fmt.Printf("Signed in as %s\n", profile.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	return cmd
}

func logoutCmd(getApp func() (*app, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the local session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp()
			if err != nil {
				return err
			}
			if err := a.sess.Logout(); err != nil {
				return err
			}
			fmt.Println("Signed out")
			return nil
		},
	}
}

func whoamiCmd(getApp func() (*app, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp()
			if err != nil {
				return err
			}

			ctx := a.sess.Store().Get()
			if ctx.User == nil {
				fmt.Println("Not signed in")
				return nil
			}
			fmt.Printf("%s <%s>", ctx.User.Name, ctx.User.Email)
			if ctx.User.Role == 1 {
				fmt.Print(" (admin)")
			}
			fmt.Println()
			return nil
		},
	}
}

func forgotPasswordCmd(getApp func() (*app, error)) *cobra.Command {
	var email, answer, newPassword string

	cmd := &cobra.Command{
		Use:   "forgot-password",
		Short: "Reset a password using the security answer",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp()
			if err != nil {
				return err
			}

			env, err := a.client.ForgotPassword(cmd.Context(), email, answer, newPassword)
			if err != nil {
				return err
			}
			if !env.Success {
				return errors.New(env.Message)
			}
			fmt.Println(env.Message)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&answer, "answer", "", "Security question answer")
	cmd.Flags().StringVar(&newPassword, "new-password", "", "New password (min 6 characters)")
	return cmd
}
