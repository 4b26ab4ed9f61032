package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spec-kit/shop-service/internal/client/api"
	"github.com/spec-kit/shop-service/internal/client/guard"
	"github.com/spec-kit/shop-service/internal/client/session"
)

var version = "dev"

// app bundles the client-side wiring shared by all commands.
type app struct {
	client *api.Client
	sess   *session.Manager
}

// newApp hydrates the session from the auth blob and syncs the token
// into the client's default Authorization header.
func newApp(serverURL, authFile string) (*app, error) {
	client := api.New(serverURL)

	storage, err := session.NewFileStorage(authFile)
	if err != nil {
		return nil, err
	}
	sess, err := session.NewManager(session.NewStore(), storage, client)
	if err != nil {
		return nil, err
	}

	return &app{client: client, sess: sess}, nil
}

func (a *app) userGuard() *guard.Guard {
	return guard.New(a.sess, a.client.VerifyUser)
}

func (a *app) adminGuard() *guard.Guard {
	return guard.New(a.sess, a.client.VerifyAdmin)
}

func main() {
	var (
		serverURL string
		authFile  string
	)

	rootCmd := &cobra.Command{
		Use:           "shopctl",
		Short:         "Command-line client for the shop service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", envOr("SHOP_API_URL", "http://localhost:8080"), "API base URL")
	rootCmd.PersistentFlags().StringVar(&authFile, "auth-file", os.Getenv("SHOP_AUTH_FILE"), "Path to the persisted auth blob")

	getApp := func() (*app, error) { return newApp(serverURL, authFile) }

	rootCmd.AddCommand(
		registerCmd(getApp),
		loginCmd(getApp),
		logoutCmd(getApp),
		whoamiCmd(getApp),
		forgotPasswordCmd(getApp),
		catalogCmd(getApp),
		ordersCmd(getApp),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}
}
