package main

import (
	"fmt"
	"os"

	"github.com/daybook-hq/daybook/internal/client/config"
	"github.com/daybook-hq/daybook/internal/daybooksdk"
	"github.com/daybook-hq/daybook/internal/utils"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	red   = color.New(color.FgHiRed, color.Bold).SprintFunc()
	green = color.New(color.FgHiGreen).SprintFunc()
	cyan  = color.New(color.FgHiCyan).SprintFunc()
)

func init() {
	rootCmd.AddCommand(newLoginCmd())
}

func newLoginCmd() *cobra.Command {
	var email string
	var token string
	var dataDir string
	var serverURL string

	cmd := &cobra.Command{
		Use:     "login",
		Aliases: []string{"init"},
		Short:   "Login to the daybook server and save credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath := cmd.Flag("config").Value.String()

			if err := utils.ValidateURL(serverURL); err != nil {
				return err
			}
			if email == "" || token == "" {
				return fmt.Errorf("both --email and --token are required")
			}

			cmd.SilenceUsage = true

			// verify the credentials before persisting anything
			if _, err := daybooksdk.ExchangeToken(cmd.Context(), serverURL, &daybooksdk.TokenRequest{
				Email:        email,
				RefreshToken: token,
			}); err != nil {
				fmt.Fprintf(os.Stderr, "%s: %s\n", red("login failed"), err)
				return err
			}

			resolvedDataDir, err := utils.ResolvePath(dataDir)
			if err != nil {
				return err
			}

			cfg := &config.Config{
				Email:        email,
				DataDir:      resolvedDataDir,
				ServerURL:    serverURL,
				RefreshToken: token,
			}
			if err := cfg.Save(configPath); err != nil {
				return fmt.Errorf("save config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", green("logged in"))
			fmt.Fprintf(cmd.OutOrStdout(), "  email:   %s\n", cyan(cfg.Email))
			fmt.Fprintf(cmd.OutOrStdout(), "  datadir: %s\n", cyan(cfg.DataDir))
			fmt.Fprintf(cmd.OutOrStdout(), "  server:  %s\n", cyan(cfg.ServerURL))
			fmt.Fprintf(cmd.OutOrStdout(), "  config:  %s\n", cyan(configPath))
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Email for the daybook account")
	cmd.Flags().StringVarP(&token, "token", "t", "", "Refresh token issued by the daybook server")
	cmd.Flags().StringVarP(&dataDir, "datadir", "d", config.DefaultDataDir, "Daybook data directory")
	cmd.Flags().StringVarP(&serverURL, "server", "s", config.DefaultServerURL, "Daybook server URL")

	return cmd
}
