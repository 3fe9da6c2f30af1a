package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/banklink/banklink/internal/infrastructure/postgres"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "banklink-cli",
		Short: "BankLink CLI tool",
		Long:  `A command line interface for operating the BankLink API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the BankLink API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(depositCmd())
	rootCmd.AddCommand(withdrawCmd())
	rootCmd.AddCommand(transferCmd())
	rootCmd.AddCommand(reconcileCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func depositCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "deposit <account-id> <amount>",
		Short: "Deposit funds into an account",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			postJSON(fmt.Sprintf("/api/v1/accounts/%s/deposits", args[0]), map[string]any{
				"amount":      args[1],
				"description": description,
			})
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Movement description")

	return cmd
}

func withdrawCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "withdraw <account-id> <amount>",
		Short: "Withdraw funds from an account",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			postJSON(fmt.Sprintf("/api/v1/accounts/%s/withdrawals", args[0]), map[string]any{
				"amount":      args[1],
				"description": description,
			})
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Movement description")

	return cmd
}

func transferCmd() *cobra.Command {
	var (
		bankID      string
		description string
	)

	cmd := &cobra.Command{
		Use:   "transfer <from-account-id> <destination-number> <amount>",
		Short: "Transfer funds to another account",
		Long:  `Transfers funds to a local account, or to an account at a registered external bank when --bank is given.`,
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			body := map[string]any{
				"from_account_id":    args[0],
				"destination_number": args[1],
				"amount":             args[2],
				"description":        description,
			}

			path := "/api/v1/transfers"
			if bankID != "" {
				body["bank_id"] = bankID
				path = "/api/v1/transfers/external"
			}

			postJSON(path, body)
		},
	}

	cmd.Flags().StringVar(&bankID, "bank", "", "External bank ID for cross-bank transfers")
	cmd.Flags().StringVar(&description, "description", "", "Transfer description")

	return cmd
}

func reconcileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile [account-id]",
		Short: "Check stored balances against the movement log",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			path := "/api/v1/reconciliation"
			if len(args) == 1 {
				path = fmt.Sprintf("/api/v1/accounts/%s/reconciliation", args[0])
			}

			getJSON(path)
		},
	}
}

func migrateCmd() *cobra.Command {
	var (
		databaseURL    string
		migrationsPath string
		down           bool
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Run: func(cmd *cobra.Command, args []string) {
			var err error
			if down {
				err = postgres.RunMigrationsDown(databaseURL, migrationsPath)
			} else {
				err = postgres.RunMigrations(databaseURL, migrationsPath)
			}

			if err != nil {
				fmt.Printf("Migration failed: %v\n", err)
				os.Exit(1)
			}
		},
	}

	cmd.Flags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection URL")
	cmd.Flags().StringVar(&migrationsPath, "path", "migrations", "Migrations directory")
	cmd.Flags().BoolVar(&down, "down", false, "Roll back the last migration")

	return cmd
}

func postJSON(path string, body map[string]any) {
	payload, err := json.Marshal(body)
	if err != nil {
		fmt.Printf("Error encoding request: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func getJSON(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func printResponse(resp *http.Response) {
	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 300 {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(raw))
		os.Exit(1)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		fmt.Println(string(raw))
		return
	}

	fmt.Println(pretty.String())
}
