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
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "budget-cli",
		Short: "Budget tracker CLI tool",
		Long:  `A command line interface for interacting with the budget tracker API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the budget tracker API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(accountCmd())
	rootCmd.AddCommand(entryCmd())
	rootCmd.AddCommand(transferCmd())
	rootCmd.AddCommand(ledgerCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func accountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations",
	}

	var name, currency, startingBalance string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new account",
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/accounts/", map[string]string{
				"name":             name,
				"currency":         currency,
				"starting_balance": startingBalance,
			})
		},
	}
	createCmd.Flags().StringVar(&name, "name", "", "Account name")
	createCmd.Flags().StringVar(&currency, "currency", "USD", "ISO 4217 currency code")
	createCmd.Flags().StringVar(&startingBalance, "balance", "0", "Starting balance")
	createCmd.MarkFlagRequired("name")

	getCmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Get an account by ID",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/accounts/" + args[0])
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/accounts/")
		},
	}

	cmd.AddCommand(createCmd, getCmd, listCmd)

	return cmd
}

func entryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Entry operations",
	}

	var amount, date, category, categoryType string
	addCmd := &cobra.Command{
		Use:   "add [account-id]",
		Short: "Record an entry on an account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/accounts/"+args[0]+"/entries", map[string]string{
				"amount":        amount,
				"date":          date,
				"category":      category,
				"category_type": categoryType,
			})
		},
	}
	addCmd.Flags().StringVar(&amount, "amount", "", "Entry amount")
	addCmd.Flags().StringVar(&date, "date", "", "Entry date (RFC3339 or YYYY-MM-DD, defaults to now)")
	addCmd.Flags().StringVar(&category, "category", "", "Entry category")
	addCmd.Flags().StringVar(&categoryType, "type", "", "Category type (EXPENSE, INCOME, TRANSFER)")
	addCmd.MarkFlagRequired("amount")

	listCmd := &cobra.Command{
		Use:   "list [account-id]",
		Short: "List entries for an account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/accounts/" + args[0] + "/entries")
		},
	}

	cmd.AddCommand(addCmd, listCmd)

	return cmd
}

func transferCmd() *cobra.Command {
	var from, to, date, debit, credit string
	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Move funds between two accounts",
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/transfers", map[string]string{
				"from_account_id": from,
				"to_account_id":   to,
				"date":            date,
				"debit_amount":    debit,
				"credit_amount":   credit,
			})
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Source account ID")
	cmd.Flags().StringVar(&to, "to", "", "Destination account ID")
	cmd.Flags().StringVar(&date, "date", "", "Transfer date (defaults to now)")
	cmd.Flags().StringVar(&debit, "debit", "", "Amount taken from the source account")
	cmd.Flags().StringVar(&credit, "credit", "", "Amount added to the destination account")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")
	cmd.MarkFlagRequired("debit")
	cmd.MarkFlagRequired("credit")

	return cmd
}

func ledgerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	consistencyCmd := &cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		Run: func(cmd *cobra.Command, args []string) {
			checkConsistency()
		},
	}

	cmd.AddCommand(consistencyCmd)

	return cmd
}

func postJSON(path string, payload map[string]string) {
	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("Failed to build request: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(body))
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
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		fmt.Printf("Request failed (Status: %d)\n%s\n", resp.StatusCode, formatJSON(body))
		os.Exit(1)
	}

	fmt.Println(formatJSON(body))
}

// formatJSON re-indents a JSON body for terminal output. Unparseable
// bodies are printed as-is.
func formatJSON(body []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		return string(body)
	}

	return buf.String()
}

func checkConsistency() {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/api/v1/ledger/consistency")
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Consistency check FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Consistency check PASSED\n")
	if consistent, ok := result["consistent"].(bool); ok {
		fmt.Printf("Consistent: %v\n", consistent)
	}
	fmt.Printf("Status: %s\n", result["status"])
}
