package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iho/tripledger/internal/adapter/http/dto"
	"github.com/iho/tripledger/internal/offline"
)

var (
	baseURL     string
	timeout     time.Duration
	journalPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tripledger-cli",
		Short: "TripLedger CLI tool",
		Long: `A command line interface for the TripLedger API.

Mutating commands are journaled locally and replayed with "sync", so
they can be issued while offline.`,
	}

	defaultJournal := filepath.Join(userConfigDir(), "queue.json")

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the TripLedger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&journalPath, "journal", defaultJournal, "Path to the offline action journal")

	rootCmd.AddCommand(
		expenseCmd(),
		settleCmd(),
		voteCmd(),
		syncCmd(),
		pendingCmd(),
		cancelCmd(),
		balancesCmd(),
		planCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func userConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".tripledger")
}

func openQueue() (*offline.Queue, error) {
	return offline.NewQueue(offline.Config{
		Journal: offline.NewJournal(journalPath),
		Sender:  offline.NewHTTPSender(baseURL, &http.Client{Timeout: timeout}),
		IDGen:   func() string { return ulid.Make().String() },
		Logger:  zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.WarnLevel),
	})
}

func enqueue(method, target string, payload any) {
	queue, err := openQueue()
	if err != nil {
		fmt.Printf("Failed to open queue: %v\n", err)
		os.Exit(1)
	}

	action, err := queue.Enqueue(method, target, payload)
	if err != nil {
		fmt.Printf("Failed to enqueue: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Queued %s (run \"sync\" to apply)\n", action.ID)
}

func expenseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expense",
		Short: "Expense operations",
	}

	var (
		tripID      string
		description string
		amount      string
		currency    string
		payer       string
		splits      []string
	)

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Queue an expense for a trip",
		RunE: func(cmd *cobra.Command, args []string) error {
			amt, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q", amount)
			}

			parsed, err := parseSplits(splits)
			if err != nil {
				return err
			}

			enqueue(http.MethodPost, "/api/v1/trips/"+tripID+"/expenses", dto.CreateExpenseRequest{
				Description: description,
				Amount:      amt,
				Currency:    currency,
				PayerID:     payer,
				Date:        time.Now().UTC(),
				Splits:      parsed,
			})
			return nil
		},
	}

	addCmd.Flags().StringVar(&tripID, "trip", "", "Trip ID")
	addCmd.Flags().StringVar(&description, "description", "", "What the money was spent on")
	addCmd.Flags().StringVar(&amount, "amount", "", "Total amount")
	addCmd.Flags().StringVar(&currency, "currency", "EUR", "Currency code")
	addCmd.Flags().StringVar(&payer, "payer", "", "User ID of the payer")
	addCmd.Flags().StringArrayVar(&splits, "split", nil, "Share as user=amount (repeatable)")
	addCmd.MarkFlagRequired("trip")
	addCmd.MarkFlagRequired("amount")
	addCmd.MarkFlagRequired("payer")

	cmd.AddCommand(addCmd)
	return cmd
}

// parseSplits parses user=amount pairs.
func parseSplits(pairs []string) ([]dto.SplitRequest, error) {
	splits := make([]dto.SplitRequest, 0, len(pairs))
	for _, pair := range pairs {
		user, raw, ok := strings.Cut(pair, "=")
		if !ok || user == "" {
			return nil, fmt.Errorf("invalid split %q, expected user=amount", pair)
		}

		amt, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid split amount %q", raw)
		}

		splits = append(splits, dto.SplitRequest{UserID: user, Amount: amt})
	}
	return splits, nil
}

func settleCmd() *cobra.Command {
	var (
		tripID string
		from   string
		to     string
		amount string
	)

	cmd := &cobra.Command{
		Use:   "settle",
		Short: "Queue a settlement payment",
		RunE: func(cmd *cobra.Command, args []string) error {
			amt, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q", amount)
			}

			enqueue(http.MethodPost, "/api/v1/trips/"+tripID+"/settlements", dto.CreateSettlementRequest{
				FromUserID: from,
				ToUserID:   to,
				Amount:     amt,
			})
			return nil
		},
	}

	cmd.Flags().StringVar(&tripID, "trip", "", "Trip ID")
	cmd.Flags().StringVar(&from, "from", "", "Paying user ID")
	cmd.Flags().StringVar(&to, "to", "", "Receiving user ID")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount paid")
	cmd.MarkFlagRequired("trip")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")
	cmd.MarkFlagRequired("amount")

	return cmd
}

func voteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vote",
		Short: "Vote operations",
	}

	var (
		voteID string
		userID string
		option string
	)

	respondCmd := &cobra.Command{
		Use:   "respond",
		Short: "Queue a vote response",
		Run: func(cmd *cobra.Command, args []string) {
			enqueue(http.MethodPost, "/api/v1/votes/"+voteID+"/responses", dto.VoteResponseRequest{
				UserID: userID,
				Option: option,
			})
		},
	}

	respondCmd.Flags().StringVar(&voteID, "vote", "", "Vote ID")
	respondCmd.Flags().StringVar(&userID, "user", "", "Responding user ID")
	respondCmd.Flags().StringVar(&option, "option", "", "Chosen option")
	respondCmd.MarkFlagRequired("vote")
	respondCmd.MarkFlagRequired("user")
	respondCmd.MarkFlagRequired("option")

	cmd.AddCommand(respondCmd)
	return cmd
}

func syncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Replay queued actions against the server",
		Run: func(cmd *cobra.Command, args []string) {
			queue, err := openQueue()
			if err != nil {
				fmt.Printf("Failed to open queue: %v\n", err)
				os.Exit(1)
			}

			result, err := queue.Drain(context.Background())
			if err != nil {
				fmt.Printf("Sync interrupted: %v\n", err)
				os.Exit(1)
			}

			fmt.Printf("Applied: %d  Rejected: %d\n", result.Applied, result.Terminal)
			if result.Stalled {
				fmt.Println("Server unreachable, remaining actions kept for next sync")
				os.Exit(1)
			}
		},
	}
}

func pendingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "List queued actions",
		Run: func(cmd *cobra.Command, args []string) {
			queue, err := openQueue()
			if err != nil {
				fmt.Printf("Failed to open queue: %v\n", err)
				os.Exit(1)
			}

			actions := queue.Pending()
			if len(actions) == 0 {
				fmt.Println("Queue is empty")
				return
			}

			for _, a := range actions {
				line := fmt.Sprintf("%s  %-16s  %s %s", a.ID, a.State, a.Method, a.Target)
				if a.LastError != "" {
					line += "  (" + truncate(a.LastError, 60) + ")"
				}
				fmt.Println(line)
			}
		},
	}
}

func cancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <action-id>",
		Short: "Remove a not-yet-attempted action from the queue",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			queue, err := openQueue()
			if err != nil {
				fmt.Printf("Failed to open queue: %v\n", err)
				os.Exit(1)
			}

			if err := queue.Cancel(args[0]); err != nil {
				fmt.Printf("Cancel failed: %v\n", err)
				os.Exit(1)
			}

			fmt.Println("Cancelled", args[0])
		},
	}
}

func balancesCmd() *cobra.Command {
	var tripID string

	cmd := &cobra.Command{
		Use:   "balances",
		Short: "Show net balances for a trip",
		Run: func(cmd *cobra.Command, args []string) {
			fetch("/api/v1/trips/" + tripID + "/balances")
		},
	}

	cmd.Flags().StringVar(&tripID, "trip", "", "Trip ID")
	cmd.MarkFlagRequired("trip")
	return cmd
}

func planCmd() *cobra.Command {
	var tripID string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the simplified settlement plan for a trip",
		Run: func(cmd *cobra.Command, args []string) {
			fetch("/api/v1/trips/" + tripID + "/settlements/plan")
		},
	}

	cmd.Flags().StringVar(&tripID, "trip", "", "Trip ID")
	cmd.MarkFlagRequired("trip")
	return cmd
}

func fetch(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	printJSON(result)
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to encode: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
