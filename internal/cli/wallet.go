package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/trymyra/walletd/internal/app/wallet"
	"github.com/trymyra/walletd/internal/daemon"
	"github.com/trymyra/walletd/internal/infra/sqlite"
)

// ─── Wallet admin commands ──────────────────────────────────────────────────
// These operate directly on the local store, bypassing the HTTP API.
// Meant for operators, not end users.

func init() {
	rootCmd.AddCommand(balanceCmd)
	rootCmd.AddCommand(clearCmd)
	clearCmd.Flags().Bool("force", false, "confirm the irreversible clear")
}

func openWallet() (*wallet.Service, *sqlite.DB, error) {
	cfg, err := daemon.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	db, err := sqlite.Open(cfg.Storage.Dir)
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	return wallet.NewService(db, cfg.Pricing.PriceList(), logger), db, nil
}

var balanceCmd = &cobra.Command{
	Use:   "balance USER_ID",
	Short: "Print a user's current credit balance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, db, err := openWallet()
		if err != nil {
			return err
		}
		defer db.Close()

		balance, err := svc.Balance(context.Background(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%d\n", balance)
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear USER_ID",
	Short: "Wipe a user's entire ledger (irreversible)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if !force {
			return fmt.Errorf("refusing to clear ledger for %q without --force", args[0])
		}

		svc, db, err := openWallet()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := svc.Clear(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Printf("ledger cleared for %s\n", args[0])
		return nil
	},
}
