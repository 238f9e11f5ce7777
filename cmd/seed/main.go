package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"ticketsim/internal/auth"
	"ticketsim/internal/config"
	apperrors "ticketsim/internal/errors"
	"ticketsim/internal/repository"
	"ticketsim/internal/scoring"
	"ticketsim/internal/service"
)

// SeedUser is one demo account.
type SeedUser struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

var defaultUsers = []SeedUser{
	{Username: "demo", Password: "demo1234"},
	{Username: "alice", Password: "alice1234"},
	{Username: "bob", Password: "bob12345"},
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		file    string
		perUser int
		seed    int64
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed demo users and simulation history",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Println("Starting seed script...")

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cfg.StoreDriver == config.DriverMemory {
				log.Println("Warning: memory store selected, seeded data will not outlive this process")
			}

			users := defaultUsers
			if file != "" {
				if users, err = loadUsers(file); err != nil {
					return err
				}
			}

			store, err := repository.NewStore(cfg)
			if err != nil {
				return fmt.Errorf("store init: %w", err)
			}
			defer store.Close()
			log.Printf("Connected to %s store", cfg.StoreDriver)

			accounts, err := service.NewAccountService(store, auth.NewBcryptHasher(cfg.BcryptCost))
			if err != nil {
				return err
			}
			// History caching is irrelevant for a one-shot writer.
			sims := service.NewSimulationService(store, nil, 0)

			res, err := seedAll(cmd.Context(), accounts, sims, users, perUser, rand.New(rand.NewSource(seed)))
			if err != nil {
				return err
			}

			log.Printf("Seed completed successfully!")
			log.Printf("  - New users created: %d", res.Created)
			log.Printf("  - Existing users skipped: %d", res.Existing)
			log.Printf("  - Simulations recorded: %d", res.Simulations)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON file with [{\"username\",\"password\"}] entries")
	cmd.Flags().IntVarP(&perUser, "simulations", "n", 5, "simulations to record per user")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed for strategy choices")
	return cmd
}

func loadUsers(path string) ([]SeedUser, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var users []SeedUser
	if err := json.Unmarshal(body, &users); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return users, nil
}

type seedResult struct {
	Created     int
	Existing    int
	Simulations int
}

// seedAll registers each user and records perUser random strategies for
// the users it created. Users that already exist are left untouched.
func seedAll(
	ctx context.Context,
	accounts service.AccountService,
	sims service.SimulationService,
	users []SeedUser,
	perUser int,
	rng *rand.Rand,
) (seedResult, error) {
	var res seedResult
	options := scoring.Options()

	for _, u := range users {
		user, err := accounts.Register(ctx, u.Username, u.Password)
		if errors.Is(err, apperrors.ErrDuplicateUsername) {
			res.Existing++
			continue
		}
		if err != nil {
			return res, fmt.Errorf("error creating user %q: %w", u.Username, err)
		}
		res.Created++

		for i := 0; i < perUser; i++ {
			in := scoring.Input{
				Platform:   pick(rng, options["platform"]),
				EntryTime:  pick(rng, options["entry_time"]),
				TicketType: pick(rng, options["ticket_type"]),
				Network:    pick(rng, options["network"]),
			}
			if _, err := sims.Simulate(ctx, user.ID, in); err != nil {
				return res, fmt.Errorf("error recording simulation for %q: %w", u.Username, err)
			}
			res.Simulations++
		}
	}
	return res, nil
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.Intn(len(values))]
}
