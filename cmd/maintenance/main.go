// Binario de mantenimiento: operaciones que no van en el HTTP surface.
//
//	maintenance reset-db [-username admin] [-password ...]
//	maintenance reset-initial-quantities
//	maintenance create-admin -username ... -password ...
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Lelo88/pos-inventory-golang/internal/auth"
	"github.com/Lelo88/pos-inventory-golang/internal/db"
	"github.com/Lelo88/pos-inventory-golang/internal/items"
)

// seedPassword replica el seed histórico. Solo sirve para entornos de
// desarrollo; production pasa -password.
const seedPassword = "1234"

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: maintenance <reset-db|reset-initial-quantities|create-admin> [flags]")
	}
	command := args[0]
	switch command {
	case "reset-db", "reset-initial-quantities", "create-admin":
	default:
		return fmt.Errorf("unknown command %q", command)
	}

	flags := flag.NewFlagSet(command, flag.ContinueOnError)
	databaseURL := flags.String("database-url", os.Getenv("DATABASE_URL"), "Postgres connection string")
	username := flags.String("username", "admin", "admin username (reset-db / create-admin)")
	password := flags.String("password", "", "admin password (reset-db / create-admin)")
	if err := flags.Parse(args[1:]); err != nil {
		return err
	}

	// Todo lo validable sin conexión se valida antes de tocar la DB.
	if strings.TrimSpace(*databaseURL) == "" {
		return fmt.Errorf("missing database url: pass -database-url or set DATABASE_URL")
	}
	if command == "create-admin" && *password == "" {
		return fmt.Errorf("create-admin requires -password")
	}

	pool, err := db.NewPool(ctx, *databaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	users := auth.NewService(auth.NewRepository(pool), nil)
	repository := items.NewRepository(pool)
	stock := items.NewService(repository, items.NewCodeGenerator(repository), nil)

	switch command {
	case "reset-db":
		if err := db.Reset(ctx, pool); err != nil {
			return err
		}
		seed := *password
		if seed == "" {
			seed = seedPassword
			fmt.Fprintln(stdout, "warning: seeding admin with the default password, change it")
		}
		if _, err := users.CreateUser(ctx, *username, seed, true); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "database has been reset, admin user %q created\n", *username)
		return nil

	case "reset-initial-quantities":
		touched, err := stock.ResetInitialQuantities(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "initial quantities have been reset (%d items)\n", touched)
		return nil

	case "create-admin":
		user, err := users.CreateUser(ctx, *username, *password, true)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "admin user %q created\n", user.Username)
		return nil

	default:
		return fmt.Errorf("unknown command %q", command)
	}
}
