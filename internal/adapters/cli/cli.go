package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"parts-desk/internal/app"
	"parts-desk/internal/core"
)

// Run executes a one-shot CLI command and exits.
// args is os.Args[1:] — the first element is the subcommand name.
// Commands reuse the persisted session; sign in once with `login`.
func Run(ctx context.Context, svc app.ApplicationService, args []string, exportDir string) {
	switch args[0] {
	case "login":
		if len(args) < 2 {
			log.Fatal("Usage: app login <email>  (password read from stdin)")
		}
		reader := bufio.NewReader(os.Stdin)
		fmt.Fprint(os.Stderr, "Password: ")
		secret, _ := reader.ReadString('\n')
		identity, err := svc.Login(ctx, args[1], strings.TrimSpace(secret))
		if err != nil {
			log.Fatalf("Login failed: %v", err)
		}
		fmt.Printf("Signed in: %s <%s> (%s)\n", identity.Name, identity.Email, identity.Role)

	case "logout":
		if err := svc.Logout(ctx); err != nil {
			log.Fatalf("Logout failed: %v", err)
		}
		fmt.Println("Logged out.")

	case "inventory", "inv":
		location := core.DistributionLocation
		if len(args) > 1 {
			location = strings.ToUpper(args[1])
		}
		result, err := svc.ListParts(ctx, location, "")
		if err != nil {
			log.Fatalf("Failed to list parts: %v", err)
		}
		printJSON(result.Parts)

	case "orders":
		result, err := svc.ListOrders(ctx, "")
		if err != nil {
			log.Fatalf("Failed to list orders: %v", err)
		}
		printJSON(result.Orders)

	case "users":
		users, err := svc.ListUsers(ctx)
		if err != nil {
			log.Fatalf("Failed to list users: %v", err)
		}
		printJSON(users)

	case "export", "exp":
		if len(args) < 2 {
			log.Fatal("Usage: app export <inventory <location>|orders> [csv|xlsx]")
		}
		runExport(ctx, svc, args[1:], exportDir)

	case "reset-data":
		if len(args) < 2 || args[1] != "--yes" {
			log.Fatal("Refusing without --yes: this discards all data and reseeds defaults.")
		}
		if err := svc.ResetData(ctx); err != nil {
			log.Fatalf("Reset failed: %v", err)
		}
		fmt.Println("All data reset to seeded defaults.")

	default:
		log.Fatalf("Unknown command: %s\nAvailable: login, logout, inventory, orders, users, export, reset-data", args[0])
	}
}

func runExport(ctx context.Context, svc app.ApplicationService, args []string, exportDir string) {
	format := "csv"
	var result *app.ExportResult
	var err error

	switch args[0] {
	case "inventory", "inv":
		if len(args) < 2 {
			log.Fatal("Usage: app export inventory <location> [csv|xlsx]")
		}
		if len(args) >= 3 {
			format = strings.ToLower(args[2])
		}
		result, err = svc.ExportInventory(ctx, strings.ToUpper(args[1]), format)
	case "orders":
		if len(args) >= 2 {
			format = strings.ToLower(args[1])
		}
		result, err = svc.ExportOrders(ctx, format)
	default:
		log.Fatalf("Unknown export target: %s (use inventory or orders)", args[0])
	}
	if err != nil {
		log.Fatalf("Export failed: %v", err)
	}

	path := filepath.Join(exportDir, result.Filename)
	if err := os.WriteFile(path, result.Data, 0o644); err != nil {
		log.Fatalf("Failed to write export: %v", err)
	}
	if result.FellBack {
		fmt.Fprintln(os.Stderr, "xlsx export failed; wrote csv instead.")
	}
	fmt.Println(path)
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}
