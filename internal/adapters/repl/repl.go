package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"parts-desk/internal/app"
	"parts-desk/internal/core"
)

// Run starts the interactive REPL loop.
// It prompts for login if the persisted session is empty, then reads
// slash commands from reader and dispatches them deterministically.
func Run(ctx context.Context, svc app.ApplicationService, reader *bufio.Reader, exportDir string) {
	identity, err := svc.CurrentIdentity(ctx)
	if err != nil {
		fmt.Printf("Failed to read session: %v\n", err)
		return
	}
	if identity == nil {
		identity = loginLoop(ctx, svc, reader)
		if identity == nil {
			return
		}
	}

	fmt.Println("Parts Desk")
	fmt.Printf("Signed in: %s <%s> (%s)\n", identity.Name, identity.Email, identity.Role)
	fmt.Println("Type /help for commands.")
	fmt.Println(strings.Repeat("-", 70))

	errExit := fmt.Errorf("exit")

	dispatchSlash := func(input string) error {
		tokens := strings.Fields(strings.TrimPrefix(input, "/"))
		if len(tokens) == 0 {
			return nil
		}
		cmd := strings.ToLower(tokens[0])
		args := tokens[1:]

		switch cmd {
		case "inventory", "inv":
			location := core.DistributionLocation
			if len(args) > 0 {
				location = strings.ToUpper(args[0])
			}
			query := strings.Join(args[1:], " ")
			result, err := svc.ListParts(ctx, location, query)
			if err != nil {
				return err
			}
			printParts(result)

		case "add-part":
			if len(args) < 1 {
				fmt.Println("Usage: /add-part <location>")
				return nil
			}
			handleAddPart(ctx, reader, svc, strings.ToUpper(args[0]))

		case "edit-part":
			if len(args) < 2 {
				fmt.Println("Usage: /edit-part <location> <part-id>")
				return nil
			}
			handleEditPart(ctx, reader, svc, strings.ToUpper(args[0]), args[1])

		case "on-order":
			if len(args) < 3 {
				fmt.Println("Usage: /on-order <location> <part-id> <true|false>")
				return nil
			}
			flag, err := strconv.ParseBool(args[2])
			if err != nil {
				fmt.Printf("Invalid flag: %s\n", args[2])
				return nil
			}
			part, err := svc.SetOnOrder(ctx, strings.ToUpper(args[0]), args[1], flag)
			if err != nil {
				return err
			}
			fmt.Printf("Part %s on-order: %t\n", part.PartNumber, part.OnOrder)

		case "delete-part":
			if len(args) < 2 {
				fmt.Println("Usage: /delete-part <location> <part-id>")
				return nil
			}
			if err := svc.DeletePart(ctx, strings.ToUpper(args[0]), args[1]); err != nil {
				return err
			}
			fmt.Println("Part deleted.")

		case "orders":
			query := strings.Join(args, " ")
			result, err := svc.ListOrders(ctx, query)
			if err != nil {
				return err
			}
			printOrders(result)

		case "order":
			if len(args) < 2 {
				fmt.Println("Usage: /order <part-id> <quantity>")
				return nil
			}
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				fmt.Printf("Invalid quantity: %s\n", args[1])
				return nil
			}
			order, err := svc.PlaceOrder(ctx, args[0], qty)
			if err != nil {
				return err
			}
			fmt.Printf("Order placed: %d x %s (PENDING). Stock moves on approval.\n", order.Quantity, order.PartNumber)

		case "edit-order":
			if len(args) < 2 {
				fmt.Println("Usage: /edit-order <order-id> <quantity>")
				return nil
			}
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				fmt.Printf("Invalid quantity: %s\n", args[1])
				return nil
			}
			order, err := svc.EditOrderQuantity(ctx, args[0], qty)
			if err != nil {
				return err
			}
			fmt.Printf("Order %s quantity is now %d.\n", shortID(order.ID), order.Quantity)

		case "approve":
			if len(args) < 1 {
				fmt.Println("Usage: /approve <order-id>")
				return nil
			}
			order, err := svc.ApproveOrder(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Order APPROVED: %d x %s deducted from %s.\n",
				order.Quantity, order.PartNumber, core.DistributionLocation)

		case "decline":
			if len(args) < 1 {
				fmt.Println("Usage: /decline <order-id>")
				return nil
			}
			order, err := svc.DeclineOrder(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Order DECLINED: %d x %s. Stock unchanged.\n", order.Quantity, order.PartNumber)

		case "locations", "loc":
			locations, err := svc.ListLocations(ctx)
			if err != nil {
				return err
			}
			printLocations(locations)

		case "add-location":
			if len(args) < 1 {
				fmt.Println("Usage: /add-location <name>")
				return nil
			}
			name, err := svc.AddLocation(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Printf("Location added: %s\n", name)

		case "remove-location":
			if len(args) < 1 {
				fmt.Println("Usage: /remove-location <name>")
				return nil
			}
			name := strings.ToUpper(strings.Join(args, " "))
			fmt.Printf("Remove %s and discard its inventory? (y/n): ", name)
			choice, _ := reader.ReadString('\n')
			confirmed := strings.TrimSpace(strings.ToLower(choice)) == "y"
			if err := svc.RemoveLocation(ctx, name, confirmed); err != nil {
				return err
			}
			fmt.Printf("Location removed: %s\n", name)

		case "users":
			users, err := svc.ListUsers(ctx)
			if err != nil {
				return err
			}
			printUsers(users)

		case "add-user":
			handleAddUser(ctx, reader, svc)

		case "reset-password":
			if len(args) < 1 {
				fmt.Println("Usage: /reset-password <user-id>")
				return nil
			}
			secret, err := svc.ResetPassword(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Temporary password: %s\n", secret)
			fmt.Println("It is shown once and cannot be retrieved again.")

		case "toggle-active":
			if len(args) < 1 {
				fmt.Println("Usage: /toggle-active <user-id>")
				return nil
			}
			user, err := svc.ToggleUserActive(ctx, args[0])
			if err != nil {
				return err
			}
			state := "deactivated"
			if user.Active {
				state = "activated"
			}
			fmt.Printf("User %s %s.\n", user.Email, state)

		case "settings":
			settings, err := svc.GetSettings(ctx)
			if err != nil {
				return err
			}
			printSettings(settings)

		case "set-logo":
			if len(args) < 1 {
				fmt.Println("Usage: /set-logo <url>")
				return nil
			}
			settings, err := svc.GetSettings(ctx)
			if err != nil {
				return err
			}
			settings.LogoURL = args[0]
			if _, err := svc.UpdateSettings(ctx, settings); err != nil {
				return err
			}
			fmt.Println("Logo updated.")

		case "toggle-push":
			settings, err := svc.GetSettings(ctx)
			if err != nil {
				return err
			}
			settings.AllowPush = !settings.AllowPush
			settings, err = svc.UpdateSettings(ctx, settings)
			if err != nil {
				return err
			}
			fmt.Printf("Order notifications: %t\n", settings.AllowPush)

		case "reset-settings":
			settings, err := svc.ResetSettings(ctx)
			if err != nil {
				return err
			}
			fmt.Println("Settings restored to defaults.")
			printSettings(settings)

		case "export":
			if len(args) < 1 {
				fmt.Println("Usage: /export inventory <location> [csv|xlsx]")
				fmt.Println("       /export orders [csv|xlsx]")
				return nil
			}
			return handleExport(ctx, svc, args, exportDir)

		case "reset-data":
			fmt.Print("Discard ALL data and restore seeded defaults? (y/n): ")
			choice, _ := reader.ReadString('\n')
			if strings.TrimSpace(strings.ToLower(choice)) != "y" {
				fmt.Println("Cancelled.")
				return nil
			}
			if err := svc.ResetData(ctx); err != nil {
				return err
			}
			fmt.Println("All data reset to seeded defaults.")

		case "whoami":
			identity, err := svc.CurrentIdentity(ctx)
			if err != nil {
				return err
			}
			if identity == nil {
				fmt.Println("Not logged in.")
				return nil
			}
			fmt.Printf("%s <%s> (%s)\n", identity.Name, identity.Email, identity.Role)

		case "logout":
			if err := svc.Logout(ctx); err != nil {
				return err
			}
			fmt.Println("Logged out.")
			next := loginLoop(ctx, svc, reader)
			if next == nil {
				return errExit
			}
			fmt.Printf("Signed in: %s <%s> (%s)\n", next.Name, next.Email, next.Role)

		case "help", "h":
			printHelp()

		case "exit", "quit", "e", "q":
			return errExit

		default:
			fmt.Printf("Unknown command: /%s  (type /help for all commands)\n", cmd)
		}
		return nil
	}

	for {
		fmt.Print("\n> ")
		input, err := reader.ReadString('\n')
		if err != nil && input == "" {
			fmt.Println()
			break
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if !strings.HasPrefix(input, "/") {
			fmt.Println("Commands start with /. Type /help.")
			continue
		}

		if err := dispatchSlash(input); err != nil {
			if err == errExit {
				fmt.Println("Goodbye!")
				break
			}
			fmt.Printf("Error: %v\n", err)
		}
	}
}

// loginLoop prompts for credentials until login succeeds or input ends.
// Returns nil when the user gives up.
func loginLoop(ctx context.Context, svc app.ApplicationService, reader *bufio.Reader) *core.Identity {
	fmt.Println("Parts Desk — sign in (blank email to quit)")
	for {
		fmt.Print("Email: ")
		email, err := reader.ReadString('\n')
		if err != nil && email == "" {
			return nil
		}
		email = strings.TrimSpace(email)
		if email == "" {
			return nil
		}

		fmt.Print("Password: ")
		secret, _ := reader.ReadString('\n')
		secret = strings.TrimSpace(secret)

		identity, err := svc.Login(ctx, email, secret)
		if err != nil {
			switch {
			case errors.Is(err, core.ErrUserDeactivated):
				fmt.Println("This account is deactivated. Contact an administrator.")
			case errors.Is(err, core.ErrNotFound), errors.Is(err, core.ErrWrongSecret):
				fmt.Println("Invalid email or password.")
			default:
				fmt.Printf("Login failed: %v\n", err)
			}
			continue
		}
		return identity
	}
}

func handleExport(ctx context.Context, svc app.ApplicationService, args []string, exportDir string) error {
	format := "csv"
	var result *app.ExportResult
	var err error

	switch strings.ToLower(args[0]) {
	case "inventory", "inv":
		if len(args) < 2 {
			fmt.Println("Usage: /export inventory <location> [csv|xlsx]")
			return nil
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
		fmt.Printf("Unknown export target: %s (use inventory or orders)\n", args[0])
		return nil
	}
	if err != nil {
		return err
	}

	path := filepath.Join(exportDir, result.Filename)
	if err := os.WriteFile(path, result.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	if result.FellBack {
		fmt.Println("xlsx export failed; wrote csv instead.")
	}
	fmt.Printf("Exported %s\n", path)
	return nil
}

// shortID trims a UUID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
