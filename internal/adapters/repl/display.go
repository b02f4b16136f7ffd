package repl

import (
	"fmt"
	"strings"
	"time"

	"parts-desk/internal/app"
	"parts-desk/internal/core"
)

func printParts(result *app.PartListResult) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 88))
	fmt.Printf("  INVENTORY — %s\n", result.Location)
	fmt.Println(strings.Repeat("=", 88))
	if len(result.Parts) == 0 {
		fmt.Println("  No parts found.")
		fmt.Println(strings.Repeat("=", 88))
		return
	}
	fmt.Printf("  %-10s %-16s %-28s %6s %6s %-9s %s\n", "ID", "PART NO", "DESCRIPTION", "QTY", "LOW", "ON ORDER", "FLAGS")
	fmt.Println(strings.Repeat("-", 88))
	for _, p := range result.Parts {
		flags := ""
		if p.LowStock() {
			flags = "LOW"
		}
		fmt.Printf("  %-10s %-16s %-28s %6d %6d %-9t %s\n",
			shortID(p.ID), p.PartNumber, truncate(p.Description, 27), p.Quantity, p.LowStockThreshold, p.OnOrder, flags)
	}
	fmt.Println(strings.Repeat("=", 88))
}

func printOrders(result *app.OrderListResult) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 90))
	fmt.Println("  ORDERS")
	fmt.Println(strings.Repeat("=", 90))
	if len(result.Orders) == 0 {
		fmt.Println("  No orders found.")
		fmt.Println(strings.Repeat("=", 90))
		return
	}
	fmt.Printf("  %-10s %-16s %6s %-22s %-10s %s\n", "ID", "PART NO", "QTY", "REQUESTED BY", "STATUS", "CREATED")
	fmt.Println(strings.Repeat("-", 90))
	for _, o := range result.Orders {
		fmt.Printf("  %-10s %-16s %6d %-22s %-10s %s\n",
			shortID(o.ID), o.PartNumber, o.Quantity, truncate(o.RequestedBy, 21), o.Status,
			o.CreatedAt.Format(time.RFC3339))
	}
	fmt.Println(strings.Repeat("=", 90))
}

func printLocations(locations []string) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 40))
	fmt.Println("  LOCATIONS")
	fmt.Println(strings.Repeat("=", 40))
	for _, l := range locations {
		marker := ""
		if l == core.DistributionLocation {
			marker = "  (order source)"
		}
		fmt.Printf("  %s%s\n", l, marker)
	}
	fmt.Println(strings.Repeat("=", 40))
}

func printUsers(users []app.UserView) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println("  USERS")
	fmt.Println(strings.Repeat("=", 80))
	if len(users) == 0 {
		fmt.Println("  No users found.")
		fmt.Println(strings.Repeat("=", 80))
		return
	}
	fmt.Printf("  %-10s %-22s %-28s %-7s %s\n", "ID", "NAME", "EMAIL", "ROLE", "ACTIVE")
	fmt.Println(strings.Repeat("-", 80))
	for _, u := range users {
		fmt.Printf("  %-10s %-22s %-28s %-7s %t\n", shortID(u.ID), truncate(u.Name, 21), u.Email, u.Role, u.Active)
	}
	fmt.Println(strings.Repeat("=", 80))
}

func printSettings(settings core.Settings) {
	fmt.Println()
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("  Logo URL:            %s\n", settings.LogoURL)
	fmt.Printf("  Order notifications: %t\n", settings.AllowPush)
	fmt.Println(strings.Repeat("-", 60))
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		return string(runes[:n-3]) + "..."
	}
	return s
}

func printHelp() {
	fmt.Println()
	fmt.Println("PARTS DESK — COMMANDS")
	fmt.Println(strings.Repeat("=", 66))
	fmt.Println()
	fmt.Println("  INVENTORY")
	fmt.Println("  /inventory [location] [query]       List parts (default DISTRIBUTION)")
	fmt.Println("  /add-part <location>                Add a part (interactive)")
	fmt.Println("  /edit-part <location> <part-id>     Edit a part (interactive)")
	fmt.Println("  /on-order <location> <id> <bool>    Flag a part as on order")
	fmt.Println("  /delete-part <location> <part-id>   Delete a part")
	fmt.Println()
	fmt.Println("  ORDERS")
	fmt.Println("  /orders [query]                     List orders")
	fmt.Println("  /order <part-id> <qty>              Request parts from DISTRIBUTION")
	fmt.Println("  /edit-order <order-id> <qty>        Change a pending order's quantity")
	fmt.Println("  /approve <order-id>                 Approve (deducts stock)")
	fmt.Println("  /decline <order-id>                 Decline (stock unchanged)")
	fmt.Println()
	fmt.Println("  LOCATIONS")
	fmt.Println("  /locations                          List locations")
	fmt.Println("  /add-location <name>                Add a branch")
	fmt.Println("  /remove-location <name>             Remove a branch and its inventory")
	fmt.Println()
	fmt.Println("  USERS")
	fmt.Println("  /users                              List accounts")
	fmt.Println("  /add-user                           Create an account (interactive)")
	fmt.Println("  /reset-password <user-id>           Issue a one-time temporary password")
	fmt.Println("  /toggle-active <user-id>            Activate / deactivate an account")
	fmt.Println()
	fmt.Println("  SETTINGS & DATA")
	fmt.Println("  /settings                           Show settings")
	fmt.Println("  /set-logo <url>                     Change the logo URL")
	fmt.Println("  /toggle-push                        Toggle order notifications")
	fmt.Println("  /reset-settings                     Restore default settings")
	fmt.Println("  /export inventory <loc> [csv|xlsx]  Export an inventory")
	fmt.Println("  /export orders [csv|xlsx]           Export the order ledger")
	fmt.Println("  /reset-data                         Discard everything, reseed defaults")
	fmt.Println()
	fmt.Println("  SESSION")
	fmt.Println("  /whoami                             Show the signed-in account")
	fmt.Println("  /logout                             Sign out (prompts for login)")
	fmt.Println("  /help                               Show this help")
	fmt.Println("  /exit                               Exit")
	fmt.Println(strings.Repeat("=", 66))
}
