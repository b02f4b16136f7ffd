package repl

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"parts-desk/internal/app"
	"parts-desk/internal/core"
)

// handleAddPart runs an interactive part creation session: it creates a
// blank row, then walks the same field prompts as editing.
func handleAddPart(ctx context.Context, reader *bufio.Reader, svc app.ApplicationService, location string) {
	part, err := svc.AddPart(ctx, location)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("New part created in %s (ID: %s). Fill in its fields.\n", location, shortID(part.ID))
	editPartFields(ctx, reader, svc, location, part)
}

// handleEditPart walks the field prompts for an existing part.
func handleEditPart(ctx context.Context, reader *bufio.Reader, svc app.ApplicationService, location, partID string) {
	result, err := svc.ListParts(ctx, location, "")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	var part *core.Part
	for i := range result.Parts {
		if result.Parts[i].ID == partID || shortID(result.Parts[i].ID) == partID {
			part = &result.Parts[i]
			break
		}
	}
	if part == nil {
		fmt.Printf("No part %s in %s.\n", partID, location)
		return
	}
	editPartFields(ctx, reader, svc, location, part)
}

func editPartFields(ctx context.Context, reader *bufio.Reader, svc app.ApplicationService, location string, part *core.Part) {
	fmt.Println("Leave a field blank to keep its current value.")

	prompt := func(label, current string) (string, bool) {
		fmt.Printf("  %s [%s]: ", label, current)
		raw, _ := reader.ReadString('\n')
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return "", false
		}
		return raw, true
	}

	var patch core.PartPatch
	if v, ok := prompt("Part number", part.PartNumber); ok {
		patch.PartNumber = &v
	}
	if v, ok := prompt("Description", part.Description); ok {
		patch.Description = &v
	}
	if v, ok := prompt("Notes", part.Notes); ok {
		patch.Notes = &v
	}
	if v, ok := prompt("Quantity", strconv.Itoa(part.Quantity)); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			fmt.Println("  Not a number, keeping current quantity.")
		} else {
			patch.Quantity = &n
		}
	}
	if v, ok := prompt("Low-stock threshold", strconv.Itoa(part.LowStockThreshold)); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			fmt.Println("  Not a number, keeping current threshold.")
		} else {
			patch.LowStockThreshold = &n
		}
	}
	if v, ok := prompt("Image URL", part.ImageRef); ok {
		patch.ImageRef = &v
	}

	updated, err := svc.UpdatePart(ctx, location, part.ID, patch)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Saved %s — %s (qty %d).\n", updated.PartNumber, updated.Description, updated.Quantity)
}

// handleAddUser runs an interactive account creation session.
func handleAddUser(ctx context.Context, reader *bufio.Reader, svc app.ApplicationService) {
	fmt.Print("Name: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)

	fmt.Print("Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)

	fmt.Print("Role (admin/staff) [staff]: ")
	roleInput, _ := reader.ReadString('\n')
	role := core.RoleStaff
	if strings.TrimSpace(strings.ToLower(roleInput)) == "admin" {
		role = core.RoleAdmin
	}

	result, err := svc.CreateUser(ctx, app.CreateUserRequest{Name: name, Email: email, Role: role})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("\nAccount created: %s <%s> (%s)\n", result.User.Name, result.User.Email, result.User.Role)
	fmt.Printf("Temporary password: %s\n", result.TempSecret)
	fmt.Println("It is shown once and cannot be retrieved again.")
}
