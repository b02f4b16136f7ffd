package app

import "parts-desk/internal/core"

// PartListResult is returned by ListParts.
type PartListResult struct {
	Location string
	Parts    []core.Part
}

// OrderListResult is returned by ListOrders.
type OrderListResult struct {
	Orders []core.Order
}

// UserView is the account shape handed to adapters; the password digest
// never leaves the core layer.
type UserView struct {
	ID     string
	Name   string
	Email  string
	Role   core.Role
	Active bool
}

// CreateUserRequest carries the admin "add user" form.
type CreateUserRequest struct {
	Name  string
	Email string
	Role  core.Role
}

// CreateUserResult carries the new account and its one-time temporary
// secret. The secret is not retrievable again; display it immediately.
type CreateUserResult struct {
	User       UserView
	TempSecret string
}

// ExportResult is a rendered tabular document ready to write to disk.
type ExportResult struct {
	Filename string
	Data     []byte
	Format   string
	// FellBack is set when an xlsx export failed and Data holds the csv
	// fallback instead.
	FellBack bool
}
