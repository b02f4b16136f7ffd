package core

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// DistributionLocation is the central stock all orders are fulfilled from.
// It is always present in the location registry and cannot be removed.
const DistributionLocation = "DISTRIBUTION"

// User is a stored account. The password digest is a 64-hex SHA-256 of the
// secret; it never leaves the core layer.
type User struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           Role   `json:"role"`
	PasswordDigest string `json:"passHash"`
	Active         bool   `json:"active"`
}

// Identity is the reduced view of a logged-in user handed to adapters.
// It deliberately excludes the password digest.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

// Identity returns the reduced view of u.
func (u User) Identity() Identity {
	return Identity{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// Part is one inventory record. The same part number may exist with
// different IDs and quantities in different locations; there is no
// cross-location linkage.
type Part struct {
	ID                string `json:"id"`
	PartNumber        string `json:"partNr"`
	Description       string `json:"description"`
	Notes             string `json:"notes"`
	Quantity          int    `json:"qty"`
	LowStockThreshold int    `json:"low"`
	OnOrder           bool   `json:"onOrder"`
	ImageRef          string `json:"imageUrl"`
}

// LowStock reports whether the part is at or below its configured
// positive threshold.
func (p Part) LowStock() bool {
	return p.LowStockThreshold > 0 && p.Quantity <= p.LowStockThreshold
}

// PartPatch carries the fields of an update; nil means "leave unchanged".
// The on-order flag is not patchable here; it has its own admin-gated
// operation on InventoryService.
type PartPatch struct {
	PartNumber        *string
	Description       *string
	Notes             *string
	Quantity          *int
	LowStockThreshold *int
	ImageRef          *string
}

type OrderStatus string

const (
	OrderPending  OrderStatus = "Pending"
	OrderApproved OrderStatus = "Approved"
	OrderDeclined OrderStatus = "Declined"
)

// Order references a part in the distribution inventory. Part number and
// description are snapshotted at placement time, not live-linked.
type Order struct {
	ID          string      `json:"id"`
	PartID      string      `json:"partId"`
	PartNumber  string      `json:"partNr"`
	Description string      `json:"description"`
	Quantity    int         `json:"qty"`
	RequestedBy string      `json:"requestedBy"`
	Status      OrderStatus `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
	ApprovedAt  *time.Time  `json:"approvedAt,omitempty"`
	DecidedAt   *time.Time  `json:"decidedAt,omitempty"`
}

// Settings is the singleton application settings record.
type Settings struct {
	LogoURL   string `json:"logoUrl"`
	AllowPush bool   `json:"allowPush"`
}

// DefaultSettings returns the fixed settings defaults.
func DefaultSettings() Settings {
	return Settings{
		LogoURL:   "https://raw.githubusercontent.com/simple-icons/simple-icons/develop/icons/volkswagen.svg",
		AllowPush: true,
	}
}
