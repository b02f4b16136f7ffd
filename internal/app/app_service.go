package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"parts-desk/internal/core"
	"parts-desk/internal/export"

	"github.com/sirupsen/logrus"
)

// DataResetter discards all persisted state.
type DataResetter interface {
	Reset(ctx context.Context) error
}

type appService struct {
	auth      core.AuthService
	inventory core.InventoryService
	orders    core.OrderService
	locations core.LocationService
	users     core.UserService
	settings  core.SettingsService
	resetter  DataResetter
	log       *logrus.Logger
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(
	auth core.AuthService,
	inventory core.InventoryService,
	orders core.OrderService,
	locations core.LocationService,
	users core.UserService,
	settings core.SettingsService,
	resetter DataResetter,
	log *logrus.Logger,
) ApplicationService {
	return &appService{
		auth:      auth,
		inventory: inventory,
		orders:    orders,
		locations: locations,
		users:     users,
		settings:  settings,
		resetter:  resetter,
		log:       log,
	}
}

// requireIdentity resolves the acting identity from the session.
func (s *appService) requireIdentity(ctx context.Context) (core.Identity, error) {
	identity, err := s.auth.CurrentIdentity(ctx)
	if err != nil {
		return core.Identity{}, fmt.Errorf("failed to read session: %w", err)
	}
	if identity == nil {
		return core.Identity{}, ErrNotLoggedIn
	}
	return *identity, nil
}

// ── Session ──────────────────────────────────────────────────────────────────

func (s *appService) Login(ctx context.Context, email, secret string) (*core.Identity, error) {
	identity, err := s.auth.Login(ctx, email, secret)
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"user": identity.Email, "role": identity.Role}).Info("logged in")
	return identity, nil
}

func (s *appService) Logout(ctx context.Context) error {
	return s.auth.Logout(ctx)
}

func (s *appService) CurrentIdentity(ctx context.Context) (*core.Identity, error) {
	return s.auth.CurrentIdentity(ctx)
}

// ── Locations ────────────────────────────────────────────────────────────────

func (s *appService) ListLocations(ctx context.Context) ([]string, error) {
	if _, err := s.requireIdentity(ctx); err != nil {
		return nil, err
	}
	return s.locations.List(ctx)
}

func (s *appService) AddLocation(ctx context.Context, name string) (string, error) {
	actor, err := s.requireIdentity(ctx)
	if err != nil {
		return "", err
	}
	return s.locations.Add(ctx, actor, name)
}

func (s *appService) RemoveLocation(ctx context.Context, name string, confirmed bool) error {
	actor, err := s.requireIdentity(ctx)
	if err != nil {
		return err
	}
	return s.locations.Remove(ctx, actor, name, confirmed)
}

// ── Inventory ────────────────────────────────────────────────────────────────

func (s *appService) ListParts(ctx context.Context, location, query string) (*PartListResult, error) {
	if _, err := s.requireIdentity(ctx); err != nil {
		return nil, err
	}
	parts, err := s.inventory.SearchParts(ctx, location, query)
	if err != nil {
		return nil, err
	}
	return &PartListResult{Location: location, Parts: parts}, nil
}

func (s *appService) AddPart(ctx context.Context, location string) (*core.Part, error) {
	actor, err := s.requireIdentity(ctx)
	if err != nil {
		return nil, err
	}
	return s.inventory.AddPart(ctx, actor, location)
}

func (s *appService) UpdatePart(ctx context.Context, location, partID string, patch core.PartPatch) (*core.Part, error) {
	actor, err := s.requireIdentity(ctx)
	if err != nil {
		return nil, err
	}
	return s.inventory.UpdatePart(ctx, actor, location, partID, patch)
}

func (s *appService) SetOnOrder(ctx context.Context, location, partID string, onOrder bool) (*core.Part, error) {
	actor, err := s.requireIdentity(ctx)
	if err != nil {
		return nil, err
	}
	return s.inventory.SetOnOrder(ctx, actor, location, partID, onOrder)
}

func (s *appService) DeletePart(ctx context.Context, location, partID string) error {
	actor, err := s.requireIdentity(ctx)
	if err != nil {
		return err
	}
	return s.inventory.DeletePart(ctx, actor, location, partID)
}

// ── Orders ───────────────────────────────────────────────────────────────────

func (s *appService) ListOrders(ctx context.Context, query string) (*OrderListResult, error) {
	if _, err := s.requireIdentity(ctx); err != nil {
		return nil, err
	}
	orders, err := s.orders.SearchOrders(ctx, query)
	if err != nil {
		return nil, err
	}
	return &OrderListResult{Orders: orders}, nil
}

func (s *appService) PlaceOrder(ctx context.Context, partID string, quantity int) (*core.Order, error) {
	actor, err := s.requireIdentity(ctx)
	if err != nil {
		return nil, err
	}
	return s.orders.PlaceOrder(ctx, actor, partID, quantity)
}

func (s *appService) EditOrderQuantity(ctx context.Context, orderID string, quantity int) (*core.Order, error) {
	actor, err := s.requireIdentity(ctx)
	if err != nil {
		return nil, err
	}
	return s.orders.EditPendingQuantity(ctx, actor, orderID, quantity)
}

func (s *appService) ApproveOrder(ctx context.Context, orderID string) (*core.Order, error) {
	actor, err := s.requireIdentity(ctx)
	if err != nil {
		return nil, err
	}
	order, err := s.orders.Approve(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"order": order.ID, "part": order.PartNumber, "qty": order.Quantity}).Info("order approved")
	return order, nil
}

func (s *appService) DeclineOrder(ctx context.Context, orderID string) (*core.Order, error) {
	actor, err := s.requireIdentity(ctx)
	if err != nil {
		return nil, err
	}
	return s.orders.Decline(ctx, actor, orderID)
}

// ── User administration ──────────────────────────────────────────────────────

func userView(u core.User) UserView {
	return UserView{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Active: u.Active}
}

func (s *appService) ListUsers(ctx context.Context) ([]UserView, error) {
	actor, err := s.requireIdentity(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx, actor)
	if err != nil {
		return nil, err
	}
	views := make([]UserView, len(users))
	for i, u := range users {
		views[i] = userView(u)
	}
	return views, nil
}

func (s *appService) CreateUser(ctx context.Context, req CreateUserRequest) (*CreateUserResult, error) {
	actor, err := s.requireIdentity(ctx)
	if err != nil {
		return nil, err
	}
	user, secret, err := s.users.Create(ctx, actor, req.Name, req.Email, req.Role)
	if err != nil {
		return nil, err
	}
	return &CreateUserResult{User: userView(*user), TempSecret: secret}, nil
}

func (s *appService) ResetPassword(ctx context.Context, userID string) (string, error) {
	actor, err := s.requireIdentity(ctx)
	if err != nil {
		return "", err
	}
	return s.users.ResetPassword(ctx, actor, userID)
}

func (s *appService) ToggleUserActive(ctx context.Context, userID string) (*UserView, error) {
	actor, err := s.requireIdentity(ctx)
	if err != nil {
		return nil, err
	}
	user, err := s.users.ToggleActive(ctx, actor, userID)
	if err != nil {
		return nil, err
	}
	view := userView(*user)
	return &view, nil
}

// ── Settings ─────────────────────────────────────────────────────────────────

func (s *appService) GetSettings(ctx context.Context) (core.Settings, error) {
	return s.settings.Get(ctx)
}

func (s *appService) UpdateSettings(ctx context.Context, settings core.Settings) (core.Settings, error) {
	actor, err := s.requireIdentity(ctx)
	if err != nil {
		return core.Settings{}, err
	}
	return s.settings.Update(ctx, actor, settings)
}

func (s *appService) ResetSettings(ctx context.Context) (core.Settings, error) {
	actor, err := s.requireIdentity(ctx)
	if err != nil {
		return core.Settings{}, err
	}
	return s.settings.Reset(ctx, actor)
}

// ── Export ───────────────────────────────────────────────────────────────────

func (s *appService) ExportInventory(ctx context.Context, location, format string) (*ExportResult, error) {
	if _, err := s.requireIdentity(ctx); err != nil {
		return nil, err
	}
	parts, err := s.inventory.ListParts(ctx, location)
	if err != nil {
		return nil, err
	}
	base := strings.ToLower(strings.TrimSpace(location)) + "-inventory"
	return s.render(partsTable(parts), base, format)
}

func (s *appService) ExportOrders(ctx context.Context, format string) (*ExportResult, error) {
	if _, err := s.requireIdentity(ctx); err != nil {
		return nil, err
	}
	orders, err := s.orders.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	return s.render(ordersTable(orders), "orders", format)
}

// render produces the requested format, falling back from xlsx to csv on
// failure. csv itself cannot fail.
func (s *appService) render(t export.Table, base, format string) (*ExportResult, error) {
	if format == "xlsx" {
		data, err := t.XLSX()
		if err == nil {
			return &ExportResult{Filename: base + ".xlsx", Data: data, Format: "xlsx"}, nil
		}
		s.log.WithField("export", base).WithError(err).Warn("xlsx export failed, falling back to csv")
		return &ExportResult{Filename: base + ".csv", Data: []byte(t.CSV()), Format: "csv", FellBack: true}, nil
	}
	return &ExportResult{Filename: base + ".csv", Data: []byte(t.CSV()), Format: "csv"}, nil
}

func partsTable(parts []core.Part) export.Table {
	t := export.Table{
		Header: []string{"id", "partNr", "description", "notes", "qty", "low", "onOrder", "imageUrl"},
	}
	for _, p := range parts {
		t.Rows = append(t.Rows, []string{
			p.ID, p.PartNumber, p.Description, p.Notes,
			strconv.Itoa(p.Quantity), strconv.Itoa(p.LowStockThreshold),
			strconv.FormatBool(p.OnOrder), p.ImageRef,
		})
	}
	return t
}

func ordersTable(orders []core.Order) export.Table {
	t := export.Table{
		Header: []string{"id", "partId", "partNr", "description", "qty", "requestedBy", "status", "createdAt", "approvedAt", "decidedAt"},
	}
	for _, o := range orders {
		t.Rows = append(t.Rows, []string{
			o.ID, o.PartID, o.PartNumber, o.Description,
			strconv.Itoa(o.Quantity), o.RequestedBy, string(o.Status),
			o.CreatedAt.Format(time.RFC3339),
			formatTime(o.ApprovedAt), formatTime(o.DecidedAt),
		})
	}
	return t
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

// ── Maintenance ──────────────────────────────────────────────────────────────

func (s *appService) ResetData(ctx context.Context) error {
	actor, err := s.requireIdentity(ctx)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return fmt.Errorf("reset data: %w", core.ErrPermissionDenied)
	}
	if err := s.resetter.Reset(ctx); err != nil {
		return err
	}
	s.log.WithField("by", actor.Email).Warn("all persisted state reset to defaults")
	return nil
}
