// Package notify delivers best-effort local notifications. Delivery is
// advisory: nothing here may ever propagate a failure into the domain
// operation that triggered it.
package notify

import (
	"context"

	"parts-desk/internal/core"

	"github.com/sirupsen/logrus"
)

// LogNotifier emits order notifications through the structured log,
// gated on the persisted push setting and on the process-level grant
// (the platform analog of a previously granted notification permission).
type LogNotifier struct {
	log      *logrus.Logger
	settings core.SettingsRepository
	granted  bool
}

func NewLogNotifier(log *logrus.Logger, settings core.SettingsRepository, granted bool) *LogNotifier {
	return &LogNotifier{log: log, settings: settings, granted: granted}
}

// OrderPlaced announces a newly placed order. Silently skipped when
// notifications are disabled or the settings record cannot be read.
func (n *LogNotifier) OrderPlaced(ctx context.Context, order core.Order) {
	if !n.granted {
		return
	}
	settings, err := n.settings.Get(ctx)
	if err != nil || !settings.AllowPush {
		return
	}
	n.log.WithFields(logrus.Fields{
		"order":       order.ID,
		"part":        order.PartNumber,
		"qty":         order.Quantity,
		"requestedBy": order.RequestedBy,
	}).Info("order placed")
}

// Discard is a Notifier that does nothing; used by tests and one-shot
// commands that have no interactive observer.
type Discard struct{}

func (Discard) OrderPlaced(context.Context, core.Order) {}
