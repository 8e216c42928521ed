package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/doru1011/swa06/models"
)

// Notifier receives domain notifications fired by the services after a
// successful write.
type Notifier interface {
	KundeCreated(ctx context.Context, kunde *models.Kunde)
	NeueBestellung(ctx context.Context, bestellung *models.Bestellung)
}

// LoggingNotifier implements Notifier using structured logging.
// In production this could be extended to publish to a message broker.
type LoggingNotifier struct{}

// NewLoggingNotifier creates a new logging-based notifier
func NewLoggingNotifier() *LoggingNotifier {
	return &LoggingNotifier{}
}

// KundeCreated logs a "customer created" notification
func (n *LoggingNotifier) KundeCreated(ctx context.Context, kunde *models.Kunde) {
	slog.InfoContext(ctx, "kunde created",
		"eventId", uuid.NewString(),
		"kundeId", kunde.ID,
		"email", kunde.Email)
}

// NeueBestellung logs a "new order" notification
func (n *LoggingNotifier) NeueBestellung(ctx context.Context, bestellung *models.Bestellung) {
	slog.InfoContext(ctx, "neue bestellung",
		"eventId", uuid.NewString(),
		"bestellungId", bestellung.ID,
		"kundeId", bestellung.KundeID,
		"positionen", len(bestellung.Bestellpositionen))
}
