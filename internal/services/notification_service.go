package services

import (
	"database/sql"
	"fmt"

	intconfig "github.com/dabouqi/tourism-transport-system-sub000/internal/config"
	"github.com/dabouqi/tourism-transport-system-sub000/internal/domain"
	"github.com/dabouqi/tourism-transport-system-sub000/internal/domain/models"
	"github.com/dabouqi/tourism-transport-system-sub000/internal/repositories"
	"github.com/dabouqi/tourism-transport-system-sub000/internal/utils"

	"github.com/shopspring/decimal"
)

// NotificationService composes WhatsApp messages and stores them in the
// outbox. Delivery is a separate worker's job; this service never talks
// to the WhatsApp API.
type NotificationService struct {
	NotificationRepo repositories.NotificationRepository
	DB               *sql.DB
	CompanyName      string
	RequestID        string
}

func (s NotificationService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s NotificationService) company() string {
	if s.CompanyName != "" {
		return s.CompanyName
	}
	return "Tourism Transport"
}

// ComposeBookingConfirmation renders the confirmation text for a new
// booking. Kept pure so templates are testable without storage.
func (s NotificationService) ComposeBookingConfirmation(b models.Booking, c models.Client) string {
	return fmt.Sprintf(
		"Hello %s, your booking #%d is confirmed.\nRoute: %s - %s\nPickup: %s\nFare: %s\nThank you, %s.",
		c.Name,
		b.ID,
		b.RouteFrom,
		b.RouteTo,
		utils.FormatDateTime(b.PickupAt),
		utils.FormatAmount(b.Fare),
		s.company(),
	)
}

// ComposePaymentReceipt renders the receipt text after an allocation.
func (s NotificationService) ComposePaymentReceipt(clientName string, amount decimal.Decimal, reference string) string {
	return fmt.Sprintf(
		"Hello %s, we received your payment of %s (ref %s). Thank you, %s.",
		clientName,
		utils.FormatAmount(amount),
		reference,
		s.company(),
	)
}

// QueueBookingConfirmation puts a confirmation message in the outbox,
// deduplicated per booking.
func (s NotificationService) QueueBookingConfirmation(b models.Booking, c models.Client) error {
	phone := utils.NormalizePhone(c.Phone)
	if phone == "" {
		return domain.ValidationError{Field: "phone", Msg: "client has no phone number"}
	}
	id, created, err := s.notifications().Insert(models.Notification{
		Channel:        "whatsapp",
		RecipientPhone: phone,
		Body:           s.ComposeBookingConfirmation(b, c),
		DedupKey:       fmt.Sprintf("booking-confirmation-%d", b.ID),
	})
	if err != nil {
		return domain.InternalError{Msg: "failed to queue notification", Err: err}
	}
	if created {
		utils.LogEvent(s.RequestID, "notifications", "queue_booking_confirmation",
			fmt.Sprintf("notification_id=%d booking_id=%d", id, b.ID))
	}
	return nil
}

// QueuePaymentReceipt puts a receipt message in the outbox, looked up
// by client so callers only pass the id they already hold.
func (s NotificationService) QueuePaymentReceipt(clientID int64, amount decimal.Decimal, reference string) error {
	client, err := repositories.ClientRepository{DB: s.db()}.GetByID(clientID)
	if err != nil {
		return domain.InternalError{Msg: "client lookup failed", Err: err}
	}
	phone := utils.NormalizePhone(client.Phone)
	if phone == "" {
		return domain.ValidationError{Field: "phone", Msg: "client has no phone number"}
	}
	id, created, err := s.notifications().Insert(models.Notification{
		Channel:        "whatsapp",
		RecipientPhone: phone,
		Body:           s.ComposePaymentReceipt(client.Name, amount, reference),
		DedupKey:       "payment-receipt-" + reference,
	})
	if err != nil {
		return domain.InternalError{Msg: "failed to queue notification", Err: err}
	}
	if created {
		utils.LogEvent(s.RequestID, "notifications", "queue_payment_receipt",
			fmt.Sprintf("notification_id=%d client_id=%d", id, clientID))
	}
	return nil
}

// List returns outbox rows for the admin screen.
func (s NotificationService) List(status string, page, limit int) ([]models.Notification, error) {
	if st := status; st != "" && !models.NotificationStatus(st).IsValid() {
		return nil, domain.ValidationError{Field: "status", Msg: fmt.Sprintf("unknown status %q", st)}
	}
	out, err := s.notifications().List(status, page, limit)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to list notifications", Err: err}
	}
	return out, nil
}

// SetStatus is the hook the delivery worker calls after an attempt.
func (s NotificationService) SetStatus(id int64, status models.NotificationStatus) error {
	if !status.IsValid() {
		return domain.ValidationError{Field: "status", Msg: fmt.Sprintf("unknown status %q", status)}
	}
	ok, err := s.notifications().SetStatus(id, status)
	if err != nil {
		return domain.InternalError{Msg: "failed to update notification", Err: err}
	}
	if !ok {
		return domain.NotFoundError{Resource: "notification"}
	}
	return nil
}

func (s NotificationService) notifications() repositories.NotificationRepository {
	if s.NotificationRepo.DB != nil {
		return s.NotificationRepo
	}
	return repositories.NotificationRepository{DB: s.db()}
}
