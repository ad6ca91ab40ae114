package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pesapoint-backend/internal/domain"
	"pesapoint-backend/internal/logger"
	"pesapoint-backend/internal/repository"

	"github.com/shopspring/decimal"
)

const deliveryTimeout = 10 * time.Second

type dispatcher struct {
	notes         repository.NotificationRepository
	merchants     repository.MerchantRepository
	push          PushSender
	sms           SMSSender
	email         EmailService
	countryPrefix string
	maxAttempts   int32
}

func NewDispatcher(
	notes repository.NotificationRepository,
	merchants repository.MerchantRepository,
	push PushSender,
	sms SMSSender,
	email EmailService,
	countryPrefix string,
	maxAttempts int32,
) Dispatcher {
	return &dispatcher{
		notes:         notes,
		merchants:     merchants,
		push:          push,
		sms:           sms,
		email:         email,
		countryPrefix: countryPrefix,
		maxAttempts:   maxAttempts,
	}
}

func (d *dispatcher) CustomerCredited(customer *domain.Customer, merchantName string, amount, newBalance decimal.Decimal, code string) {
	body := fmt.Sprintf("Vous avez reçu %s FCFA de %s. Nouveau solde: %s FCFA. Réf: %s",
		amount.StringFixed(2), merchantName, newBalance.StringFixed(2), code)
	d.enqueue(d.customerNote(customer, "Transaction réussie", body))
}

func (d *dispatcher) CustomerDebited(customer *domain.Customer, merchantName string, amount, newBalance decimal.Decimal, code string) {
	body := fmt.Sprintf("Vous avez payé %s FCFA à %s. Nouveau solde: %s FCFA. Réf: %s",
		amount.StringFixed(2), merchantName, newBalance.StringFixed(2), code)
	d.enqueue(d.customerNote(customer, "Transaction réussie", body))
}

func (d *dispatcher) LowBalance(reg domain.LowBalanceRegister) {
	title := fmt.Sprintf("Solde bas: caisse %s", reg.RegisterName)
	body := fmt.Sprintf(
		"La caisse %s de %s est passée sous son seuil minimum.\nSolde actuel: %s FCFA\nSeuil configuré: %s FCFA\nVeuillez recharger la caisse.",
		reg.RegisterName, reg.MerchantName, reg.Balance.StringFixed(2), reg.MinBalance.StringFixed(2))
	d.notifyAdmins(reg.MerchantID, title, body)
}

func (d *dispatcher) SessionReport(worker *domain.Worker, merchantName string, summary *domain.SessionSummary) {
	title := fmt.Sprintf("Rapport de session: %s", worker.Name)
	body := fmt.Sprintf(
		"Session de %s (%s) clôturée le %s.\n\nSolde d'ouverture: %s FCFA\nTotal envoyé: %s FCFA\nTotal collecté (net): %s FCFA\nCommissions: %s FCFA\nMontants corrigés: %s FCFA\nOpérations: %d",
		worker.Name, merchantName,
		time.Now().UTC().Format("02/01/2006 15:04"),
		summary.Session.InitialBalance.StringFixed(2),
		summary.TotalSend.StringFixed(2),
		summary.TotalCollect.StringFixed(2),
		summary.TotalCommission.StringFixed(2),
		summary.TotalCorrected.StringFixed(2),
		len(summary.Transactions))
	d.notifyAdmins(worker.MerchantID, title, body)
}

func (d *dispatcher) Deliver(ctx context.Context, note *domain.Notification) error {
	switch note.Channel {
	case domain.ChannelPush:
		return d.push.Send(ctx, note.Recipient, note.Title, note.Body)
	case domain.ChannelSMS:
		return d.sms.Send(ctx, note.Recipient, note.Body)
	case domain.ChannelEmail:
		return d.email.Send(ctx, note.Recipient, note.Title, note.Body)
	default:
		return fmt.Errorf("notification channel %q: %w", note.Channel, domain.ErrValidation)
	}
}

// customerNote picks the channel for a customer: push when the mobile app
// registered a device token, SMS to the point-of-sale phone otherwise.
func (d *dispatcher) customerNote(customer *domain.Customer, title, body string) *domain.Notification {
	note := &domain.Notification{
		CustomerID: &customer.ID,
		Status:     domain.NotificationPending,
		Title:      title,
		Body:       body,
	}
	if customer.IsMobile && customer.DeviceToken != "" {
		note.Channel = domain.ChannelPush
		note.Recipient = customer.DeviceToken
	} else {
		note.Channel = domain.ChannelSMS
		note.Recipient = d.smsRecipient(customer.Phone)
	}
	return note
}

func (d *dispatcher) smsRecipient(phone string) string {
	if strings.HasPrefix(phone, "+") {
		return phone
	}
	return d.countryPrefix + phone
}

// notifyAdmins writes one email outbox row per merchant admin.
func (d *dispatcher) notifyAdmins(merchantID int32, title, body string) {
	ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
	defer cancel()
	admins, err := d.merchants.ListAdmins(ctx, merchantID)
	if err != nil {
		logger.Error("listing merchant admins", "merchant_id", merchantID, "error", err)
		return
	}
	for _, admin := range admins {
		d.enqueue(&domain.Notification{
			MerchantID: &merchantID,
			Channel:    domain.ChannelEmail,
			Status:     domain.NotificationPending,
			Recipient:  admin.Email,
			Title:      title,
			Body:       body,
		})
	}
}

// enqueue persists the outbox row, then tries delivery once on a detached
// context. The row survives a failed attempt for the cron runner to retry.
func (d *dispatcher) enqueue(note *domain.Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
	defer cancel()
	if err := d.notes.Create(ctx, note); err != nil {
		logger.Error("persisting notification", "channel", note.Channel, "error", err)
		return
	}
	go d.attempt(note)
}

func (d *dispatcher) attempt(note *domain.Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
	defer cancel()
	if err := d.Deliver(ctx, note); err != nil {
		logger.Warn("notification delivery failed",
			"notification_id", note.ID, "channel", note.Channel, "error", err)
		if err := d.notes.MarkFailed(ctx, note.ID, d.maxAttempts); err != nil {
			logger.Error("marking notification failed", "notification_id", note.ID, "error", err)
		}
		return
	}
	if err := d.notes.MarkDelivered(ctx, note.ID); err != nil {
		logger.Error("marking notification delivered", "notification_id", note.ID, "error", err)
	}
}
