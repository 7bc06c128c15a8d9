package service

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/gomail.v2"

	"renthub-backend/internal/config"
)

type emailService struct {
	host       string
	port       int
	username   string
	password   string
	from       string
	adminEmail string
}

func NewEmailService(cfg config.SMTPConfig) EmailService {
	return &emailService{
		host:       cfg.Host,
		port:       cfg.Port,
		username:   cfg.User,
		password:   cfg.Password,
		from:       cfg.From,
		adminEmail: cfg.AdminEmail,
	}
}

func (s *emailService) SendRefundNotification(to string, bookingID int64, amount decimal.Decimal) error {
	subject := fmt.Sprintf("Rimborso per la prenotazione #%d", bookingID)
	body := fmt.Sprintf(
		"Ciao,\n\nle date della tua prenotazione #%d sono state modificate e ti abbiamo rimborsato %s €.\n\nIl rimborso sul portafoglio è immediato; quello sulla carta può richiedere alcuni giorni lavorativi.\n\nIl team RentHub",
		bookingID, amount.StringFixed(2))
	return s.send(to, subject, body)
}

func (s *emailService) SendChargeNotification(to string, bookingID int64, amount decimal.Decimal) error {
	subject := fmt.Sprintf("Modifica della prenotazione #%d", bookingID)
	body := fmt.Sprintf(
		"Ciao,\n\nle date della tua prenotazione #%d sono state modificate. Ti abbiamo addebitato %s € per la differenza di prezzo.\n\nIl team RentHub",
		bookingID, amount.StringFixed(2))
	return s.send(to, subject, body)
}

func (s *emailService) SendAdminAlert(subject, body string) error {
	return s.send(s.adminEmail, "[RentHub] "+subject, body)
}

func (s *emailService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email via gomail: %w", err)
	}

	return nil
}
