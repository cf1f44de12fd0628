package service

import (
	"context"
	"fmt"

	"github.com/Ubaid-2/Camera-rental/internal/domain"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(to, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendRentalRequestNotification(ctx context.Context, ownerEmail, renterName, cameraName, startDate, endDate string) error {
	subject := fmt.Sprintf("New Rental Request: %s", cameraName)
	body := fmt.Sprintf("%s has requested to rent your %s from %s to %s.\n\nLog in to review the request.", renterName, cameraName, startDate, endDate)
	return s.send(ownerEmail, subject, body)
}

func (s *emailService) SendRentalApprovalNotification(ctx context.Context, renterEmail, cameraName, ownerName string) error {
	subject := fmt.Sprintf("Rental Approved: %s", cameraName)
	body := fmt.Sprintf("Your rental request for %s was approved by %s.\n\nSubmit payment to confirm the booking.", cameraName, ownerName)
	return s.send(renterEmail, subject, body)
}

func (s *emailService) SendRentalRejectionNotification(ctx context.Context, renterEmail, cameraName, ownerName string) error {
	subject := fmt.Sprintf("Rental Rejected: %s", cameraName)
	body := fmt.Sprintf("Your rental request for %s was rejected by %s.", cameraName, ownerName)
	return s.send(renterEmail, subject, body)
}

func (s *emailService) SendRentalCancellationNotification(ctx context.Context, ownerEmail, renterName, cameraName string) error {
	subject := fmt.Sprintf("Rental Cancelled: %s", cameraName)
	body := fmt.Sprintf("%s cancelled their rental request for %s.", renterName, cameraName)
	return s.send(ownerEmail, subject, body)
}

func (s *emailService) SendPaymentSubmittedNotification(ctx context.Context, ownerEmail, renterName, cameraName string, method domain.PaymentMethod) error {
	subject := fmt.Sprintf("Payment Submitted: %s", cameraName)
	body := fmt.Sprintf("%s submitted a %s payment for %s.\n\nConfirm receipt to finalize the rental.", renterName, method, cameraName)
	return s.send(ownerEmail, subject, body)
}

func (s *emailService) SendPaymentConfirmedNotification(ctx context.Context, renterEmail, cameraName, pickupTime string) error {
	subject := fmt.Sprintf("Payment Confirmed: %s", cameraName)
	body := fmt.Sprintf("Your payment for %s was confirmed. The camera is ready for pickup at %s.", cameraName, pickupTime)
	return s.send(renterEmail, subject, body)
}

func (s *emailService) SendPaymentReminder(ctx context.Context, renterEmail, cameraName string) error {
	subject := fmt.Sprintf("Payment Reminder: %s", cameraName)
	body := fmt.Sprintf("Your rental request for %s was approved but payment has not been submitted yet. Submit payment to keep your booking.", cameraName)
	return s.send(renterEmail, subject, body)
}

func (s *emailService) SendPickupReminder(ctx context.Context, email, cameraName, startDate string) error {
	subject := fmt.Sprintf("Pickup Reminder: %s", cameraName)
	body := fmt.Sprintf("Reminder: the rental of %s starts on %s.", cameraName, startDate)
	return s.send(email, subject, body)
}

func (s *emailService) SendAccountStatusNotification(ctx context.Context, email, name, status, reason string) error {
	subject := "Account Status Update"
	body := fmt.Sprintf("Hello %s,\n\nYour account status has been updated to: %s.", name, status)
	if reason != "" {
		body += fmt.Sprintf("\n\nReason: %s", reason)
	}
	return s.send(email, subject, body)
}
