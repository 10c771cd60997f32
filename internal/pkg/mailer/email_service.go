package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendTrialWelcome(toEmail, cabinetName string, trialDays int) error
	SendUpgradeConfirmation(toEmail, planName string, leftoverDays int) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)
	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

func (s *emailService) SendTrialWelcome(toEmail, cabinetName string, trialDays int) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Bienvenue sur MediCab")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Bienvenue, %s !</h2>
			<p>Votre période d'essai de %d jours vient de commencer.</p>
			<p>Vous pouvez dès maintenant créer vos patients, vos rendez-vous et vos traitements.</p>
		</div>
	`, cabinetName, trialDays)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send trial welcome to %s: %w", toEmail, err)
	}
	return nil
}

func (s *emailService) SendUpgradeConfirmation(toEmail, planName string, leftoverDays int) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Votre abonnement MediCab est confirmé")

	periodNote := "Votre abonnement payant démarre immédiatement."
	if leftoverDays > 0 {
		periodNote = fmt.Sprintf("Il vous reste %d jour(s) d'essai : la facturation commencera à la fin de cette période.", leftoverDays)
	}

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Merci !</h2>
			<p>Votre passage au plan <strong>%s</strong> est confirmé.</p>
			<p>%s</p>
		</div>
	`, planName, periodNote)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send upgrade confirmation to %s: %w", toEmail, err)
	}
	return nil
}
