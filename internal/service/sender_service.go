package service

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"
	"time"

	"boveda/internal/db"
	"boveda/internal/entities"
)

// SenderService builds and delivers the Spanish booking notifications: a
// confirmation email to the invitee and an SMS heads-up to the operator.
type SenderService struct {
	loc *time.Location
}

func NewSenderService(loc *time.Location) *SenderService {
	return &SenderService{loc: loc}
}

// BookingConfirmed fires both notifications. Delivery failures are logged,
// never surfaced to the caller: the booking already exists.
func (s *SenderService) BookingConfirmed(b *db.Booking) {
	s.SendBookingEmail(b)
	s.SendBookingSMS(b)
}

func (s *SenderService) SendBookingEmail(b *db.Booking) {
	emailData := entities.BookingEmailData{
		UserName:           b.UserName,
		BookingCode:        b.Code,
		StartTimeFormatted: b.StartTime.In(s.loc).Format("02 Jan 2006 15:04 MST"),
		EndTimeFormatted:   b.EndTime.In(s.loc).Format("02 Jan 2006 15:04 MST"),
		Notes:              b.Notes,
		CurrentYear:        time.Now().In(s.loc).Year(),
	}

	greetingName := emailData.UserName
	if greetingName == "" {
		greetingName = "Hola"
	}

	emailSubject := fmt.Sprintf("Tu reunión con Bóveda está confirmada - Código: %s", emailData.BookingCode)
	plainTextBody := fmt.Sprintf(
		"Hola %s,\n\nTu reunión con el equipo de Bóveda está confirmada.\n\n"+
			"Detalles de la reserva:\n"+
			"Código de Reserva: %s\n"+
			"Inicio: %s\n"+
			"Fin: %s\n\n"+
			"La reunión dura aproximadamente 20 minutos.\n\n"+
			"Gracias por elegir Bóveda.\n\n"+
			"Bóveda. Todos los derechos reservados.",
		emailData.UserName, emailData.BookingCode,
		emailData.StartTimeFormatted, emailData.EndTimeFormatted,
	)

	tmplPath := filepath.Join("internal", "templates", "booking_email.html")
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		log.Printf("ALERTA: Error al parsear la plantilla de correo HTML (%s): %v", tmplPath, err)
		return
	}

	var htmlBodyBuffer bytes.Buffer
	if err := tmpl.Execute(&htmlBodyBuffer, emailData); err != nil {
		log.Printf("ALERTA: Error al ejecutar la plantilla de correo HTML para reserva %s: %v", emailData.BookingCode, err)
		return
	}
	htmlBody := htmlBodyBuffer.String()

	go func(toEmail, userName, subject, plainBody, htmlBodyContent string) {
		errEmail := SendEmailWithSendGrid(toEmail, userName, subject, plainBody, htmlBodyContent)
		if errEmail != nil {
			log.Printf("ALERTA (asíncrono): Falló envío de correo para reserva %s: %v", emailData.BookingCode, errEmail)
		}
	}(b.UserEmail, greetingName, emailSubject, plainTextBody, htmlBody)
}

// SendBookingSMS notifies the operator's phone of the new booking, so the
// meeting shows up even before anyone checks the admin panel.
func (s *SenderService) SendBookingSMS(b *db.Booking) {
	operatorPhone := os.Getenv("BOOKING_ALERT_PHONE")
	if operatorPhone == "" {
		log.Println("ADVERTENCIA: BOOKING_ALERT_PHONE no está configurada. El SMS no se enviará.")
		return
	}

	smsMessage := fmt.Sprintf("Bóveda: nueva reserva %s.\nInicio: %s.\nEmail: %s.",
		b.Code,
		b.StartTime.In(s.loc).Format("02/01 15:04"),
		b.UserEmail,
	)

	go func() {
		if errSMS := SendSMS(operatorPhone, smsMessage); errSMS != nil {
			log.Printf("ALERTA: La reserva %s se creó, pero falló el envío del SMS de aviso a %s: %v", b.Code, operatorPhone, errSMS)
		}
	}()
}
