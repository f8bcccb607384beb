package notifier

import (
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/ucampus/campus-events-api/internal/models"
)

const (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

// EmailNotifier mails the student on reviewer decisions and completion.
// Submission events are staff-facing only and are skipped here.
type EmailNotifier struct {
	key  string
	from *sgmail.Email
}

func NewEmailNotifier(key, appName, fromEmail string) *EmailNotifier {
	return &EmailNotifier{
		key:  key,
		from: sgmail.NewEmail(appName, fromEmail),
	}
}

func (n *EmailNotifier) send(to models.User, subject, body string) error {
	m := sgmail.NewV3Mail()
	m.SetFrom(n.from)

	p := sgmail.NewPersonalization()
	p.Subject = subject
	p.AddTos(sgmail.NewEmail(to.Username, to.Email))
	m.AddPersonalizations(p)
	m.AddContent(sgmail.NewContent("text/plain", body))

	req := sendgrid.GetRequest(n.key, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m)

	res, err := sendgrid.API(req)
	if err != nil {
		return err
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid returned status %d", res.StatusCode)
	}
	return nil
}

func (n *EmailNotifier) PaymentSubmitted(models.User, models.EventDetail, models.Payment) error {
	return nil
}

func (n *EmailNotifier) PaymentDecided(student models.User, detail models.EventDetail, payment models.Payment) error {
	if payment.Status == models.PaymentRejected {
		return n.send(student, "Your proof of payment was rejected",
			fmt.Sprintf("Your proof of payment for %q was rejected: %s\nPlease upload a new proof.", detail.Title, payment.RejectComment))
	}
	return n.send(student, "Your payment was approved",
		fmt.Sprintf("Your payment for %q has been approved.", detail.Title))
}

func (n *EmailNotifier) DocumentSubmitted(models.User, models.EventDetail, models.RequirementDocument) error {
	return nil
}

func (n *EmailNotifier) DocumentDecided(student models.User, detail models.EventDetail, doc models.RequirementDocument) error {
	if doc.Status == models.DocumentRejected {
		return n.send(student, fmt.Sprintf("Your %s document was rejected", doc.DocType),
			fmt.Sprintf("Your %s document for %q was rejected: %s\nPlease upload it again.", doc.DocType, detail.Title, doc.RejectComment))
	}
	return n.send(student, fmt.Sprintf("Your %s document was approved", doc.DocType),
		fmt.Sprintf("Your %s document for %q has been approved.", doc.DocType, detail.Title))
}

func (n *EmailNotifier) RegistrationCompleted(student models.User, detail models.EventDetail) error {
	return n.send(student, "Registration complete",
		fmt.Sprintf("All requirements for %q are approved. Your registration is complete.", detail.Title))
}
