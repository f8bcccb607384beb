package notifier

import (
	"github.com/ucampus/campus-events-api/internal/models"
)

// Notifier fans workflow events out to whoever needs to hear about
// them. Implementations must be safe to call from request handlers;
// failures are logged by the caller, never surfaced to the student.
type Notifier interface {
	PaymentSubmitted(student models.User, detail models.EventDetail, payment models.Payment) error
	PaymentDecided(student models.User, detail models.EventDetail, payment models.Payment) error
	DocumentSubmitted(student models.User, detail models.EventDetail, doc models.RequirementDocument) error
	DocumentDecided(student models.User, detail models.EventDetail, doc models.RequirementDocument) error
	RegistrationCompleted(student models.User, detail models.EventDetail) error
}

// Multi sends every notification to each wired channel and reports the
// first failure after trying all of them.
type Multi []Notifier

func (m Multi) PaymentSubmitted(student models.User, detail models.EventDetail, payment models.Payment) error {
	return m.each(func(n Notifier) error { return n.PaymentSubmitted(student, detail, payment) })
}

func (m Multi) PaymentDecided(student models.User, detail models.EventDetail, payment models.Payment) error {
	return m.each(func(n Notifier) error { return n.PaymentDecided(student, detail, payment) })
}

func (m Multi) DocumentSubmitted(student models.User, detail models.EventDetail, doc models.RequirementDocument) error {
	return m.each(func(n Notifier) error { return n.DocumentSubmitted(student, detail, doc) })
}

func (m Multi) DocumentDecided(student models.User, detail models.EventDetail, doc models.RequirementDocument) error {
	return m.each(func(n Notifier) error { return n.DocumentDecided(student, detail, doc) })
}

func (m Multi) RegistrationCompleted(student models.User, detail models.EventDetail) error {
	return m.each(func(n Notifier) error { return n.RegistrationCompleted(student, detail) })
}

func (m Multi) each(fn func(Notifier) error) error {
	var first error
	for _, n := range m {
		if err := fn(n); err != nil && first == nil {
			first = err
		}
	}
	return first
}
