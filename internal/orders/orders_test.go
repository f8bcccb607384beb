package orders

import (
	"os"
	"testing"

	"github.com/ucampus/campus-events-api/internal/models"
)

func testRegistration(costCents int64, completed bool) models.Registration {
	return models.Registration{
		User:        models.User{Username: "amina", Email: "amina@campus.edu"},
		EventDetail: models.EventDetail{Title: "Go Workshop", CostCents: costCents},
		Completed:   completed,
	}
}

func TestOrderOfPaymentFreeOffering(t *testing.T) {
	g := NewGenerator(t.TempDir(), "Campus Events")

	res, err := g.OrderOfPayment(testRegistration(0, false), models.Payment{})
	if err != nil {
		t.Fatalf("OrderOfPayment: %v", err)
	}
	if res.Applicable {
		t.Fatal("expected free offering to be not applicable")
	}
	if res.Reason == "" {
		t.Fatal("expected a reason for the not-applicable result")
	}
}

func TestOrderOfPaymentWritesPDF(t *testing.T) {
	g := NewGenerator(t.TempDir(), "Campus Events")

	payment := models.Payment{AmountCents: 5000, Method: models.MethodTransfer}
	res, err := g.OrderOfPayment(testRegistration(5000, false), payment)
	if err != nil {
		t.Fatalf("OrderOfPayment: %v", err)
	}
	if !res.Applicable {
		t.Fatalf("expected applicable result, got reason %q", res.Reason)
	}
	if res.Folio == "" {
		t.Fatal("expected a folio")
	}
	info, err := os.Stat(res.Path)
	if err != nil {
		t.Fatalf("stat %s: %v", res.Path, err)
	}
	if info.Size() == 0 {
		t.Fatal("expected a non-empty PDF")
	}
}

func TestCertificateRequiresCompletion(t *testing.T) {
	g := NewGenerator(t.TempDir(), "Campus Events")

	res, err := g.Certificate(testRegistration(5000, false))
	if err != nil {
		t.Fatalf("Certificate: %v", err)
	}
	if res.Applicable {
		t.Fatal("expected incomplete registration to be not applicable")
	}

	res, err = g.Certificate(testRegistration(5000, true))
	if err != nil {
		t.Fatalf("Certificate: %v", err)
	}
	if !res.Applicable {
		t.Fatalf("expected certificate for completed registration, got reason %q", res.Reason)
	}
	if _, err := os.Stat(res.Path); err != nil {
		t.Fatalf("stat %s: %v", res.Path, err)
	}
}
