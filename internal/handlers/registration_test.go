package handlers

import (
	"context"
	"testing"

	"github.com/ucampus/campus-events-api/internal/auth"
	"github.com/ucampus/campus-events-api/internal/authz"
	"github.com/ucampus/campus-events-api/internal/config"
	"github.com/ucampus/campus-events-api/internal/database"
	"github.com/ucampus/campus-events-api/internal/models"
	"github.com/ucampus/campus-events-api/internal/orders"
	"github.com/ucampus/campus-events-api/internal/workflow"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func testWorkflow(db *gorm.DB) *workflow.Service {
	return workflow.NewService(db, authz.NewService(db), nil, nil)
}

func testAuth(db *gorm.DB) *auth.AuthHandler {
	return auth.NewAuthHandler(&config.Config{JWTSecret: "test-secret"}, db)
}

func asUser(u models.User) context.Context {
	return context.WithValue(context.Background(), auth.UserIDKey, u.ID)
}

func TestHandleEnrollPaidOffering(t *testing.T) {
	db := setupDB(t)

	student := models.User{Username: "ana", Email: "ana@example.edu", Role: models.RoleStudent}
	db.Create(&student)

	event := models.Event{Name: "Summer School"}
	db.Create(&event)
	detail := models.EventDetail{
		EventID:   event.ID,
		Title:     "Systems Course",
		CostCents: 5000,
		Requirements: []models.EventRequirement{
			{DocType: "id_scan"},
		},
	}
	db.Create(&detail)

	handler := NewRegistrationHandler(db, testWorkflow(db), orders.NewGenerator(t.TempDir(), "Test"), testAuth(db))

	req := &EnrollRequest{}
	req.Body.EventDetailID = detail.ID
	req.Body.PaymentMethod = models.MethodTransfer

	resp, err := handler.HandleEnroll(asUser(student), req)
	if err != nil {
		t.Fatalf("HandleEnroll returned error: %v", err)
	}

	if resp.Body.Payment == nil || resp.Body.Payment.Status != models.PaymentPendingProof {
		t.Errorf("expected a PENDING_PROOF payment, got %+v", resp.Body.Payment)
	}
	if len(resp.Body.Documents) != 1 || resp.Body.Documents[0].Status != models.DocumentPendingUpload {
		t.Errorf("expected 1 PENDING_UPLOAD document, got %+v", resp.Body.Documents)
	}

	// Enrolling twice in the same offering is a conflict.
	if _, err := handler.HandleEnroll(asUser(student), req); err == nil {
		t.Fatal("expected error on duplicate enrollment, got nil")
	}
}

func TestHandleEnrollFreeOffering(t *testing.T) {
	db := setupDB(t)

	student := models.User{Username: "ana", Email: "ana@example.edu"}
	db.Create(&student)
	event := models.Event{Name: "Open Day"}
	db.Create(&event)
	detail := models.EventDetail{EventID: event.ID, Title: "Campus Tour", CostCents: 0}
	db.Create(&detail)

	handler := NewRegistrationHandler(db, testWorkflow(db), orders.NewGenerator(t.TempDir(), "Test"), testAuth(db))

	req := &EnrollRequest{}
	req.Body.EventDetailID = detail.ID

	resp, err := handler.HandleEnroll(asUser(student), req)
	if err != nil {
		t.Fatalf("HandleEnroll returned error: %v", err)
	}
	if resp.Body.Payment == nil || resp.Body.Payment.Status != models.PaymentNoneRequired {
		t.Errorf("expected NONE_REQUIRED payment, got %+v", resp.Body.Payment)
	}

	// No payment, no documents: complete immediately.
	statusReq := &RegistrationStatusRequest{ID: resp.Body.ID}
	statusResp, err := handler.HandleStatus(asUser(student), statusReq)
	if err != nil {
		t.Fatalf("HandleStatus returned error: %v", err)
	}
	if !statusResp.Body.Complete {
		t.Error("expected free offering with no requirements to be complete")
	}
}

func TestHandleEnrollCapacityFull(t *testing.T) {
	db := setupDB(t)

	first := models.User{Username: "ana", Email: "ana@example.edu"}
	second := models.User{Username: "eli", Email: "eli@example.edu"}
	db.Create(&first)
	db.Create(&second)
	event := models.Event{Name: "Workshop"}
	db.Create(&event)
	detail := models.EventDetail{EventID: event.ID, Title: "Soldering 101", Capacity: 1}
	db.Create(&detail)

	handler := NewRegistrationHandler(db, testWorkflow(db), orders.NewGenerator(t.TempDir(), "Test"), testAuth(db))

	req := &EnrollRequest{}
	req.Body.EventDetailID = detail.ID
	if _, err := handler.HandleEnroll(asUser(first), req); err != nil {
		t.Fatalf("first enrollment failed: %v", err)
	}
	if _, err := handler.HandleEnroll(asUser(second), req); err == nil {
		t.Fatal("expected capacity error, got nil")
	}
}
