package workflow

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ucampus/campus-events-api/internal/authz"
	"github.com/ucampus/campus-events-api/internal/database"
	"github.com/ucampus/campus-events-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// fakeNotifier records calls so tests can assert the completion effect
// fires exactly once.
type fakeNotifier struct {
	mu        sync.Mutex
	completed int
	decided   int
	submitted int
}

func (f *fakeNotifier) PaymentSubmitted(models.User, models.EventDetail, models.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitted++
	return nil
}

func (f *fakeNotifier) PaymentDecided(models.User, models.EventDetail, models.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.decided++
	return nil
}

func (f *fakeNotifier) DocumentSubmitted(models.User, models.EventDetail, models.RequirementDocument) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitted++
	return nil
}

func (f *fakeNotifier) DocumentDecided(models.User, models.EventDetail, models.RequirementDocument) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.decided++
	return nil
}

func (f *fakeNotifier) RegistrationCompleted(models.User, models.EventDetail) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.completed++
	return nil
}

type fixture struct {
	db          *gorm.DB
	svc         *Service
	notif       *fakeNotifier
	student     models.User
	responsible models.User
	admin       models.User
	event       models.Event
	detail      models.EventDetail
}

// newFixture builds an in-memory database with one event offering and
// the three actor roles.
func newFixture(t *testing.T, costCents int64, docTypes ...string) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	f := &fixture{db: db, notif: &fakeNotifier{}}
	f.svc = NewService(db, authz.NewService(db), f.notif, nil)

	f.student = models.User{Username: "ana", Email: "ana@example.edu", Role: models.RoleStudent}
	f.responsible = models.User{Username: "rosa", Email: "rosa@example.edu", Role: models.RoleStaff}
	f.admin = models.User{Username: "root", Email: "root@example.edu", Role: models.RoleAdmin}
	require.NoError(t, db.Create(&f.student).Error)
	require.NoError(t, db.Create(&f.responsible).Error)
	require.NoError(t, db.Create(&f.admin).Error)

	f.event = models.Event{Name: "Summer School"}
	require.NoError(t, db.Create(&f.event).Error)
	require.NoError(t, db.Model(&f.event).Association("Responsibles").Append(&f.responsible))

	f.detail = models.EventDetail{EventID: f.event.ID, Title: "Go Systems Course", CostCents: costCents}
	for _, dt := range docTypes {
		f.detail.Requirements = append(f.detail.Requirements, models.EventRequirement{DocType: dt})
	}
	require.NoError(t, db.Create(&f.detail).Error)

	return f
}

// enroll creates a registration plus its payment and document records,
// the way the enrollment handler does.
func (f *fixture) enroll(t *testing.T, method string) models.Registration {
	t.Helper()

	reg := models.Registration{UserID: f.student.ID, EventDetailID: f.detail.ID}
	require.NoError(t, f.db.Create(&reg).Error)

	_, err := f.svc.CreatePayment(t.Context(), reg.ID, f.detail.CostCents, method)
	require.NoError(t, err)
	_, err = f.svc.CreateDocuments(t.Context(), reg.ID)
	require.NoError(t, err)
	return reg
}

func (f *fixture) paymentStatus(t *testing.T, regID uint) string {
	t.Helper()
	var p models.Payment
	require.NoError(t, f.db.Where("registration_id = ?", regID).First(&p).Error)
	return p.Status
}
