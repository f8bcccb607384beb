package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ucampus/campus-events-api/internal/models"
)

func TestCompletionFlipsOnceOnLastApproval(t *testing.T) {
	f := newFixture(t, 5000, "id_scan", "transcript")
	reg := f.enroll(t, models.MethodTransfer)

	_, err := f.svc.SubmitProof(t.Context(), f.student.ID, reg.ID, "files/proof.png")
	require.NoError(t, err)
	_, err = f.svc.DecidePayment(t.Context(), f.responsible.ID, reg.ID, DecisionApprove, "")
	require.NoError(t, err)

	complete, err := f.svc.IsRegistrationComplete(t.Context(), reg.ID)
	require.NoError(t, err)
	assert.False(t, complete, "documents still pending")
	assert.Zero(t, f.notif.completed)

	for _, dt := range []string{"id_scan", "transcript"} {
		_, err = f.svc.SubmitDocument(t.Context(), f.student.ID, reg.ID, dt, "files/"+dt+".png")
		require.NoError(t, err)
	}
	_, err = f.svc.DecideDocument(t.Context(), f.responsible.ID, reg.ID, "id_scan", DecisionApprove, "")
	require.NoError(t, err)

	complete, err = f.svc.IsRegistrationComplete(t.Context(), reg.ID)
	require.NoError(t, err)
	assert.False(t, complete, "one document still pending")

	// Approving the last outstanding record flips completion exactly once.
	_, err = f.svc.DecideDocument(t.Context(), f.responsible.ID, reg.ID, "transcript", DecisionApprove, "")
	require.NoError(t, err)

	complete, err = f.svc.IsRegistrationComplete(t.Context(), reg.ID)
	require.NoError(t, err)
	assert.True(t, complete)
	assert.Equal(t, 1, f.notif.completed)

	var stored models.Registration
	require.NoError(t, f.db.First(&stored, reg.ID).Error)
	assert.NotNil(t, stored.CompletedAt)
}

func TestCompletionRequiresCoverage(t *testing.T) {
	f := newFixture(t, 0, "id_scan")
	reg := f.enroll(t, "")

	// Simulate a requirement added after enrollment: the approved
	// id_scan alone must not complete the registration while the new
	// type has no record at all.
	require.NoError(t, f.db.Create(&models.EventRequirement{
		EventDetailID: f.detail.ID,
		DocType:       "insurance",
	}).Error)

	_, err := f.svc.SubmitDocument(t.Context(), f.student.ID, reg.ID, "id_scan", "files/id.png")
	require.NoError(t, err)
	_, err = f.svc.DecideDocument(t.Context(), f.responsible.ID, reg.ID, "id_scan", DecisionApprove, "")
	require.NoError(t, err)

	complete, err := f.svc.IsRegistrationComplete(t.Context(), reg.ID)
	require.NoError(t, err)
	assert.False(t, complete, "an uncovered required doc type must block completion")
}

func TestRejectionDoesNotAffectCompletion(t *testing.T) {
	f := newFixture(t, 0, "id_scan")
	reg := f.enroll(t, "")

	_, err := f.svc.SubmitDocument(t.Context(), f.student.ID, reg.ID, "id_scan", "files/id.png")
	require.NoError(t, err)
	_, err = f.svc.DecideDocument(t.Context(), f.responsible.ID, reg.ID, "id_scan", DecisionReject, "ilegible")
	require.NoError(t, err)

	complete, err := f.svc.IsRegistrationComplete(t.Context(), reg.ID)
	require.NoError(t, err)
	assert.False(t, complete)
	assert.Zero(t, f.notif.completed)
}

func TestIsRegistrationCompleteUnknownID(t *testing.T) {
	f := newFixture(t, 0)

	_, err := f.svc.IsRegistrationComplete(t.Context(), 9999)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}
