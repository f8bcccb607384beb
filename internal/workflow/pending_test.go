package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ucampus/campus-events-api/internal/models"
)

func TestPendingForValidatorScoping(t *testing.T) {
	f := newFixture(t, 5000, "id_scan")
	reg := f.enroll(t, models.MethodTransfer)

	_, err := f.svc.SubmitProof(t.Context(), f.student.ID, reg.ID, "files/proof.png")
	require.NoError(t, err)
	_, err = f.svc.SubmitDocument(t.Context(), f.student.ID, reg.ID, "id_scan", "files/id.png")
	require.NoError(t, err)

	// The event's responsible sees both pending records.
	set, err := f.svc.PendingForValidator(t.Context(), f.responsible.ID)
	require.NoError(t, err)
	assert.Len(t, set.Payments, 1)
	assert.Len(t, set.Documents, 1)

	// A staff member responsible for nothing sees an empty queue.
	outsider := models.User{Username: "luis", Email: "luis@example.edu", Role: models.RoleStaff}
	require.NoError(t, f.db.Create(&outsider).Error)
	set, err = f.svc.PendingForValidator(t.Context(), outsider.ID)
	require.NoError(t, err)
	assert.Empty(t, set.Payments)
	assert.Empty(t, set.Documents)

	// Admins see the whole queue.
	set, err = f.svc.PendingForValidator(t.Context(), f.admin.ID)
	require.NoError(t, err)
	assert.Len(t, set.Payments, 1)
	assert.Len(t, set.Documents, 1)

	// Students are refused outright.
	_, err = f.svc.PendingForValidator(t.Context(), f.student.ID)
	var forbidden *ForbiddenError
	require.ErrorAs(t, err, &forbidden)
}

func TestPendingDrainsAfterDecisions(t *testing.T) {
	f := newFixture(t, 5000, "id_scan")
	reg := f.enroll(t, models.MethodTransfer)

	_, err := f.svc.SubmitProof(t.Context(), f.student.ID, reg.ID, "files/proof.png")
	require.NoError(t, err)
	_, err = f.svc.SubmitDocument(t.Context(), f.student.ID, reg.ID, "id_scan", "files/id.png")
	require.NoError(t, err)

	_, err = f.svc.DecidePayment(t.Context(), f.responsible.ID, reg.ID, DecisionApprove, "")
	require.NoError(t, err)
	_, err = f.svc.DecideDocument(t.Context(), f.responsible.ID, reg.ID, "id_scan", DecisionReject, "mal escaneado")
	require.NoError(t, err)

	set, err := f.svc.PendingForValidator(t.Context(), f.responsible.ID)
	require.NoError(t, err)
	assert.Empty(t, set.Payments)
	assert.Empty(t, set.Documents)
}
