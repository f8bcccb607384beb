package handlers

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/ucampus/campus-events-api/internal/workflow"
)

// mapWorkflowError translates the workflow's typed errors into HTTP
// status errors. Anything untyped is a 500.
func mapWorkflowError(err error) error {
	var (
		notFound     *workflow.NotFoundError
		forbidden    *workflow.ForbiddenError
		invalid      *workflow.InvalidTransitionError
		validation   *workflow.ValidationError
		concurrent   *workflow.ConcurrentModificationError
		finalized    *workflow.AlreadyFinalizedError
		humaStatusEr huma.StatusError
	)
	switch {
	case errors.As(err, &notFound):
		return huma.Error404NotFound(err.Error())
	case errors.As(err, &forbidden):
		return huma.Error403Forbidden(err.Error())
	case errors.As(err, &invalid):
		return huma.Error409Conflict(err.Error())
	case errors.As(err, &validation):
		return huma.Error400BadRequest(err.Error())
	case errors.As(err, &concurrent):
		return huma.Error409Conflict(err.Error())
	case errors.As(err, &finalized):
		return huma.Error409Conflict(err.Error())
	case errors.As(err, &humaStatusEr):
		return err
	}
	return huma.Error500InternalServerError("Internal error: " + err.Error())
}
