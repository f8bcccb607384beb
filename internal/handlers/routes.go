package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ucampus/campus-events-api/internal/auth"
)

// Handlers bundles everything RegisterRoutes wires up.
type Handlers struct {
	Auth         *auth.AuthHandler
	Users        *UserHandler
	Events       *EventHandler
	Registration *RegistrationHandler
	Payments     *PaymentHandler
	Documents    *DocumentHandler
	Validation   *ValidationHandler
	Materials    *MaterialHandler
	Grades       *GradeHandler
	APIKeys      *APIKeyHandler
}

func RegisterRoutes(r *chi.Mux, h Handlers) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(h.Auth.AuthMiddleware)

	config := huma.DefaultConfig("Campus Events API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"cookieAuth": {
			Type: "apiKey",
			In:   "cookie",
			Name: "auth_token",
		},
	}
	api := humachi.New(r, config)

	secured := func(o *huma.Operation) {
		o.Security = []map[string][]string{{"cookieAuth": {}}}
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// SSO endpoints stay raw chi: they redirect and set cookies.
	r.Get("/auth/sso/login", h.Auth.HandleSSOLogin)
	r.Get("/auth/sso/callback", h.Auth.HandleSSOCallback)
	huma.Post(api, "/auth/login", h.Auth.HandleLogin)
	huma.Post(api, "/auth/logout", h.Auth.HandleLogout)

	// Public browsing.
	huma.Get(api, "/events", h.Events.HandleListEvents)
	huma.Get(api, "/events/{id}", h.Events.HandleGetEvent)

	// Everything below authorizes per operation via the session cookie
	// or the API-key middleware.
	huma.Get(api, "/me", h.Users.HandleMe, secured)
	huma.Put(api, "/users/{id}/role", h.Users.HandleSetRole, secured)

	huma.Post(api, "/events", h.Events.HandleCreateEvent, secured)
	huma.Post(api, "/events/{id}/details", h.Events.HandleAddDetail, secured)
	huma.Post(api, "/events/{id}/responsibles", h.Events.HandleAssignResponsible, secured)

	huma.Post(api, "/registrations", h.Registration.HandleEnroll, secured)
	huma.Get(api, "/registrations/mine", h.Registration.HandleMyRegistrations, secured)
	huma.Get(api, "/registrations/{id}/status", h.Registration.HandleStatus, secured)
	huma.Get(api, "/registrations/{id}/certificate", h.Registration.HandleCertificate, secured)

	huma.Post(api, "/registrations/{id}/payment/proof", h.Payments.HandleSubmitProof, secured)
	huma.Post(api, "/registrations/{id}/payment/decision", h.Payments.HandleDecide, secured)
	huma.Get(api, "/registrations/{id}/payment/order", h.Payments.HandleOrderOfPayment, secured)

	huma.Post(api, "/registrations/{id}/documents/{docType}", h.Documents.HandleSubmit, secured)
	huma.Post(api, "/registrations/{id}/documents/{docType}/reopen", h.Documents.HandleReopen, secured)
	huma.Post(api, "/registrations/{id}/documents/{docType}/decision", h.Documents.HandleDecide, secured)

	huma.Get(api, "/validation/pending", h.Validation.HandlePending, secured)

	huma.Post(api, "/details/{detailId}/materials", h.Materials.HandleUpload, secured)
	huma.Get(api, "/details/{detailId}/materials", h.Materials.HandleList, secured)

	huma.Put(api, "/registrations/{id}/grade", h.Grades.HandleRecordGrade, secured)
	huma.Get(api, "/registrations/{id}/grade", h.Grades.HandleMyGrade, secured)
	huma.Put(api, "/registrations/{id}/attendance", h.Grades.HandleRecordAttendance, secured)

	huma.Post(api, "/apikeys", h.APIKeys.HandleCreate, secured)
	huma.Get(api, "/apikeys", h.APIKeys.HandleList, secured)
	huma.Delete(api, "/apikeys/{id}", h.APIKeys.HandleDelete, secured)
}
