package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"familyinvitations/internal/delivery/http/controllers"
	"familyinvitations/internal/delivery/http/middleware"
	"familyinvitations/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	rsvpController *controllers.RSVPController,
	familyController *controllers.FamilyController,
	invitationController *controllers.InvitationController,
	authController *controllers.AuthController,
	verifier domain.TokenVerifier,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier)

	// Public invitation routes
	mux.HandleFunc("GET /invitations/{familyID}", rsvpController.Resolve)
	mux.HandleFunc("POST /invitations/{familyID}/accept", rsvpController.Accept)
	mux.HandleFunc("POST /invitations/{familyID}/decline", rsvpController.Decline)

	// Auth
	mux.HandleFunc("POST /auth/login", authController.Login)
	mux.HandleFunc("POST /auth/logout", auth(authController.Logout))

	// Admin: families
	mux.HandleFunc("POST /admin/families", auth(familyController.Create))
	mux.HandleFunc("GET /admin/families", auth(familyController.List))
	mux.HandleFunc("GET /admin/families/watch", auth(familyController.Watch))
	mux.HandleFunc("GET /admin/families/export", auth(familyController.Export))
	mux.HandleFunc("DELETE /admin/families/{familyID}", auth(familyController.Delete))

	// Admin: invitation responses
	mux.HandleFunc("GET /admin/invitations", auth(invitationController.List))
	mux.HandleFunc("GET /admin/invitations/watch", auth(invitationController.Watch))
	mux.HandleFunc("GET /admin/invitations/export", auth(invitationController.Export))
	mux.HandleFunc("DELETE /admin/invitations/{invitationID}", auth(invitationController.Delete))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
