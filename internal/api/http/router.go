package http

import (
	"github.com/gorilla/mux"

	"renthub-backend/internal/security"
	"renthub-backend/internal/service"
)

// NewRouter assembles the full API surface. Login and the processor webhook
// stay outside the auth middleware; everything else requires a bearer token.
func NewRouter(
	auth service.AuthService,
	bookings service.BookingService,
	wallets service.WalletService,
	events service.PaymentEventService,
	tokens security.TokenManager,
	webhookSecret string,
) *mux.Router {
	router := mux.NewRouter()

	RegisterAuthRoutes(router, auth)
	RegisterWebhookRoutes(router, events, webhookSecret)

	protected := router.NewRoute().Subrouter()
	protected.Use(AuthMiddleware(tokens))
	RegisterBookingRoutes(protected, bookings)
	RegisterWalletRoutes(protected, wallets)

	return router
}
