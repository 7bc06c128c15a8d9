package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"renthub-backend/internal/domain"
	"renthub-backend/internal/repository"
	"renthub-backend/internal/service"
)

type BookingHandler struct {
	bookings service.BookingService
	validate *validator.Validate
}

func NewBookingHandler(bookings service.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings, validate: validator.New()}
}

type modifyBookingRequest struct {
	StartDate     string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate       string `json:"end_date" validate:"required,datetime=2006-01-02"`
	PaymentMethod string `json:"payment_method" validate:"omitempty,oneof=wallet card"`
}

func (h *BookingHandler) Modify(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Autenticazione richiesta")
		return
	}
	bookingID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID prenotazione non valido")
		return
	}

	var req modifyBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Richiesta non valida")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Date non valide")
		return
	}

	result, err := h.bookings.ModifyBooking(r.Context(), &service.ModifyBookingRequest{
		BookingID:     bookingID,
		RenterID:      claims.UserID,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		writeBookingError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *BookingHandler) Preview(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Autenticazione richiesta")
		return
	}
	bookingID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID prenotazione non valido")
		return
	}

	var req modifyBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Richiesta non valida")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Date non valide")
		return
	}

	preview, err := h.bookings.PreviewModification(r.Context(), &service.ModifyBookingRequest{
		BookingID: bookingID,
		RenterID:  claims.UserID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		writeBookingError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, preview)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Autenticazione richiesta")
		return
	}
	bookingID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID prenotazione non valido")
		return
	}

	booking, err := h.bookings.GetBooking(r.Context(), bookingID, claims.UserID)
	if err != nil {
		writeBookingError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

type bookingListResponse struct {
	Bookings []domain.Booking `json:"bookings"`
	Total    int32            `json:"total"`
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Autenticazione richiesta")
		return
	}
	page, pageSize := paginationParams(r)

	bookings, total, err := h.bookings.ListBookings(r.Context(), claims.UserID, page, pageSize)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Errore interno")
		return
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	writeJSON(w, http.StatusOK, bookingListResponse{Bookings: bookings, Total: total})
}

func writeBookingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrBookingNotFound):
		writeError(w, http.StatusNotFound, "Prenotazione non trovata")
	case errors.Is(err, service.ErrNotBookingOwner):
		writeError(w, http.StatusForbidden, "Non autorizzato")
	case errors.Is(err, service.ErrBookingNotModifiable):
		writeError(w, http.StatusConflict, "La prenotazione non è modificabile")
	case errors.Is(err, repository.ErrVersionConflict):
		writeError(w, http.StatusConflict, "La prenotazione è stata modificata da un'altra operazione, riprova")
	case errors.Is(err, service.ErrInvalidDateRange):
		writeError(w, http.StatusBadRequest, "Date non valide")
	case errors.Is(err, service.ErrPaymentMethodRequired):
		writeError(w, http.StatusBadRequest, "Metodo di pagamento richiesto")
	case errors.Is(err, service.ErrUnsupportedPaymentMethod):
		writeError(w, http.StatusBadRequest, "Metodo di pagamento non supportato")
	case errors.Is(err, service.ErrInsufficientFunds):
		writeError(w, http.StatusBadRequest, "Saldo insufficiente")
	default:
		writeError(w, http.StatusInternalServerError, "Errore interno")
	}
}

func paginationParams(r *http.Request) (page, pageSize int32) {
	page, pageSize = 1, 20
	if v, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 32); err == nil && v > 0 {
		page = int32(v)
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("page_size"), 10, 32); err == nil && v > 0 && v <= 100 {
		pageSize = int32(v)
	}
	return page, pageSize
}

// RegisterBookingRoutes registers the authenticated booking endpoints
func RegisterBookingRoutes(router *mux.Router, bookings service.BookingService) {
	handler := NewBookingHandler(bookings)
	router.HandleFunc("/api/v1/bookings", handler.List).Methods("GET")
	router.HandleFunc("/api/v1/bookings/{id:[0-9]+}", handler.Get).Methods("GET")
	router.HandleFunc("/api/v1/bookings/{id:[0-9]+}/modify", handler.Modify).Methods("POST")
	router.HandleFunc("/api/v1/bookings/{id:[0-9]+}/modification-preview", handler.Preview).Methods("POST")
}
