package pay

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"Condutor/internal/auth"
	"Condutor/internal/repo"
)

// PremiumPriceCents is one month of premium access.
const PremiumPriceCents = 2990

type Handler struct {
	Client *Client
	Repo   repo.Repository
}

type CheckoutResponse struct {
	PaymentURL string `json:"payment_url"`
	PaymentID  string `json:"payment_id"`
}

// Checkout opens a payment for one month of premium and records the ticket.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok || userID == 0 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	orderID := fmt.Sprintf("premium-%d-%d", userID, time.Now().Unix())
	resp, err := h.Client.Init(InitRequest{
		Amount:      PremiumPriceCents,
		OrderID:     orderID,
		Description: "Condutor premium, 30 days",
		CustomerKey: fmt.Sprintf("%d", userID),
	})
	if err != nil {
		log.Printf("payment init error: %v", err)
		http.Error(w, "Payment gateway error", http.StatusBadGateway)
		return
	}

	if _, err := h.Repo.CreatePremiumTicket(r.Context(), userID, resp.PaymentID); err != nil {
		log.Printf("ticket create error: %v", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(CheckoutResponse{PaymentURL: resp.PaymentURL, PaymentID: resp.PaymentID})
}

// Notify is the gateway webhook: on a confirmed payment the matching ticket
// is approved and the premium window extended.
func (h *Handler) Notify(w http.ResponseWriter, r *http.Request) {
	var data map[string]any
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	token, _ := data["Token"].(string)
	if !h.Client.VerifyToken(data, token) {
		http.Error(w, "Bad token", http.StatusForbidden)
		return
	}

	status, _ := data["Status"].(string)
	paymentID := fmt.Sprintf("%v", data["PaymentId"])
	if status != "CONFIRMED" {
		w.Write([]byte("OK"))
		return
	}

	ticket, err := h.Repo.GetPremiumTicketByPayment(r.Context(), paymentID)
	if err != nil {
		log.Printf("ticket lookup error: %v", err)
		http.Error(w, "Ticket not found", http.StatusNotFound)
		return
	}
	_ = h.Repo.UpdatePremiumTicketStatus(r.Context(), ticket.ID, "approved")
	until := time.Now().Add(30 * 24 * time.Hour)
	_ = h.Repo.SetPremiumUntil(r.Context(), ticket.UserID, until)

	w.Write([]byte("OK"))
}
