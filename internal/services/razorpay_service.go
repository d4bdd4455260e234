package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	razorpay "github.com/razorpay/razorpay-go"
	razorpayutils "github.com/razorpay/razorpay-go/utils"

	"vyapar-backend/internal/config"
	"vyapar-backend/internal/models"
	"vyapar-backend/internal/realtime"
	"vyapar-backend/internal/repositories"
)

var ErrInvalidSignature = errors.New("invalid webhook signature")

// RazorpayService creates online payment orders and turns captured
// payments into ledger entries through the normal receive-payment flow.
type RazorpayService struct {
	client        *razorpay.Client
	webhookSecret string
	orders        *repositories.OnlineTransactionRepository
	payments      *PaymentService
	hub           *realtime.Hub
}

func NewRazorpayService(cfg *config.Config, orders *repositories.OnlineTransactionRepository, payments *PaymentService, hub *realtime.Hub) *RazorpayService {
	var client *razorpay.Client
	if cfg.Razorpay.KeyID != "" {
		client = razorpay.NewClient(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)
	}
	return &RazorpayService{
		client:        client,
		webhookSecret: cfg.Razorpay.WebhookSecret,
		orders:        orders,
		payments:      payments,
		hub:           hub,
	}
}

// CreateOrder asks Razorpay for an order and records it as created.
// Amounts are rupees here and paise on the wire.
func (s *RazorpayService) CreateOrder(ctx context.Context, ownerID int, req *models.CreateOrderRequest) (*models.OnlineTransaction, error) {
	if s.client == nil {
		return nil, fmt.Errorf("razorpay not configured")
	}
	name := strings.TrimSpace(req.CustomerName)
	if name == "" || req.Amount <= 0 {
		return nil, ErrValidation
	}

	data := map[string]interface{}{
		"amount":   int64(req.Amount * 100),
		"currency": "INR",
		"notes": map[string]interface{}{
			"customer_name":  name,
			"customer_phone": req.CustomerPhone,
			"owner_id":       fmt.Sprintf("%d", ownerID),
		},
	}
	order, err := s.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("create razorpay order: %w", err)
	}

	orderID, _ := order["id"].(string)
	if orderID == "" {
		return nil, fmt.Errorf("razorpay order response missing id")
	}
	return s.orders.Create(ctx, orderID, name, req.CustomerPhone, req.Amount, ownerID)
}

type webhookPayload struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// HandleWebhook verifies the signature and, on payment.captured, records
// the payment against the customer's invoices oldest first. Marking the
// order captured first makes webhook retries idempotent.
func (s *RazorpayService) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	if s.webhookSecret == "" {
		return fmt.Errorf("webhook secret not configured")
	}
	if !razorpayutils.VerifyWebhookSignature(string(body), signature, s.webhookSecret) {
		return ErrInvalidSignature
	}

	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("decode webhook: %w", err)
	}

	entity := payload.Payload.Payment.Entity
	switch payload.Event {
	case "payment.captured":
		txn, err := s.orders.MarkCaptured(ctx, entity.OrderID, entity.ID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				// Unknown or already-processed order; ack the retry
				return nil
			}
			return err
		}

		// Attributed to the owner account; no human user triggered this
		_, err = s.payments.Receive(ctx, txn.OwnerID, txn.OwnerID, &models.ReceivePaymentRequest{
			CustomerName:  txn.CustomerName,
			CustomerPhone: txn.CustomerPhone,
			Amount:        txn.Amount,
			Mode:          models.AllocationModeAuto,
			PaymentMethod: "razorpay",
			Notes:         fmt.Sprintf("Online payment %s", entity.ID),
		})
		if err != nil {
			log.Printf("[Razorpay] payment %s captured but ledger write failed: %v", entity.ID, err)
			return err
		}

		s.hub.Broadcast(txn.OwnerID, "online_transactions", "updated")
		s.hub.Broadcast(txn.OwnerID, "payment_ledger", "created")
		s.hub.Broadcast(txn.OwnerID, "sales", "updated")
		return nil

	case "payment.failed":
		return s.orders.MarkFailed(ctx, entity.OrderID)
	}
	return nil
}
