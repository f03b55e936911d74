package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"onboarding/internal/platform/privacy"
	"onboarding/internal/registration/models"
	"onboarding/pkg/platform/httputil"
	"onboarding/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/handler-mocks.go -package=mocks Service

// Service defines the registration operations the handler exposes.
type Service interface {
	Register(ctx context.Context, req *models.RegistrationRequest) (*models.Registration, error)
	Check(ctx context.Context, req *models.RegistrationRequest) error
}

// Response bodies. Existing clients compare them literally.
const (
	BodyComplete = "Complete"
	BodyValid    = "Valid"
)

// Handler serves the registration endpoints.
type Handler struct {
	logger       *slog.Logger
	registration Service
}

// New creates a new registration Handler.
func New(registration Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:       logger,
		registration: registration,
	}
}

// Register mounts the registration routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Post("/createUser", h.HandleCreateUser)
	r.Post("/createUser/validate", h.HandleValidate)
	r.Post("/purchases", h.HandlePurchase)
}

// HandleCreateUser registers a customer from query parameters, with any JSON
// body filling the fields the query left out.
func (h *Handler) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}
	h.register(ctx, w, req)
}

// HandleValidate runs validation against the live license catalog and
// writes nothing.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}
	if err := h.registration.Check(ctx, req); err != nil {
		h.logger.WarnContext(ctx, "registration check failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteText(w, http.StatusOK, BodyValid)
}

// HandlePurchase registers the buyer of a storefront purchase.
func (h *Handler) HandlePurchase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	payload, ok := httputil.DecodeJSON[PurchasePayload](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	h.register(ctx, w, payload.ToRegistrationRequest())
}

func (h *Handler) register(ctx context.Context, w http.ResponseWriter, req *models.RegistrationRequest) {
	requestID := requestcontext.RequestID(ctx)

	reg, err := h.registration.Register(ctx, req)
	if err != nil {
		h.logger.WarnContext(ctx, "registration failed",
			"request_id", requestID,
			"email", privacy.MaskEmail(req.Email),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "registration complete",
		"request_id", requestID,
		"path", reg.Path.String(),
		"license", reg.Subscription.License,
	)
	httputil.WriteText(w, http.StatusOK, BodyComplete)
}

func (h *Handler) decodeRequest(w http.ResponseWriter, r *http.Request) (*models.RegistrationRequest, bool) {
	ctx := r.Context()

	req := requestFromQuery(r.URL.Query())
	if !isJSON(r) {
		return req, true
	}

	var body models.RegistrationRequest
	decoded, err := httputil.DecodeOptionalJSON(r, &body)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to decode registration body",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return nil, false
	}
	if decoded {
		req.Merge(&body)
	}
	return req, true
}
