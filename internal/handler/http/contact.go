package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/VivekRai08/Jain-Foam-website/internal/domain"
	"github.com/VivekRai08/Jain-Foam-website/internal/service"
	"github.com/VivekRai08/Jain-Foam-website/pkg/httputil"
	"github.com/VivekRai08/Jain-Foam-website/pkg/validator"
)

// SubmittedMessage is shown to the visitor after a successful submission.
const SubmittedMessage = "Your inquiry has been submitted successfully. We'll contact you soon!"

// ContactHandler accepts contact form submissions.
type ContactHandler struct {
	inquiries *service.InquiryService
	logger    *slog.Logger
}

// NewContactHandler creates a new contact HTTP handler.
func NewContactHandler(inquiries *service.InquiryService, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{
		inquiries: inquiries,
		logger:    logger,
	}
}

// ContactResponse is the body returned for an accepted inquiry.
type ContactResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	InquiryID string `json:"inquiryId"`
}

// SubmitContact handles POST /api/contact. The response does not wait for
// the notification email.
func (h *ContactHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var input domain.ContactInquiryInput
	if err := httputil.DecodeJSON(w, r, &input); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	inquiry, err := h.inquiries.Submit(r.Context(), input)
	if err != nil {
		var valErr *validator.ValidationError
		if errors.As(err, &valErr) {
			httputil.WriteValidationError(w, r, err)
			return
		}
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, ContactResponse{
		Success:   true,
		Message:   SubmittedMessage,
		InquiryID: inquiry.ID,
	})
}
