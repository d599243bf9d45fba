package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/veridianlabs/mailward/internal/mailward/domain"
	"github.com/veridianlabs/mailward/internal/mailward/service"
	"github.com/veridianlabs/mailward/pkg/httpx"
	"github.com/veridianlabs/mailward/pkg/mailwardsdk"
	"github.com/veridianlabs/mailward/pkg/slogx"
)

type IssueHandler struct {
	TokenService *service.TokenService
	Validate     *validator.Validate
}

// acceptedBody is the fixed 202 response for password_reset and magic_link
// issuance. It must stay byte-identical whether or not the subject exists;
// any divergence turns the endpoint into an account oracle.
var acceptedBody = mailwardsdk.IssueAcceptedResponse{
	Status: "accepted",
	Detail: "If an account exists for this address, an email is on its way.",
}

// ServeHTTP godoc
//
//	@Summary		Issue Action Token Endpoint
//	@Description	Open (or replace) the pending verification slot for an (email, kind) pair and send the localized action email. Replacing a slot permanently invalidates its previous credentials.
//	@Description	email_confirmation and invitation answer 201 with the full issuance, since the caller just created or invited the subject. password_reset and magic_link always answer a fixed 202, whether or not the subject exists.
//	@Tags			Tokens
//	@Accept			json
//	@Produce		json
//	@Param			request	body		mailwardsdk.IssueTokenRequest		true	"Issue request"
//	@Success		201		{object}	mailwardsdk.IssueTokenResponse		"token, code, action_url, kind, email, expires_at"
//	@Success		202		{object}	mailwardsdk.IssueAcceptedResponse	"status, detail"
//	@Failure		400		{object}	mailwardsdk.ErrorResponse			"error, error_description"
//	@Failure		401		{object}	mailwardsdk.ErrorResponse			"error, error_description"
//	@Failure		403		{object}	mailwardsdk.ErrorResponse			"error, error_description"
//	@Failure		500		{object}	mailwardsdk.ErrorResponse			"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/tokens [post].
func (h *IssueHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	// Parse JSON request body
	var req mailwardsdk.IssueTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		mailwardsdk.ErrInvalidJSONBody.WriteError(w)
		return
	}

	// Validate the DTO before it reaches the service
	if err := h.Validate.Struct(req); err != nil {
		mailwardsdk.NewAPIError(
			http.StatusBadRequest,
			mailwardsdk.ErrorCodeInvalidRequest,
			validationMessage(err),
		).WriteError(w)
		return
	}

	kind, err := domain.ParseActionKind(req.Kind)
	if err != nil {
		mailwardsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	// Self-service kinds are masked: the response is the same fixed 202
	// whether the subject exists or not. The email still goes out when it
	// does.
	if !kind.CreatesSubject() {
		_, err := h.TokenService.Issue(ctx, req.Email, kind, req.Locale, req.Metadata, req.RedirectTo)
		switch {
		case err == nil, errors.Is(err, service.ErrSubjectNotFound):
			httpx.WriteJSON(w, http.StatusAccepted, acceptedBody)
		case errors.Is(err, service.ErrInvalidRequest):
			mailwardsdk.ErrInvalidRequest.WriteError(w)
		default:
			log.Error("failed to issue token", "err", err)
			mailwardsdk.ErrServerError.WriteError(w)
		}
		return
	}

	// Trusted kinds return the raw credentials to the authenticated caller.
	iss, err := h.TokenService.Issue(ctx, req.Email, kind, req.Locale, req.Metadata, req.RedirectTo)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			mailwardsdk.ErrInvalidRequest.WriteError(w)
		default:
			log.Error("failed to issue token", "err", err)
			mailwardsdk.ErrServerError.WriteError(w)
		}
		return
	}

	response := mailwardsdk.IssueTokenResponse{
		Token:     iss.Token,
		Code:      iss.Code,
		ActionURL: iss.ActionURL,
		Kind:      iss.Kind.String(),
		Email:     iss.Email,
		ExpiresAt: iss.ExpiresAt,
	}

	httpx.WriteJSON(w, http.StatusCreated, response)
}

// validationMessage renders the first field failure of a validator error in a
// form that names the offending field without echoing its value back.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("%s failed %s validation", strings.ToLower(fe.Field()), fe.Tag())
	}
	return "the request is malformed or missing required parameters"
}
