package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/veridianlabs/mailward/internal/mailward/service"
	"github.com/veridianlabs/mailward/pkg/httpx"
	"github.com/veridianlabs/mailward/pkg/mailwardsdk"
	"github.com/veridianlabs/mailward/pkg/slogx"
)

type ListHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		List Pending Tokens Endpoint
//	@Description	List every slot held by a subject, newest first. Credential fingerprints never leave the service; entries carry kind, metadata and the issue/expiry/completion timestamps.
//	@Tags			Tokens
//	@Produce		json
//	@Param			email	path		string							true	"Subject email address"
//	@Success		200		{object}	mailwardsdk.ListPendingResponse	"email, tokens"
//	@Failure		400		{object}	mailwardsdk.ErrorResponse		"error, error_description"
//	@Failure		401		{object}	mailwardsdk.ErrorResponse		"error, error_description"
//	@Failure		403		{object}	mailwardsdk.ErrorResponse		"error, error_description"
//	@Failure		500		{object}	mailwardsdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/tokens/{email} [get].
func (h *ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	email := r.PathValue("email")

	tokens, err := h.TokenService.ListPending(ctx, email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			mailwardsdk.ErrInvalidRequest.WriteError(w)
		default:
			log.Error("failed to list pending tokens", "err", err)
			mailwardsdk.ErrServerError.WriteError(w)
		}
		return
	}

	infos := make([]mailwardsdk.PendingTokenInfo, 0, len(tokens))
	for _, t := range tokens {
		infos = append(infos, mailwardsdk.PendingTokenInfo{
			Kind:        t.Kind.String(),
			Metadata:    t.Metadata,
			IssuedAt:    t.IssuedAt,
			ExpiresAt:   t.ExpiresAt,
			CompletedAt: t.CompletedAt,
		})
	}

	// Echo the email the way the service normalized it so the response
	// matches the stored rows even when the path segment carried mixed case.
	response := mailwardsdk.ListPendingResponse{
		Email:  strings.ToLower(strings.TrimSpace(email)),
		Tokens: infos,
	}

	httpx.WriteJSON(w, http.StatusOK, response)
}
