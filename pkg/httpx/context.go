package httpx

import "context"

type ctxKey string

const (
	// CtxKeyUserID holds the token subject of the calling service.
	CtxKeyUserID ctxKey = "user_id"
	// CtxKeyScopes holds the scopes granted to the bearer token.
	CtxKeyScopes ctxKey = "scopes"
)

func scopesFromCtx(ctx context.Context) []string {
	if v, ok := ctx.Value(CtxKeyScopes).([]string); ok {
		return v
	}
	return nil
}
