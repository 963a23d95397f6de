package httpx

import (
	"errors"
	"net/http"

	"github.com/kartikeyan-sudo/BlogXAi/pkg/tokenx"
)

// ErrMissingToken reports a request that carried no token at all, neither
// bearer header nor cookie.
var ErrMissingToken = errors.New("httpx: missing token")

// Authenticator turns a request into a verified principal. It is pure
// orchestration over the session carrier and the token codec: the credential
// store is never consulted here, so role and status are trusted from the
// payload as of issuance time. A blocked account keeps its token until the
// token's own expiry.
type Authenticator struct {
	Codec *tokenx.Codec
}

// Authenticate extracts and verifies the request's token. Codec failures
// propagate unchanged (tokenx.ErrMalformed, ErrBadSignature, ErrExpired).
func (a *Authenticator) Authenticate(r *http.Request) (tokenx.Principal, error) {
	raw, ok := ExtractToken(r)
	if !ok {
		return tokenx.Principal{}, ErrMissingToken
	}
	return a.Codec.Verify(raw)
}
