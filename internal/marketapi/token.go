package marketapi

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	domainauth "github.com/rentnest/rentnest-web/internal/domain/auth"
)

// tokenExpiry computes when the bearer token expires. JWTs carry an exp
// claim we can read without verifying (the server owns verification);
// opaque tokens get the configured fallback TTL.
func tokenExpiry(token string, fallback time.Duration, now time.Time) time.Time {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err == nil {
		if exp, expErr := parsed.Claims.GetExpirationTime(); expErr == nil && exp != nil {
			return exp.Time
		}
	}
	return now.Add(fallback)
}

// storeLoginToken duplicates the bearer token into the vault side
// channel. Renter and landlord logins also record a computed expiry;
// admin logins never did. Failures are logged, not surfaced: the token on
// the User record remains authoritative.
func (c *Client) storeLoginToken(ctx context.Context, sessionID string, kind domainauth.Kind, token string) {
	if c.vault == nil || sessionID == "" || token == "" {
		return
	}

	var expiresAt time.Time
	if kind != domainauth.KindAdmin {
		expiresAt = tokenExpiry(token, c.tokenFallbackTTL, time.Now())
	}

	if err := c.vault.StoreToken(ctx, sessionID, kind, token, expiresAt); err != nil {
		c.logger.WarnContext(ctx, "token vault write failed", "kind", string(kind), "error", err)
	}
}
