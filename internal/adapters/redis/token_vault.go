package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	domainauth "github.com/rentnest/rentnest-web/internal/domain/auth"
	"github.com/rentnest/rentnest-web/internal/ports"
)

// Vault key suffixes. These mirror the legacy browser-storage keys the
// marketplace clients have always used, so interop tooling keeps working.
const (
	keyRenterToken         = "renter_token"
	keyRenterTokenExpiry   = "renter_token_expiry"
	keyLandlordToken       = "landlord_token"
	keyLandlordTokenExpiry = "landlord_token_expiry"
	keyAdminToken          = "admin_token"
	keyAdminUser           = "admin_user"
	keyAccessToken         = "access_token"
	keyRefreshToken        = "refresh_token"
)

// VaultKeys lists every key the vault may hold for a visitor. Logout
// purges all of them unconditionally.
func VaultKeys() []string {
	return []string{
		keyRenterToken,
		keyRenterTokenExpiry,
		keyLandlordToken,
		keyLandlordTokenExpiry,
		keyAdminToken,
		keyAdminUser,
		keyAccessToken,
		keyRefreshToken,
	}
}

// TokenVault stores bearer tokens per user kind, duplicating the token
// already carried on the User record. The session manager's Logout is the
// single authority that clears these keys.
type TokenVault struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

var _ ports.TokenVault = (*TokenVault)(nil)

// TokenVaultOptions configures a TokenVault.
type TokenVaultOptions struct {
	Client redis.UniversalClient
	Prefix string
	// TTL bounds how long vault keys survive in storage, independent of
	// the token's own expiry timestamp.
	TTL time.Duration
}

// NewTokenVault creates a Redis-based token vault.
func NewTokenVault(opts TokenVaultOptions) *TokenVault {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = "rentnest:"
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 720 * time.Hour
	}
	return &TokenVault{
		client: opts.Client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (v *TokenVault) key(sessionID, suffix string) string {
	return v.prefix + "vault:" + sessionID + ":" + suffix
}

func tokenKeyForKind(kind domainauth.Kind) (tokenKey, expiryKey string, err error) {
	switch kind {
	case domainauth.KindRenter:
		return keyRenterToken, keyRenterTokenExpiry, nil
	case domainauth.KindLandlord:
		return keyLandlordToken, keyLandlordTokenExpiry, nil
	case domainauth.KindAdmin:
		// Admin tokens never tracked an expiry key.
		return keyAdminToken, "", nil
	default:
		return "", "", fmt.Errorf("unknown user kind %q", kind)
	}
}

// StoreToken writes the bearer token under the kind-specific key. For
// kinds that track expiry, a non-zero expiresAt is stored alongside as a
// unix-millisecond timestamp.
func (v *TokenVault) StoreToken(ctx context.Context, sessionID string, kind domainauth.Kind, token string, expiresAt time.Time) error {
	if sessionID == "" {
		return errors.New("session ID cannot be empty")
	}
	tokenKey, expiryKey, err := tokenKeyForKind(kind)
	if err != nil {
		return err
	}

	if err := v.client.Set(ctx, v.key(sessionID, tokenKey), token, v.ttl).Err(); err != nil {
		return fmt.Errorf("store %s: %w", tokenKey, err)
	}
	if expiryKey == "" || expiresAt.IsZero() {
		return nil
	}

	millis := strconv.FormatInt(expiresAt.UnixMilli(), 10)
	if err := v.client.Set(ctx, v.key(sessionID, expiryKey), millis, v.ttl).Err(); err != nil {
		return fmt.Errorf("store %s: %w", expiryKey, err)
	}
	return nil
}

// Token returns the stored token for a kind, or "" when absent.
func (v *TokenVault) Token(ctx context.Context, sessionID string, kind domainauth.Kind) (string, error) {
	tokenKey, _, err := tokenKeyForKind(kind)
	if err != nil {
		return "", err
	}

	token, err := v.client.Get(ctx, v.key(sessionID, tokenKey)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("redis get: %w", err)
	}
	return token, nil
}

// PurgeAll removes every known vault key for the visitor in one call,
// regardless of which kind was active.
func (v *TokenVault) PurgeAll(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	keys := VaultKeys()
	full := make([]string, 0, len(keys))
	for _, suffix := range keys {
		full = append(full, v.key(sessionID, suffix))
	}
	return v.client.Del(ctx, full...).Err()
}
