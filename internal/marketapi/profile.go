package marketapi

import (
	"context"
	"net/http"

	domainauth "github.com/rentnest/rentnest-web/internal/domain/auth"
	apperrors "github.com/rentnest/rentnest-web/internal/errors"
	"github.com/rentnest/rentnest-web/internal/ports"
)

var _ ports.ProfileFetcher = (*Client)(nil)

// FetchProfile retrieves a fresh profile payload by slug. Unlike the
// credential adapters this is an internal collaborator of the refresh
// poller, so failures surface as errors rather than Results.
func (c *Client) FetchProfile(ctx context.Context, kind domainauth.Kind, slug string) (map[string]any, error) {
	if slug == "" {
		return nil, apperrors.Validation("profile slug is required")
	}

	segment := "rentor"
	if kind == domainauth.KindLandlord {
		segment = "landlord"
	}

	resp, err := c.call(ctx, http.MethodGet, fmtPath(pathProfile, segment, slug), nil)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeIntegration, "fetch profile")
	}
	if !resp.Envelope.OK() {
		return nil, apperrors.Integration("fetch profile: " + resp.Envelope.FailureMessage())
	}

	var payload map[string]any
	if len(resp.Envelope.Data) > 0 {
		if err := jsonUnmarshalMap(resp.Envelope.Data, &payload); err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeIntegration, "decode profile payload")
		}
	}
	return payload, nil
}
