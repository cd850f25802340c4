package marketapi

import (
	"context"
	"encoding/json"
	"net/http"

	apperrors "github.com/rentnest/rentnest-web/internal/errors"
)

// Categories returns the marketplace's property categories for guest
// browsing. Presentational data; passed through undecoded beyond the
// envelope.
func (c *Client) Categories(ctx context.Context) ([]map[string]any, error) {
	return c.fetchList(ctx, pathCategories)
}

// Properties returns the public property listings for guest browsing.
func (c *Client) Properties(ctx context.Context) ([]map[string]any, error) {
	return c.fetchList(ctx, pathProperties)
}

func (c *Client) fetchList(ctx context.Context, path string) ([]map[string]any, error) {
	resp, err := c.call(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeIntegration, "fetch "+path)
	}
	if !resp.Envelope.OK() {
		return nil, apperrors.Integration("fetch " + path + ": " + resp.Envelope.FailureMessage())
	}

	var items []map[string]any
	if len(resp.Envelope.Data) > 0 {
		if err := json.Unmarshal(resp.Envelope.Data, &items); err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeIntegration, "decode "+path+" payload")
		}
	}
	return items, nil
}

// jsonUnmarshalMap decodes raw JSON into a string-keyed map.
func jsonUnmarshalMap(raw json.RawMessage, dst *map[string]any) error {
	return json.Unmarshal(raw, dst)
}
