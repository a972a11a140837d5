package here

import (
	"context"
	"net/url"

	"github.com/Jeong-wonho/heremap-start/internal/core/domain"
	"github.com/Jeong-wonho/heremap-start/internal/core/ports"
)

type geocodeResponse struct {
	Items []struct {
		Title    string `json:"title"`
		Position *struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"position"`
		Address struct {
			Label string `json:"label"`
		} `json:"address"`
	} `json:"items"`
}

// Geocode runs a free-text search anchored at q.At. Items without a position
// are skipped.
func (c *Client) Geocode(ctx context.Context, q ports.GeocodeQuery) ([]ports.GeocodeItem, error) {
	v := url.Values{}
	v.Set("q", q.Text)
	v.Set("at", latLng(q.At))
	if q.CountryFilter != "" {
		v.Set("in", q.CountryFilter)
	}

	var body geocodeResponse
	if err := c.getJSON(ctx, c.cfg.GeocodeURL, v, &body); err != nil {
		return nil, err
	}

	items := make([]ports.GeocodeItem, 0, len(body.Items))
	for _, it := range body.Items {
		if it.Position == nil {
			continue
		}
		label := it.Address.Label
		if label == "" {
			label = it.Title
		}
		items = append(items, ports.GeocodeItem{
			Position:         domain.GeoPoint{Lat: it.Position.Lat, Lon: it.Position.Lng},
			FormattedAddress: label,
		})
	}
	return items, nil
}
