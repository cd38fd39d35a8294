// Package banktrack fetches institution profiles from the Banktrack API
// and maps them onto ingest rows.
package banktrack

import (
	"context"

	"github.com/greenfolio/bankmap/internal/config"
	"github.com/greenfolio/bankmap/internal/transport"
	"github.com/greenfolio/bankmap/pkg/catalogs"
	"github.com/greenfolio/bankmap/pkg/ingest"
	"github.com/greenfolio/bankmap/pkg/logging"
)

// DefaultEndpoint is the Banktrack bank listing endpoint, overridable
// through BANKMAP_BANKTRACK_URL.
const DefaultEndpoint = "https://www.banktrack.org/service/sections/Bankprofile/financedata"

// bank is the provider-native payload for one institution.
type bank struct {
	Slug      string   `json:"slug"`
	Title     string   `json:"title"`
	About     string   `json:"about"`
	Website   string   `json:"website"`
	Countries []string `json:"countries"`
	LEI       string   `json:"lei"`
}

// Client fetches Banktrack data.
type Client struct {
	http     *transport.Client
	endpoint string
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the listing endpoint.
func WithEndpoint(url string) Option {
	return func(c *Client) {
		c.endpoint = url
	}
}

// WithTransport replaces the transport client.
func WithTransport(t *transport.Client) Option {
	return func(c *Client) {
		c.http = t
	}
}

// New creates a Banktrack source client.
func New(opts ...Option) *Client {
	c := &Client{
		http:     transport.New(),
		endpoint: DefaultEndpoint,
	}
	if url := config.EndpointFor(catalogs.ProviderBanktrack); url != "" {
		c.endpoint = url
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Provider returns the provider type this source ingests as.
func (c *Client) Provider() catalogs.Provider {
	return catalogs.ProviderBanktrack
}

// Fetch retrieves every bank profile. Rows with no slug are dropped here
// rather than failing later in the pipeline, since they cannot carry a
// natural key.
func (c *Client) Fetch(ctx context.Context) ([]ingest.Row, error) {
	var banks []bank
	if err := c.http.GetJSON(ctx, c.Provider().String(), c.endpoint, &banks); err != nil {
		return nil, err
	}

	rows := make([]ingest.Row, 0, len(banks))
	for _, b := range banks {
		if b.Slug == "" {
			logging.Default().Warn().
				Str("provider", c.Provider().String()).
				Str("title", b.Title).
				Msg("Skipping bank without slug")
			continue
		}
		rows = append(rows, ingest.Row{
			SourceID: b.Slug,
			Fields: ingest.Fields{
				ingest.FieldName:        b.Title,
				ingest.FieldDescription: b.About,
				ingest.FieldWebsite:     b.Website,
				ingest.FieldCountries:   b.Countries,
				ingest.FieldLEI:         b.LEI,
			},
		})
	}
	return rows, nil
}
