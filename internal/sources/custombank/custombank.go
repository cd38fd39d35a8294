// Package custombank reads staff-maintained institution records from a
// local YAML file. It exists for banks no external provider covers, and
// doubles as the offline fixture source in development.
package custombank

import (
	"context"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/greenfolio/bankmap/pkg/catalogs"
	"github.com/greenfolio/bankmap/pkg/errors"
	"github.com/greenfolio/bankmap/pkg/ingest"
)

// DefaultPath is where the staff-maintained file lives relative to the
// working directory.
const DefaultPath = "custombanks.yaml"

// record is one entry of the YAML file.
type record struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Website     string   `yaml:"website"`
	Countries   []string `yaml:"countries"`
}

// Client reads the custombank file.
type Client struct {
	path string
}

// Option configures a Client.
type Option func(*Client)

// WithPath overrides the file location.
func WithPath(path string) Option {
	return func(c *Client) {
		c.path = path
	}
}

// New creates a custombank source client.
func New(opts ...Option) *Client {
	c := &Client{path: DefaultPath}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Provider returns the provider type this source ingests as.
func (c *Client) Provider() catalogs.Provider {
	return catalogs.ProviderCustombank
}

// Fetch reads and parses the file. A missing file is not an error: it
// simply means staff have added no custom banks yet.
func (c *Client) Fetch(_ context.Context) ([]ingest.Row, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.WrapIO("read", c.path, err)
	}

	var records []record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, errors.WrapParse("yaml", c.path, err)
	}

	rows := make([]ingest.Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, ingest.Row{
			SourceID: r.ID,
			Fields: ingest.Fields{
				ingest.FieldName:        r.Name,
				ingest.FieldDescription: r.Description,
				ingest.FieldWebsite:     r.Website,
				ingest.FieldCountries:   r.Countries,
			},
		})
	}
	return rows, nil
}
