package gallery

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vsixlabs/vsixforge/internal/branding"
)

const (
	// acceptHeader pins the gallery API version the query shape targets.
	acceptHeader = "application/json;api-version=3.0-preview.1"

	// filterTypeExtensionName selects extensions by "publisher.name".
	filterTypeExtensionName = 7

	// queryFlags requests version entries and their file assets.
	queryFlags = 103

	// assetTypeVSIXPackage tags the installable package among a version's files.
	assetTypeVSIXPackage = "Microsoft.VisualStudio.Services.VSIXPackage"

	// snippetLimit bounds the raw-body excerpt embedded in parse errors.
	snippetLimit = 500
)

// ExtensionInfo describes a resolved marketplace extension. It is immutable
// once returned from Lookup.
type ExtensionInfo struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Version     string `json:"version"`
	DownloadURL string `json:"downloadUrl"`
}

// Client queries the marketplace gallery and downloads VSIX packages.
type Client struct {
	endpoint       string
	userAgent      string
	queryClient    *http.Client
	downloadClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client for both queries and downloads
// (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(g *Client) {
		g.queryClient = c
		g.downloadClient = c
	}
}

// WithEndpoint overrides the gallery query endpoint (e.g., a mirror).
func WithEndpoint(url string) Option {
	return func(g *Client) {
		g.endpoint = url
	}
}

// WithUserAgent overrides the User-Agent header sent on all requests.
func WithUserAgent(ua string) Option {
	return func(g *Client) {
		g.userAgent = ua
	}
}

// New creates a gallery Client with the given options.
func New(opts ...Option) *Client {
	g := &Client{
		endpoint:  branding.GalleryURL(),
		userAgent: branding.UserAgent(),
		// Archive downloads get a longer deadline than metadata queries.
		queryClient:    &http.Client{Timeout: 60 * time.Second},
		downloadClient: &http.Client{Timeout: 120 * time.Second},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Endpoint returns the query endpoint this client targets.
func (g *Client) Endpoint() string {
	return g.endpoint
}

type queryPayload struct {
	Filters []queryFilter `json:"filters"`
	Flags   int           `json:"flags"`
}

type queryFilter struct {
	Criteria   []queryCriterion `json:"criteria"`
	PageNumber int              `json:"pageNumber"`
	PageSize   int              `json:"pageSize"`
}

type queryCriterion struct {
	FilterType int    `json:"filterType"`
	Value      string `json:"value"`
}

type queryResponse struct {
	Results []struct {
		Extensions []struct {
			ExtensionName string `json:"extensionName"`
			DisplayName   string `json:"displayName"`
			Versions      []struct {
				Version string `json:"version"`
				Files   []struct {
					AssetType string `json:"assetType"`
					Source    string `json:"source"`
				} `json:"files"`
			} `json:"versions"`
		} `json:"extensions"`
	} `json:"results"`
}

// Lookup resolves an extension identifier ("publisher.name") to its display
// name, latest version, and VSIX download URL via a single gallery query.
func (g *Client) Lookup(extensionID string) (*ExtensionInfo, error) {
	payload := queryPayload{
		Filters: []queryFilter{{
			Criteria:   []queryCriterion{{FilterType: filterTypeExtensionName, Value: extensionID}},
			PageNumber: 1,
			PageSize:   1,
		}},
		Flags: queryFlags,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding gallery query: %w", err)
	}

	req, err := http.NewRequest("POST", g.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating gallery request: %w", err)
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.queryClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying gallery: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading gallery response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gallery returned status %d: %s", resp.StatusCode, snippet(raw))
	}

	var qr queryResponse
	if err := json.Unmarshal(raw, &qr); err != nil {
		return nil, fmt.Errorf("parsing gallery JSON: %w\nresponse snippet:\n%s", err, snippet(raw))
	}

	return extractInfo(&qr, extensionID)
}

// extractInfo walks the query response and pulls out the first extension's
// latest version and installable-package URL.
func extractInfo(qr *queryResponse, extensionID string) (*ExtensionInfo, error) {
	if len(qr.Results) == 0 || len(qr.Results[0].Extensions) == 0 {
		return nil, fmt.Errorf("gallery response contained no extension matching %s", extensionID)
	}
	ext := qr.Results[0].Extensions[0]

	if len(ext.Versions) == 0 {
		return nil, fmt.Errorf("gallery response for %s contained no versions", extensionID)
	}
	// The gallery lists versions newest-first.
	v := ext.Versions[0]
	if v.Version == "" {
		return nil, fmt.Errorf("gallery response for %s is missing the version string", extensionID)
	}

	downloadURL := ""
	for _, f := range v.Files {
		if f.AssetType == assetTypeVSIXPackage {
			downloadURL = f.Source
			break
		}
	}
	if downloadURL == "" {
		return nil, fmt.Errorf("gallery response for %s version %s has no %s asset", extensionID, v.Version, assetTypeVSIXPackage)
	}

	displayName := ext.DisplayName
	if displayName == "" {
		displayName = ext.ExtensionName
	}
	if displayName == "" {
		displayName = extensionID
	}

	return &ExtensionInfo{
		ID:          extensionID,
		DisplayName: displayName,
		Version:     v.Version,
		DownloadURL: downloadURL,
	}, nil
}

// snippet truncates a raw response body for inclusion in error messages.
func snippet(raw []byte) string {
	if len(raw) > snippetLimit {
		raw = raw[:snippetLimit]
	}
	return string(raw)
}
