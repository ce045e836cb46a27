package objectstore

import (
	"context"
	"path"

	"github.com/google/uuid"
)

// FakeClient is an in-memory Client for tests and for deployments without an
// object store configured.
type FakeClient struct {
	BaseURL string
	Keys    []string
}

// NewFakeClient returns a FakeClient minting URLs under the given base.
func NewFakeClient(baseURL string) *FakeClient {
	if baseURL == "" {
		baseURL = "https://uploads.invalid"
	}
	return &FakeClient{BaseURL: baseURL}
}

// CreateUploadURL records the requested key and returns deterministic-shaped
// URLs without talking to any store.
func (c *FakeClient) CreateUploadURL(_ context.Context, prefix, filename string) (*UploadTicket, error) {
	key := path.Join(prefix, uuid.NewString(), path.Base(filename))
	c.Keys = append(c.Keys, key)
	return &UploadTicket{
		UploadURL: c.BaseURL + "/upload/" + key,
		ObjectURL: c.BaseURL + "/" + key,
	}, nil
}
