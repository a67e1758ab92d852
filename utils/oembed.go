package utils

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// OEmbedClient looks up public metadata for a video URL
type OEmbedClient struct {
	client   *resty.Client
	endpoint string
}

type OEmbedInfo struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

func NewOEmbedClient(endpoint string, timeout time.Duration) *OEmbedClient {
	return &OEmbedClient{
		client:   resty.New().SetTimeout(timeout),
		endpoint: endpoint,
	}
}

// Lookup fetches the oEmbed document for videoURL
func (o *OEmbedClient) Lookup(ctx context.Context, videoURL string) (*OEmbedInfo, error) {
	var info OEmbedInfo
	resp, err := o.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"url":    videoURL,
			"format": "json",
		}).
		SetResult(&info).
		Get(o.endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "oembed request failed")
	}
	if resp.StatusCode() != 200 {
		return nil, errors.Errorf("oembed lookup failed with status %d", resp.StatusCode())
	}
	return &info, nil
}
