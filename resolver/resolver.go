// Package resolver turns the raw URLs an admin pastes into a resource form
// into the identifiers the course page needs to embed them.
package resolver

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	courseModels "webmatematica/models/course"
)

var (
	ErrInvalidResourceURL      = errors.New("invalid resource url")
	ErrUnsupportedResourceType = errors.New("unsupported resource type")
)

var (
	youtubePattern    = regexp.MustCompile(`^.*(?:youtu\.be/|v/|u/\w/|embed/|watch\?v=|&v=)([^#&?]*).*$`)
	youtubeIDPattern  = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
	geogebraMaterial  = regexp.MustCompile(`geogebra\.org/m/([a-zA-Z0-9]+)`)
	geogebraIDSegment = regexp.MustCompile(`id/([a-zA-Z0-9]+)`)
)

// Embed is one of YouTube, GeoGebra, PhET or PDF.
type Embed interface {
	// Kind is the resource type the embed was resolved from.
	Kind() string
	// EmbedURL is the URL to put in the iframe or viewer.
	EmbedURL() string
	isEmbed()
}

type YouTube struct {
	VideoID string `json:"video_id"`
}

func (YouTube) Kind() string { return courseModels.ResourceTypeVideo }
func (y YouTube) EmbedURL() string {
	return "https://www.youtube.com/embed/" + y.VideoID
}
func (YouTube) isEmbed() {}

type GeoGebra struct {
	MaterialID string `json:"material_id"`
}

func (GeoGebra) Kind() string { return courseModels.ResourceTypeGeoGebra }
func (g GeoGebra) EmbedURL() string {
	return "https://www.geogebra.org/material/iframe/id/" + g.MaterialID
}
func (GeoGebra) isEmbed() {}

type PhET struct {
	URL string `json:"url"`
}

func (PhET) Kind() string       { return courseModels.ResourceTypePhET }
func (p PhET) EmbedURL() string { return p.URL }
func (PhET) isEmbed()           {}

type PDF struct {
	URL string `json:"url"`
}

func (PDF) Kind() string       { return courseModels.ResourceTypePDF }
func (p PDF) EmbedURL() string { return p.URL }
func (PDF) isEmbed()           {}

// Error carries the URL that failed so callers can render a link to it instead.
type Error struct {
	Type string
	URL  string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s %q", e.Err, e.Type, e.URL)
}

func (e *Error) Unwrap() error { return e.Err }

// Resolve parses rawURL according to the declared resource type.
func Resolve(rawURL, resourceType string) (Embed, error) {
	rawURL = strings.TrimSpace(rawURL)

	switch resourceType {
	case courseModels.ResourceTypeVideo, "youtube":
		id, ok := YouTubeID(rawURL)
		if !ok {
			return nil, invalid(resourceType, rawURL)
		}
		return YouTube{VideoID: id}, nil

	case courseModels.ResourceTypeGeoGebra:
		id, ok := GeoGebraID(rawURL)
		if !ok {
			return nil, invalid(resourceType, rawURL)
		}
		return GeoGebra{MaterialID: id}, nil

	case courseModels.ResourceTypePhET:
		if !IsPhETURL(rawURL) {
			return nil, invalid(resourceType, rawURL)
		}
		return PhET{URL: rawURL}, nil

	case courseModels.ResourceTypePDF:
		if rawURL == "" {
			return nil, invalid(resourceType, rawURL)
		}
		return PDF{URL: rawURL}, nil
	}

	return nil, &Error{Type: resourceType, URL: rawURL, Err: ErrUnsupportedResourceType}
}

// YouTubeID extracts the 11 character video id from watch?v=, youtu.be/ and embed/ URLs.
func YouTubeID(rawURL string) (string, bool) {
	match := youtubePattern.FindStringSubmatch(rawURL)
	if match == nil || !youtubeIDPattern.MatchString(match[1]) {
		return "", false
	}
	return match[1], true
}

// GeoGebraID extracts the material id from geogebra.org/m/<id> and .../id/<id> URLs.
// Both forms must be on a geogebra.org host; an id/<id> path on another host is rejected.
func GeoGebraID(rawURL string) (string, bool) {
	if !strings.Contains(rawURL, "geogebra.org") {
		return "", false
	}
	if match := geogebraMaterial.FindStringSubmatch(rawURL); match != nil {
		return match[1], true
	}
	if match := geogebraIDSegment.FindStringSubmatch(rawURL); match != nil {
		return match[1], true
	}
	return "", false
}

func IsPhETURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(u.Host), "phet.colorado.edu")
}

func invalid(resourceType, rawURL string) error {
	return &Error{Type: resourceType, URL: rawURL, Err: ErrInvalidResourceURL}
}
