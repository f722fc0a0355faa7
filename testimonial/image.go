package testimonial

import (
	"strings"
	"sync"

	"github.com/synapseiq/site/httpclient"
)

// FallbackImage is shown when a record has no image or its image fails to load.
const FallbackImage = "/images/team-collaboration.png"

// ResolveImageURL returns the URL to load for image. Absolute http(s) URLs
// are returned unchanged, other values are joined to apiBase, and an empty
// image yields FallbackImage without any resolution.
func ResolveImageURL(image, apiBase string) string {
	image = strings.TrimSpace(image)
	if image == "" {
		return FallbackImage
	}
	return httpclient.ResolveURL(apiBase, image)
}

// ImageSource tracks the image shown for one record.
type ImageSource struct {
	mu       sync.Mutex
	url      string
	fallback bool
	failures int
}

// NewImageSource resolves image against apiBase.
func NewImageSource(image, apiBase string) *ImageSource {
	u := ResolveImageURL(image, apiBase)
	return &ImageSource{url: u, fallback: u == FallbackImage}
}

// URL returns the URL currently to be loaded.
func (s *ImageSource) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.url
}

// Fail records a load failure of the current URL. The first failure of a
// non-fallback URL swaps to FallbackImage and returns true; a failing
// fallback is only counted.
func (s *ImageSource) Fail() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures++
	if s.fallback {
		return false
	}
	s.url = FallbackImage
	s.fallback = true
	return true
}

// IsFallback reports whether the fallback asset is in use.
func (s *ImageSource) IsFallback() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fallback
}

// Failures returns the number of recorded load failures.
func (s *ImageSource) Failures() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failures
}
