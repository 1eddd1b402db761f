package api

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// trustedImageDomains are the registrable domains photo URLs are served from
var trustedImageDomains = map[string]bool{
	"nasa.gov": true,
}

// ImageDomain returns the registrable domain (eTLD+1) of a photo URL
func ImageDomain(imgSrc string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(imgSrc))
	if err != nil {
		return "", fmt.Errorf("failed to parse image url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported image url scheme %q", u.Scheme)
	}
	host := u.Hostname()
	if host == "" {
		return "", fmt.Errorf("image url %q has no host", imgSrc)
	}
	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return "", fmt.Errorf("failed to get root domain: %w", err)
	}
	return domain, nil
}

// IsTrustedImageURL reports whether imgSrc is an http(s) URL on a NASA domain
func IsTrustedImageURL(imgSrc string) bool {
	domain, err := ImageDomain(imgSrc)
	return err == nil && trustedImageDomains[domain]
}

// SecureImageURL upgrades http photo URLs on trusted domains to https.
// Older rover photos are still referenced with plain http.
func SecureImageURL(imgSrc string) string {
	if strings.HasPrefix(imgSrc, "http://") && IsTrustedImageURL(imgSrc) {
		return "https://" + strings.TrimPrefix(imgSrc, "http://")
	}
	return imgSrc
}
