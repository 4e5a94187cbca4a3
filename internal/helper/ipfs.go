package helper

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var ipfsCid = regexp.MustCompile("(Qm[1-9A-HJ-NP-Za-km-z]{44}.*$)")

func IsUrl(uri string) bool {
	u, err := url.Parse(uri)
	return err == nil && u.Scheme != "" && u.Host != ""
}

func IsIpfs(uri string) bool {
	if parts := ipfsCid.FindStringSubmatch(uri); len(parts) == 2 {
		return true
	}

	if !IsUrl(uri) {
		return false
	}

	u, _ := url.Parse(uri)

	return u.Scheme == "ipfs"
}

// GatewayUri rewrites an ipfs uri to an http uri on the given gateway.
// Non-ipfs uris are returned untouched.
func GatewayUri(uri, gateway string) string {
	if strings.HasPrefix(uri, "ipfs://") {
		return fmt.Sprintf("%s/ipfs/%s", strings.TrimRight(gateway, "/"), uri[7:])
	}

	if parts := ipfsCid.FindStringSubmatch(uri); len(parts) == 2 {
		return fmt.Sprintf("%s/ipfs/%s", strings.TrimRight(gateway, "/"), parts[1])
	}

	return uri
}
