package helper

import "testing"

const cid = "QmPZ9gcCEpqKTo6aq61g2nXGUhM4iCL3ewB6LDXZCtioEB"

func TestIsIpfs(t *testing.T) {
	tests := []struct {
		uri      string
		expected bool
	}{
		{"ipfs://" + cid, true},
		{"https://gateway.pinata.cloud/ipfs/" + cid, true},
		{cid + "/1.json", true},
		{"https://example.com/metadata/1.json", false},
		{"not a uri", false},
	}

	for _, tt := range tests {
		if IsIpfs(tt.uri) != tt.expected {
			t.Errorf("IsIpfs(%q) got=%t want=%t", tt.uri, !tt.expected, tt.expected)
		}
	}
}

func TestIsUrl(t *testing.T) {
	if !IsUrl("https://example.com/1.json") {
		t.Error("expected https uri to be a url")
	}
	if IsUrl(cid) {
		t.Error("expected bare cid to not be a url")
	}
}

func TestGatewayUri(t *testing.T) {
	tests := []struct {
		uri      string
		expected string
	}{
		{"ipfs://" + cid + "/1.json", "https://cloudflare-ipfs.com/ipfs/" + cid + "/1.json"},
		{cid + "/1.json", "https://cloudflare-ipfs.com/ipfs/" + cid + "/1.json"},
		{"https://example.com/metadata/1.json", "https://example.com/metadata/1.json"},
	}

	for _, tt := range tests {
		if got := GatewayUri(tt.uri, "https://cloudflare-ipfs.com/"); got != tt.expected {
			t.Errorf("GatewayUri(%q) got=%q want=%q", tt.uri, got, tt.expected)
		}
	}
}
