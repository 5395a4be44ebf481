package identity

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

const defaultKeyTTL = time.Hour

// keyCache holds the provider's token signing keys, refreshed according to
// the Cache-Control max-age of the certificate endpoint.
type keyCache struct {
	mu      sync.Mutex
	keys    map[string]*rsa.PublicKey
	expires time.Time
}

func newKeyCache() *keyCache {
	return &keyCache{keys: map[string]*rsa.PublicKey{}}
}

// get returns the public key for kid, refreshing the cache when it is stale
// or the kid is unknown (keys rotate).
func (c *keyCache) get(ctx context.Context, client *http.Client, url, kid string) (*rsa.PublicKey, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if key, ok := c.keys[kid]; ok && time.Now().Before(c.expires) {
		return key, nil
	}

	if err := c.refresh(ctx, client, url); err != nil {
		return nil, err
	}

	key, ok := c.keys[kid]
	if !ok {
		return nil, fmt.Errorf("unknown token signing key id %q", kid)
	}
	return key, nil
}

// refresh fetches the kid → PEM certificate map and replaces the cache.
// The caller must hold the mutex.
func (c *keyCache) refresh(ctx context.Context, client *http.Client, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build certificate request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch token signing certificates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("certificate endpoint returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read certificate response: %w", err)
	}

	var certs map[string]string
	if err := json.Unmarshal(data, &certs); err != nil {
		return fmt.Errorf("decode certificate response: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(certs))
	for kid, certPEM := range certs {
		key, err := parseCertPublicKey(certPEM)
		if err != nil {
			return fmt.Errorf("parse certificate %q: %w", kid, err)
		}
		keys[kid] = key
	}

	c.keys = keys
	c.expires = time.Now().Add(maxAge(resp.Header.Get("Cache-Control")))
	return nil
}

func parseCertPublicKey(certPEM string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(certPEM))
	if block == nil {
		return nil, fmt.Errorf("no PEM block found")
	}
	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, err
	}
	key, ok := cert.PublicKey.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("certificate key is not RSA")
	}
	return key, nil
}

// maxAge parses the max-age directive of a Cache-Control header, falling
// back to a conservative default.
func maxAge(header string) time.Duration {
	for _, directive := range strings.Split(header, ",") {
		directive = strings.TrimSpace(directive)
		if value, ok := strings.CutPrefix(directive, "max-age="); ok {
			if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
				return time.Duration(seconds) * time.Second
			}
		}
	}
	return defaultKeyTTL
}
