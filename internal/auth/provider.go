package auth

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:108.0) Gecko/20100101 Firefox/108.0"

// Cold-start polling for a header file that may not exist yet (the embedded
// browser writes it after first login).
const (
	waitAttempts = 3
	waitInterval = 500 * time.Millisecond
)

// Provider exposes the current session cookies and the derived signing
// secret. Implementations are read-only from the client's point of view.
type Provider interface {
	// CookieHeader returns the Cookie header value, or "" when logged out.
	CookieHeader() string
	// SigningSecret returns the SAPISID secret, or "" when unavailable.
	SigningSecret() string
	// UserAgent returns the browser user agent the cookies were issued for.
	UserAgent() string
	// AccountID returns the brand-account id, or "" for the default account.
	AccountID() string
	// MarkSessionExpired records that the server rejected the current
	// session. The mark holds until the credentials are reloaded.
	MarkSessionExpired()
	// SessionExpired reports whether the current session is known rejected.
	SessionExpired() bool
	// Wait blocks until credentials become available or the cold-start
	// budget is exhausted.
	Wait(ctx context.Context) error
}

// FileProvider reads browser-style headers from a header file. The file holds
// one "Name: value" pair per line; an optional account_id.txt next to it
// selects a brand account. Access is serialized so concurrent requests see a
// consistent credential set.
type FileProvider struct {
	path string

	mu        sync.Mutex
	loaded    bool
	expired   bool
	headers   map[string]string
	sapisid   string
	accountID string
}

// NewFileProvider creates a provider backed by the header file at path. The
// file is not read until credentials are first requested.
func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path}
}

// CookieHeader returns the Cookie header value, or "" when no header file is
// available.
func (p *FileProvider) CookieHeader() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.loadLocked(); err != nil {
		return ""
	}

	return p.headers["Cookie"]
}

// SigningSecret returns the SAPISID extracted from the cookies.
func (p *FileProvider) SigningSecret() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.loadLocked(); err != nil {
		return ""
	}

	return p.sapisid
}

// UserAgent returns the captured User-Agent, falling back to a desktop
// browser identity.
func (p *FileProvider) UserAgent() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.loadLocked(); err != nil {
		return defaultUserAgent
	}

	if ua, ok := p.headers["User-Agent"]; ok {
		return ua
	}

	return defaultUserAgent
}

// AccountID returns the brand-account id read from account_id.txt, if any.
func (p *FileProvider) AccountID() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.loadLocked(); err != nil {
		return ""
	}

	return p.accountID
}

// Wait polls for the header file to appear, at a fixed interval. This is
// availability polling, not failure recovery, so it does not back off.
func (p *FileProvider) Wait(ctx context.Context) error {
	var lastErr error

	for attempt := 0; attempt < waitAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(waitInterval):
			}
		}

		p.mu.Lock()
		lastErr = p.loadLocked()
		p.mu.Unlock()

		if lastErr == nil {
			return nil
		}
	}

	return fmt.Errorf("credentials not available: %w", lastErr)
}

// MarkSessionExpired records a server-side session rejection. Auth-gated
// calls fail fast until Reload picks up fresh credentials.
func (p *FileProvider) MarkSessionExpired() {
	p.mu.Lock()
	p.expired = true
	p.mu.Unlock()
}

// SessionExpired reports whether the current session is known rejected.
func (p *FileProvider) SessionExpired() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.expired
}

// Reload drops the cached credential set so the next lookup re-reads the
// header file. Called after a re-login; also clears a recorded session
// rejection.
func (p *FileProvider) Reload() {
	p.mu.Lock()
	p.loaded = false
	p.expired = false
	p.mu.Unlock()
}

func (p *FileProvider) loadLocked() error {
	if p.loaded {
		return nil
	}

	content, err := os.ReadFile(p.path)
	if err != nil {
		return err
	}

	headers := make(map[string]string)

	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.SplitN(line, ": ", 2)
		if len(parts) != 2 {
			continue
		}

		headers[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}

	cookies, ok := headers["Cookie"]
	if !ok {
		return fmt.Errorf("no Cookie header found in %s", p.path)
	}

	p.headers = headers
	p.sapisid = extractSAPISID(cookies)
	p.accountID = ""

	accountPath := filepath.Join(filepath.Dir(p.path), "account_id.txt")
	if accountData, accountErr := os.ReadFile(accountPath); accountErr == nil {
		p.accountID = strings.TrimSpace(string(accountData))
	}

	p.loaded = true

	return nil
}

func extractSAPISID(cookies string) string {
	for _, part := range strings.Split(cookies, ";") {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(part, "SAPISID=") {
			return strings.TrimPrefix(part, "SAPISID=")
		}
	}

	return ""
}
