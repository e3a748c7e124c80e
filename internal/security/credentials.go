// Package security holds the secrets that modules load at runtime and keeps
// them out of logs: a credential store, a redactor and a redacting slog
// handler. It also carries the per-client rate limiter and the request
// validation helpers used by the HTTP gateway.
package security

import (
	"slices"
	"sync"
)

// Service names under which the security primitives are published on the
// core.AppContext.
const (
	CredentialsService = "security.credentials"
	RedactorService    = "security.redactor"
)

// CredentialStore is a thread-safe name -> secret map. Modules register the
// API keys they were configured with so the redactor can mask them.
type CredentialStore struct {
	mu       sync.RWMutex
	creds    map[string]string
	redactor *Redactor
}

// NewCredentialStore creates an empty credential store.
func NewCredentialStore() *CredentialStore {
	return &CredentialStore{creds: make(map[string]string)}
}

// Bind attaches a redactor that is resynchronized on every change.
func (s *CredentialStore) Bind(r *Redactor) {
	s.mu.Lock()
	s.redactor = r
	s.mu.Unlock()
	s.sync()
}

// Set stores a credential, overwriting any previous value under name.
func (s *CredentialStore) Set(name, value string) {
	s.mu.Lock()
	s.creds[name] = value
	s.mu.Unlock()
	s.sync()
}

// Get returns the credential value and whether it exists.
func (s *CredentialStore) Get(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.creds[name]
	return v, ok
}

// Names returns the sorted credential names.
func (s *CredentialStore) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.creds))
	for name := range s.creds {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Values returns the non-empty credential values in no particular order.
func (s *CredentialStore) Values() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	values := make([]string, 0, len(s.creds))
	for _, v := range s.creds {
		if v != "" {
			values = append(values, v)
		}
	}
	return values
}

// Len returns the number of stored credentials.
func (s *CredentialStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.creds)
}

func (s *CredentialStore) sync() {
	s.mu.RLock()
	r := s.redactor
	s.mu.RUnlock()
	if r != nil {
		r.SyncCredentials(s)
	}
}
