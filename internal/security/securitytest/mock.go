// Package securitytest provides test helpers for the security package.
package securitytest

import (
	"github.com/mobais/mobais/internal/security"
)

// NewTestRedactor returns a Redactor with no rules, so test strings that
// happen to look like keys are left alone.
func NewTestRedactor() *security.Redactor {
	return &security.Redactor{}
}

// NewTestCredentialStore returns a store pre-populated with key/value pairs.
// It panics on an odd number of arguments.
func NewTestCredentialStore(kvs ...string) *security.CredentialStore {
	if len(kvs)%2 != 0 {
		panic("securitytest: NewTestCredentialStore requires key, value pairs")
	}
	store := security.NewCredentialStore()
	for i := 0; i < len(kvs); i += 2 {
		store.Set(kvs[i], kvs[i+1])
	}
	return store
}
