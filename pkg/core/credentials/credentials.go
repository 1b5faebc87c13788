// Package credentials holds the secrets requests are authenticated with.
package credentials

import "sync"

// Credentials is a snapshot of what the client currently knows about the user.
type Credentials struct {
	APIKey   string
	Username string
	Password string
	Token    string
}

// Provider hands out the current credentials on demand.
type Provider interface {
	UserCredentials() Credentials
}

// Manager is an in-memory Provider safe for concurrent use.
type Manager struct {
	mu    sync.RWMutex
	creds Credentials
}

// NewManager creates a Manager seeded with an API key (which may be empty).
func NewManager(apiKey string) *Manager {
	return &Manager{creds: Credentials{APIKey: apiKey}}
}

// UserCredentials returns a copy of the stored credentials.
func (m *Manager) UserCredentials() Credentials {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.creds
}

// SetAPIKey replaces the consumer API key.
func (m *Manager) SetAPIKey(apiKey string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds.APIKey = apiKey
}

// SetLogin stores the username and password used by Login.
func (m *Manager) SetLogin(username, password string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds.Username = username
	m.creds.Password = password
}

// SetToken stores the bearer token returned by /login.
func (m *Manager) SetToken(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds.Token = token
}

// ClearToken forgets the bearer token, keeping the key and login.
func (m *Manager) ClearToken() {
	m.SetToken("")
}

// Static is a fixed Provider, handy when nothing ever changes.
type Static Credentials

// UserCredentials returns the static credentials.
func (s Static) UserCredentials() Credentials { return Credentials(s) }
