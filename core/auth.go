package core

import "time"

// Caller represents an authenticated gateway client
type Caller struct {
	ID        string    // Unique identifier of the bearer token
	Subject   string    // Who the token was issued to
	IssuedAt  time.Time // When the token was created
	ExpiresAt time.Time // When the token expires
}

// CredentialRefreshed is emitted whenever the upstream access credential changes
type CredentialRefreshed struct {
	AppKey    string
	ExpiresAt time.Time
	Source    RefreshSource
}

// RefreshSource tells why a credential was refreshed
type RefreshSource string

const (
	// RefreshStartup is an exchange made when the process starts
	RefreshStartup RefreshSource = "startup"
	// RefreshReauth is an exchange forced by an auth error from the remote
	RefreshReauth RefreshSource = "reauth"
	// RefreshManual is an exchange requested explicitly by an operator
	RefreshManual RefreshSource = "manual"
)
