package auth

import "time"

// Organization is a registered API consumer (a bank, telco, or agency that
// calls the disclosure endpoints). Only the bcrypt hash of its API key is
// kept at rest.
type Organization struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	APIKeyHash []byte    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// Credentials is the one-time response to organization enrollment. The
// plaintext API key appears here and nowhere else.
type Credentials struct {
	OrganizationID string `json:"organization_id"`
	Name           string `json:"name"`
	APIKey         string `json:"api_key"`
}

// Token is a short-lived bearer token exchanged for an API key.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}
