package auth

// DevTokenRequest optionally names the subject of a dev token.
type DevTokenRequest struct {
	UserID string `json:"userId"`
}

type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"`
	UserID      string `json:"userId"`
}
