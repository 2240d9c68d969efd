package entity

// TokenPayload is the identity signed into access and refresh tokens.
type TokenPayload struct {
	UserID string
	Email  string
}
