package domain

// TokenPair is the credential pair the client holds for the signed-in user.
// Either half may be empty.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// IsZero reports whether neither token is present.
func (p TokenPair) IsZero() bool {
	return p.AccessToken == "" && p.RefreshToken == ""
}
