package identity

// User is the identity provider's view of a person.
type User struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	EmailVerified bool   `json:"email_verified"`
}

// Tokens is a provider-issued credential pair. RefreshToken may be empty.
type Tokens struct {
	AccessToken  string
	RefreshToken string
}

// Result is the outcome of a successful code exchange.
type Result struct {
	User User
	Tokens
}
