package ports

import "context"

// RegisterInput carries the attributes collected at sign-up
type RegisterInput struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	GivenName  string `json:"given_name" validate:"required"`
	FamilyName string `json:"family_name" validate:"required"`
	Birthdate  string `json:"birthdate" validate:"required"`
	Gender     string `json:"gender" validate:"required"`
	Address    string `json:"address" validate:"required"`
}

// LoginInput carries the credentials for password authentication
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// UserToken is the token bundle issued by the identity provider on login
type UserToken struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	IDToken      string `json:"idToken"`
	ExpiresIn    int32  `json:"expiresIn"`
	TokenType    string `json:"tokenType"`
}

// Message is a plain acknowledgement payload
type Message struct {
	Message string `json:"message"`
}

// UserAttribute is one name/value pair of a user profile
type UserAttribute struct {
	Name  string `json:"Name" validate:"required"`
	Value string `json:"Value" validate:"required"`
}

// IdentityProvider is the narrow interface to the managed identity service.
// Implementations classify provider failures into the application error
// taxonomy; they never leak SDK error types.
type IdentityProvider interface {
	Register(ctx context.Context, input RegisterInput) (*Message, error)
	VerifyEmail(ctx context.Context, email, code string) (*Message, error)
	Login(ctx context.Context, input LoginInput) (*UserToken, error)
	Logout(ctx context.Context, accessToken string) (*Message, error)
	UpdateUserAttributes(ctx context.Context, accessToken string, attributes []UserAttribute) (map[string]string, error)
	ForgotPassword(ctx context.Context, email string) (*Message, error)
	ConfirmForgotPassword(ctx context.Context, email, password, code string) (*Message, error)
	RemoveAccount(ctx context.Context, accessToken string) (*Message, error)
	AdminRemoveAccount(ctx context.Context, username string) (*Message, error)
	// ResendVerificationEmail is best-effort: implementations log failures
	// and never let them override a caller's primary error.
	ResendVerificationEmail(ctx context.Context, email string)
}
