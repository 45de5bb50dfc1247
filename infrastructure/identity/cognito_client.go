// Package identity wraps the managed identity provider (AWS Cognito) behind
// the ports.IdentityProvider interface. Provider failures are classified
// into the application error taxonomy here; SDK error types never leave
// this package.
package identity

import (
	"context"
	"errors"

	"ntlango-api/application/ports"
	apperrors "ntlango-api/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/aws/smithy-go"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CognitoAPI is the subset of the Cognito client the wrapper uses
type CognitoAPI interface {
	SignUp(ctx context.Context, params *cognitoidentityprovider.SignUpInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.SignUpOutput, error)
	ConfirmSignUp(ctx context.Context, params *cognitoidentityprovider.ConfirmSignUpInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.ConfirmSignUpOutput, error)
	InitiateAuth(ctx context.Context, params *cognitoidentityprovider.InitiateAuthInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.InitiateAuthOutput, error)
	GlobalSignOut(ctx context.Context, params *cognitoidentityprovider.GlobalSignOutInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.GlobalSignOutOutput, error)
	UpdateUserAttributes(ctx context.Context, params *cognitoidentityprovider.UpdateUserAttributesInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.UpdateUserAttributesOutput, error)
	GetUser(ctx context.Context, params *cognitoidentityprovider.GetUserInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.GetUserOutput, error)
	ForgotPassword(ctx context.Context, params *cognitoidentityprovider.ForgotPasswordInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.ForgotPasswordOutput, error)
	ConfirmForgotPassword(ctx context.Context, params *cognitoidentityprovider.ConfirmForgotPasswordInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.ConfirmForgotPasswordOutput, error)
	DeleteUser(ctx context.Context, params *cognitoidentityprovider.DeleteUserInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.DeleteUserOutput, error)
	AdminDeleteUser(ctx context.Context, params *cognitoidentityprovider.AdminDeleteUserInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.AdminDeleteUserOutput, error)
	ResendConfirmationCode(ctx context.Context, params *cognitoidentityprovider.ResendConfirmationCodeInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.ResendConfirmationCodeOutput, error)
}

// CognitoClient implements ports.IdentityProvider on a Cognito user pool
type CognitoClient struct {
	api        CognitoAPI
	clientID   string
	userPoolID string
	logger     *zap.Logger
}

// NewCognitoClient creates a new Cognito-backed identity provider
func NewCognitoClient(api CognitoAPI, clientID, userPoolID string, logger *zap.Logger) *CognitoClient {
	return &CognitoClient{
		api:        api,
		clientID:   clientID,
		userPoolID: userPoolID,
		logger:     logger,
	}
}

// Register signs a new user up. The returned user sub is validated but only
// an acknowledgement is exposed; the account stays unusable until the email
// is confirmed.
func (c *CognitoClient) Register(ctx context.Context, input ports.RegisterInput) (*ports.Message, error) {
	params := &cognitoidentityprovider.SignUpInput{
		ClientId: aws.String(c.clientID),
		Username: aws.String(input.Email),
		Password: aws.String(input.Password),
		UserAttributes: []types.AttributeType{
			{Name: aws.String("email"), Value: aws.String(input.Email)},
			{Name: aws.String("given_name"), Value: aws.String(input.GivenName)},
			{Name: aws.String("family_name"), Value: aws.String(input.FamilyName)},
			{Name: aws.String("birthdate"), Value: aws.String(input.Birthdate)},
			{Name: aws.String("gender"), Value: aws.String(input.Gender)},
			{Name: aws.String("address"), Value: aws.String(input.Address)},
		},
	}

	out, err := c.api.SignUp(ctx, params)
	if err != nil {
		c.logger.Error("Error while registering", zap.Error(err))
		return nil, c.classify(err, "Failed to register")
	}

	if out.UserSub != nil {
		if _, err := uuid.Parse(aws.ToString(out.UserSub)); err != nil {
			c.logger.Warn("Unexpected user sub from identity provider",
				zap.String("userSub", aws.ToString(out.UserSub)))
		}
	}

	return &ports.Message{Message: "Successfully registered, confirm user"}, nil
}

// VerifyEmail confirms a freshly registered user with the emailed code
func (c *CognitoClient) VerifyEmail(ctx context.Context, email, code string) (*ports.Message, error) {
	params := &cognitoidentityprovider.ConfirmSignUpInput{
		ClientId:         aws.String(c.clientID),
		Username:         aws.String(email),
		ConfirmationCode: aws.String(code),
	}

	if _, err := c.api.ConfirmSignUp(ctx, params); err != nil {
		c.logger.Error("Error while verifying email", zap.Error(err))
		return nil, c.classify(err, "Failed to verify email")
	}

	return &ports.Message{Message: "Successfully verified email"}, nil
}

// Login authenticates with the password flow and returns the token bundle.
// An unconfirmed user triggers a best-effort resend of the verification
// email before the invalid-argument error is raised.
func (c *CognitoClient) Login(ctx context.Context, input ports.LoginInput) (*ports.UserToken, error) {
	params := &cognitoidentityprovider.InitiateAuthInput{
		ClientId: aws.String(c.clientID),
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		AuthParameters: map[string]string{
			"USERNAME": input.Email,
			"PASSWORD": input.Password,
		},
	}

	out, err := c.api.InitiateAuth(ctx, params)
	if err != nil {
		c.logger.Error("Error while logging in", zap.Error(err))

		var notConfirmed *types.UserNotConfirmedException
		if errors.As(err, &notConfirmed) {
			c.ResendVerificationEmail(ctx, input.Email)
			return nil, apperrors.NewInvalidArgumentError("Confirm your email before logging in")
		}
		return nil, c.classify(err, "Failed to login")
	}

	token := &ports.UserToken{}
	if result := out.AuthenticationResult; result != nil {
		token.AccessToken = aws.ToString(result.AccessToken)
		token.RefreshToken = aws.ToString(result.RefreshToken)
		token.IDToken = aws.ToString(result.IdToken)
		token.ExpiresIn = result.ExpiresIn
		token.TokenType = aws.ToString(result.TokenType)
	}
	return token, nil
}

// Logout revokes every token issued for the access token's session
func (c *CognitoClient) Logout(ctx context.Context, accessToken string) (*ports.Message, error) {
	params := &cognitoidentityprovider.GlobalSignOutInput{
		AccessToken: aws.String(accessToken),
	}

	if _, err := c.api.GlobalSignOut(ctx, params); err != nil {
		c.logger.Error("Error while logging out", zap.Error(err))
		return nil, c.classify(err, "Failed to logout")
	}

	return &ports.Message{Message: "Successfully logged out"}, nil
}

// UpdateUserAttributes applies the attribute changes and reads the profile
// back as a flat name/value map.
func (c *CognitoClient) UpdateUserAttributes(ctx context.Context, accessToken string, attributes []ports.UserAttribute) (map[string]string, error) {
	userAttributes := make([]types.AttributeType, 0, len(attributes))
	for _, attr := range attributes {
		userAttributes = append(userAttributes, types.AttributeType{
			Name:  aws.String(attr.Name),
			Value: aws.String(attr.Value),
		})
	}

	params := &cognitoidentityprovider.UpdateUserAttributesInput{
		AccessToken:    aws.String(accessToken),
		UserAttributes: userAttributes,
	}

	if _, err := c.api.UpdateUserAttributes(ctx, params); err != nil {
		c.logger.Error("Error while updating user attributes", zap.Error(err))
		return nil, c.classify(err, "Failed to update user attributes")
	}

	out, err := c.api.GetUser(ctx, &cognitoidentityprovider.GetUserInput{
		AccessToken: aws.String(accessToken),
	})
	if err != nil {
		c.logger.Error("Error while reading user attributes back", zap.Error(err))
		return nil, c.classify(err, "Failed to update user attributes")
	}

	user := make(map[string]string, len(out.UserAttributes))
	for _, attr := range out.UserAttributes {
		user[aws.ToString(attr.Name)] = aws.ToString(attr.Value)
	}
	return user, nil
}

// ForgotPassword starts the password-reset flow
func (c *CognitoClient) ForgotPassword(ctx context.Context, email string) (*ports.Message, error) {
	params := &cognitoidentityprovider.ForgotPasswordInput{
		ClientId: aws.String(c.clientID),
		Username: aws.String(email),
	}

	if _, err := c.api.ForgotPassword(ctx, params); err != nil {
		c.logger.Error("Error while calling forgotPassword", zap.Error(err))
		return nil, c.classify(err, "Error while calling forgotPassword")
	}

	return &ports.Message{Message: "Successfully called forgot password"}, nil
}

// ConfirmForgotPassword completes the password-reset flow
func (c *CognitoClient) ConfirmForgotPassword(ctx context.Context, email, password, code string) (*ports.Message, error) {
	params := &cognitoidentityprovider.ConfirmForgotPasswordInput{
		ClientId:         aws.String(c.clientID),
		Username:         aws.String(email),
		Password:         aws.String(password),
		ConfirmationCode: aws.String(code),
	}

	if _, err := c.api.ConfirmForgotPassword(ctx, params); err != nil {
		c.logger.Error("Error while calling confirmForgotPassword", zap.Error(err))
		return nil, c.classify(err, "Error while calling confirmForgotPassword")
	}

	return &ports.Message{Message: "Successfully confirmed update password"}, nil
}

// RemoveAccount deletes the calling user's own account
func (c *CognitoClient) RemoveAccount(ctx context.Context, accessToken string) (*ports.Message, error) {
	params := &cognitoidentityprovider.DeleteUserInput{
		AccessToken: aws.String(accessToken),
	}

	if _, err := c.api.DeleteUser(ctx, params); err != nil {
		c.logger.Error("Error while calling deleteUser", zap.Error(err))
		return nil, c.classify(err, "Failed to remove account")
	}

	return &ports.Message{Message: "Successfully removed account"}, nil
}

// AdminRemoveAccount deletes an arbitrary user from the pool
func (c *CognitoClient) AdminRemoveAccount(ctx context.Context, username string) (*ports.Message, error) {
	params := &cognitoidentityprovider.AdminDeleteUserInput{
		UserPoolId: aws.String(c.userPoolID),
		Username:   aws.String(username),
	}

	if _, err := c.api.AdminDeleteUser(ctx, params); err != nil {
		c.logger.Error("Error while calling adminDeleteUser", zap.Error(err))
		return nil, c.classify(err, "Failed to remove account")
	}

	return &ports.Message{Message: "Successfully removed account"}, nil
}

// ResendVerificationEmail re-sends the confirmation code. It is strictly
// best-effort: failures are logged and swallowed so they never override the
// caller's primary error.
func (c *CognitoClient) ResendVerificationEmail(ctx context.Context, email string) {
	params := &cognitoidentityprovider.ResendConfirmationCodeInput{
		ClientId: aws.String(c.clientID),
		Username: aws.String(email),
	}

	if _, err := c.api.ResendConfirmationCode(ctx, params); err != nil {
		c.logger.Error("Error while resending verification email",
			zap.String("email", email),
			zap.Error(err),
		)
	}
}

// classify maps a provider failure onto the error taxonomy. Parameter and
// code mistakes are the caller's fault; unknown users are not found;
// everything else is an internal failure with a generic message.
func (c *CognitoClient) classify(err error, fallback string) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "UserNotFoundException":
			return apperrors.NewResourceNotFoundError(apiErr.ErrorMessage())
		case "NotAuthorizedException",
			"InvalidParameterException",
			"InvalidPasswordException",
			"UsernameExistsException",
			"CodeMismatchException",
			"ExpiredCodeException",
			"UnexpectedParameter":
			return apperrors.NewInvalidArgumentError(apiErr.ErrorMessage())
		}
	}
	return apperrors.NewInternalError(fallback).WithCause(err)
}
