package identity

import (
	"context"
	"testing"

	"ntlango-api/application/ports"
	apperrors "ntlango-api/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockCognito struct {
	mock.Mock
}

func (m *mockCognito) SignUp(ctx context.Context, params *cognitoidentityprovider.SignUpInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.SignUpOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*cognitoidentityprovider.SignUpOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCognito) ConfirmSignUp(ctx context.Context, params *cognitoidentityprovider.ConfirmSignUpInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.ConfirmSignUpOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*cognitoidentityprovider.ConfirmSignUpOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCognito) InitiateAuth(ctx context.Context, params *cognitoidentityprovider.InitiateAuthInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.InitiateAuthOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*cognitoidentityprovider.InitiateAuthOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCognito) GlobalSignOut(ctx context.Context, params *cognitoidentityprovider.GlobalSignOutInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.GlobalSignOutOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*cognitoidentityprovider.GlobalSignOutOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCognito) UpdateUserAttributes(ctx context.Context, params *cognitoidentityprovider.UpdateUserAttributesInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.UpdateUserAttributesOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*cognitoidentityprovider.UpdateUserAttributesOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCognito) GetUser(ctx context.Context, params *cognitoidentityprovider.GetUserInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.GetUserOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*cognitoidentityprovider.GetUserOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCognito) ForgotPassword(ctx context.Context, params *cognitoidentityprovider.ForgotPasswordInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.ForgotPasswordOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*cognitoidentityprovider.ForgotPasswordOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCognito) ConfirmForgotPassword(ctx context.Context, params *cognitoidentityprovider.ConfirmForgotPasswordInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.ConfirmForgotPasswordOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*cognitoidentityprovider.ConfirmForgotPasswordOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCognito) DeleteUser(ctx context.Context, params *cognitoidentityprovider.DeleteUserInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.DeleteUserOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*cognitoidentityprovider.DeleteUserOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCognito) AdminDeleteUser(ctx context.Context, params *cognitoidentityprovider.AdminDeleteUserInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.AdminDeleteUserOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*cognitoidentityprovider.AdminDeleteUserOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCognito) ResendConfirmationCode(ctx context.Context, params *cognitoidentityprovider.ResendConfirmationCodeInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.ResendConfirmationCodeOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*cognitoidentityprovider.ResendConfirmationCodeOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func newTestClient(t *testing.T) (*CognitoClient, *mockCognito) {
	t.Helper()
	api := &mockCognito{}
	return NewCognitoClient(api, "client-id", "pool-id", zap.NewNop()), api
}

func TestRegisterReturnsConfirmationMessage(t *testing.T) {
	client, api := newTestClient(t)

	api.On("SignUp", mock.Anything, mock.MatchedBy(func(in *cognitoidentityprovider.SignUpInput) bool {
		return aws.ToString(in.ClientId) == "client-id" && aws.ToString(in.Username) == "user@example.com"
	})).Return(&cognitoidentityprovider.SignUpOutput{
		UserSub: aws.String("0e4cbe42-3f3b-4f67-8a5c-7d9a6a1f1f11"),
	}, nil)

	msg, err := client.Register(context.Background(), ports.RegisterInput{
		Email:      "user@example.com",
		Password:   "secret-1",
		GivenName:  "Ada",
		FamilyName: "Lovelace",
		Birthdate:  "1990-12-10",
		Gender:     "female",
		Address:    "1 Analytical Way",
	})

	require.NoError(t, err)
	assert.Equal(t, "Successfully registered, confirm user", msg.Message)
}

func TestRegisterDuplicateUsernameIsInvalidArgument(t *testing.T) {
	client, api := newTestClient(t)

	api.On("SignUp", mock.Anything, mock.Anything).
		Return(nil, &types.UsernameExistsException{Message: aws.String("User already exists")})

	_, err := client.Register(context.Background(), ports.RegisterInput{Email: "user@example.com", Password: "secret-1"})

	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidArgument(err))
	assert.Equal(t, "User already exists", apperrors.GetAppError(err).Message)
}

func TestLoginReturnsTokenBundle(t *testing.T) {
	client, api := newTestClient(t)

	api.On("InitiateAuth", mock.Anything, mock.MatchedBy(func(in *cognitoidentityprovider.InitiateAuthInput) bool {
		return in.AuthFlow == types.AuthFlowTypeUserPasswordAuth &&
			in.AuthParameters["USERNAME"] == "user@example.com"
	})).Return(&cognitoidentityprovider.InitiateAuthOutput{
		AuthenticationResult: &types.AuthenticationResultType{
			AccessToken:  aws.String("access"),
			RefreshToken: aws.String("refresh"),
			IdToken:      aws.String("id"),
			ExpiresIn:    3600,
			TokenType:    aws.String("Bearer"),
		},
	}, nil)

	token, err := client.Login(context.Background(), ports.LoginInput{Email: "user@example.com", Password: "secret-1"})

	require.NoError(t, err)
	assert.Equal(t, "access", token.AccessToken)
	assert.Equal(t, "refresh", token.RefreshToken)
	assert.Equal(t, "id", token.IDToken)
	assert.Equal(t, int32(3600), token.ExpiresIn)
	assert.Equal(t, "Bearer", token.TokenType)
}

func TestLoginUnconfirmedUserResendsVerification(t *testing.T) {
	client, api := newTestClient(t)

	api.On("InitiateAuth", mock.Anything, mock.Anything).
		Return(nil, &types.UserNotConfirmedException{Message: aws.String("not confirmed")})
	api.On("ResendConfirmationCode", mock.Anything, mock.MatchedBy(func(in *cognitoidentityprovider.ResendConfirmationCodeInput) bool {
		return aws.ToString(in.Username) == "user@example.com"
	})).Return(&cognitoidentityprovider.ResendConfirmationCodeOutput{}, nil)

	_, err := client.Login(context.Background(), ports.LoginInput{Email: "user@example.com", Password: "secret-1"})

	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidArgument(err))
	assert.Equal(t, "Confirm your email before logging in", apperrors.GetAppError(err).Message)
	api.AssertNumberOfCalls(t, "ResendConfirmationCode", 1)
}

func TestLoginUnknownUserIsNotFound(t *testing.T) {
	client, api := newTestClient(t)

	api.On("InitiateAuth", mock.Anything, mock.Anything).
		Return(nil, &types.UserNotFoundException{Message: aws.String("User does not exist.")})

	_, err := client.Login(context.Background(), ports.LoginInput{Email: "ghost@example.com", Password: "secret-1"})

	require.Error(t, err)
	assert.True(t, apperrors.IsResourceNotFound(err))
}

func TestLogoutSignsOutGlobally(t *testing.T) {
	client, api := newTestClient(t)

	api.On("GlobalSignOut", mock.Anything, mock.MatchedBy(func(in *cognitoidentityprovider.GlobalSignOutInput) bool {
		return aws.ToString(in.AccessToken) == "access-token"
	})).Return(&cognitoidentityprovider.GlobalSignOutOutput{}, nil)

	msg, err := client.Logout(context.Background(), "access-token")

	require.NoError(t, err)
	assert.Equal(t, "Successfully logged out", msg.Message)
}

func TestUpdateUserAttributesReadsProfileBack(t *testing.T) {
	client, api := newTestClient(t)

	api.On("UpdateUserAttributes", mock.Anything, mock.Anything).
		Return(&cognitoidentityprovider.UpdateUserAttributesOutput{}, nil)
	api.On("GetUser", mock.Anything, mock.Anything).
		Return(&cognitoidentityprovider.GetUserOutput{
			UserAttributes: []types.AttributeType{
				{Name: aws.String("given_name"), Value: aws.String("Ada")},
				{Name: aws.String("address"), Value: aws.String("2 Engine Road")},
			},
		}, nil)

	user, err := client.UpdateUserAttributes(context.Background(), "access-token", []ports.UserAttribute{
		{Name: "address", Value: "2 Engine Road"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Ada", user["given_name"])
	assert.Equal(t, "2 Engine Road", user["address"])
}

func TestConfirmForgotPasswordBadCodeIsInvalidArgument(t *testing.T) {
	client, api := newTestClient(t)

	api.On("ConfirmForgotPassword", mock.Anything, mock.Anything).
		Return(nil, &types.CodeMismatchException{Message: aws.String("Invalid verification code provided, please try again.")})

	_, err := client.ConfirmForgotPassword(context.Background(), "user@example.com", "new-secret", "000000")

	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidArgument(err))
}

func TestAdminRemoveAccountTargetsUserPool(t *testing.T) {
	client, api := newTestClient(t)

	api.On("AdminDeleteUser", mock.Anything, mock.MatchedBy(func(in *cognitoidentityprovider.AdminDeleteUserInput) bool {
		return aws.ToString(in.UserPoolId) == "pool-id" && aws.ToString(in.Username) == "someone"
	})).Return(&cognitoidentityprovider.AdminDeleteUserOutput{}, nil)

	msg, err := client.AdminRemoveAccount(context.Background(), "someone")

	require.NoError(t, err)
	assert.Equal(t, "Successfully removed account", msg.Message)
}

func TestResendVerificationEmailSwallowsFailures(t *testing.T) {
	client, api := newTestClient(t)

	api.On("ResendConfirmationCode", mock.Anything, mock.Anything).
		Return(nil, &types.LimitExceededException{Message: aws.String("limit exceeded")})

	// Must not panic or surface the error.
	client.ResendVerificationEmail(context.Background(), "user@example.com")
	api.AssertNumberOfCalls(t, "ResendConfirmationCode", 1)
}

func TestUnknownProviderFailureIsInternal(t *testing.T) {
	client, api := newTestClient(t)

	api.On("ForgotPassword", mock.Anything, mock.Anything).
		Return(nil, &types.InternalErrorException{Message: aws.String("boom")})

	_, err := client.ForgotPassword(context.Background(), "user@example.com")

	require.Error(t, err)
	assert.True(t, apperrors.IsInternal(err))
	assert.Equal(t, "Error while calling forgotPassword", apperrors.GetAppError(err).Message)
}
