package service

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSecretGetter struct {
	mock.Mock
}

func (m *MockSecretGetter) GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	args := m.Called(ctx, aws.ToString(params.SecretId))
	output, _ := args.Get(0).(*secretsmanager.GetSecretValueOutput)
	return output, args.Error(1)
}

func TestResolverToken(t *testing.T) {
	ctx := context.Background()
	const path = "prod/postgrab/resolver"

	testCases := []struct {
		description string
		output      *secretsmanager.GetSecretValueOutput
		err         error
		expected    string
		expectErr   bool
	}{
		{"reads the token", &secretsmanager.GetSecretValueOutput{SecretString: aws.String(`{"apiToken": "s3cr3t"}`)}, nil, "s3cr3t", false},
		{"manager error", nil, errors.New("access denied"), "", true},
		{"binary secret", &secretsmanager.GetSecretValueOutput{SecretBinary: []byte("x")}, nil, "", true},
		{"not json", &secretsmanager.GetSecretValueOutput{SecretString: aws.String("s3cr3t")}, nil, "", true},
		{"missing token", &secretsmanager.GetSecretValueOutput{SecretString: aws.String(`{}`)}, nil, "", true},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			getter := &MockSecretGetter{}
			getter.On("GetSecretValue", ctx, path).Return(testCase.output, testCase.err)

			token, err := ResolverToken(ctx, getter, path)
			if testCase.expectErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, testCase.expected, token)
			}
			getter.AssertExpectations(t)
		})
	}
}
