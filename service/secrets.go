package service

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/pkg/errors"
	"github.com/truemediaorg/postgrab/config"
)

// SecretGetter is the part of *secretsmanager.Client we need
type SecretGetter interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// ResolverToken reads the resolver API token stored at secretPath.
func ResolverToken(ctx context.Context, client SecretGetter, secretPath string) (string, error) {
	result, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretPath),
	})
	if err != nil {
		return "", errors.Wrapf(err, "reading secret %s", secretPath)
	}
	if result == nil || result.SecretString == nil {
		return "", errors.Errorf("secret %s has no string value", secretPath)
	}

	var secrets config.ResolverSecretData
	if err := json.Unmarshal([]byte(*result.SecretString), &secrets); err != nil {
		return "", errors.Wrap(err, "resolver secrets read error")
	}
	if secrets.ApiToken == "" {
		return "", errors.Errorf("secret %s has no apiToken", secretPath)
	}
	return secrets.ApiToken, nil
}
