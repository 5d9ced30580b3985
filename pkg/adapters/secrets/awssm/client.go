package awssm

import (
	"context"
	"errors"
	"fmt"

	"github.com/aescanero/listservice/internal/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/aws/smithy-go"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// GetSecretValueAPI is the slice of the Secrets Manager API used by Client
type GetSecretValueAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// Client implements config.SecretStore on top of AWS Secrets Manager
type Client struct {
	api    GetSecretValueAPI
	logger *zap.Logger
}

// New creates a client for region using the default AWS credential chain
func New(ctx context.Context, region string, logger *zap.Logger) (*Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load AWS config: %v", config.ErrSecretTransport, err)
	}

	return NewWithAPI(secretsmanager.NewFromConfig(awsCfg), logger), nil
}

// NewWithAPI creates a client around an existing API implementation
func NewWithAPI(api GetSecretValueAPI, logger *zap.Logger) *Client {
	return &Client{
		api:    api,
		logger: logger,
	}
}

// FetchSecret retrieves secretID and decodes it as a flat JSON object.
// Non-string values are returned as their raw JSON text.
func (c *Client) FetchSecret(ctx context.Context, secretID string) (map[string]string, error) {
	c.logger.Debug("fetching secret", zap.String("secret_id", secretID))

	out, err := c.api.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretID),
	})
	if err != nil {
		return nil, classify(err)
	}

	if out.SecretString == nil {
		return nil, fmt.Errorf("%w: secret %s has no string value", config.ErrSecretMalformed, secretID)
	}

	values, err := decode(*out.SecretString)
	if err != nil {
		return nil, fmt.Errorf("%w: secret %s: %v", config.ErrSecretMalformed, secretID, err)
	}

	c.logger.Info("fetched secret",
		zap.String("secret_id", secretID),
		zap.Int("keys", len(values)))

	return values, nil
}

func decode(raw string) (map[string]string, error) {
	if !gjson.Valid(raw) {
		return nil, errors.New("invalid JSON")
	}

	doc := gjson.Parse(raw)
	if !doc.IsObject() {
		return nil, fmt.Errorf("expected JSON object, got %s", doc.Type)
	}

	values := make(map[string]string)
	doc.ForEach(func(key, value gjson.Result) bool {
		if value.Type == gjson.String {
			values[key.String()] = value.String()
		} else {
			values[key.String()] = value.Raw
		}
		return true
	})

	return values, nil
}

// classify maps an API error onto the config secret sentinels
func classify(err error) error {
	var notFound *types.ResourceNotFoundException
	if errors.As(err, &notFound) {
		return fmt.Errorf("%w: %v", config.ErrSecretNotFound, err)
	}

	var decryption *types.DecryptionFailure
	if errors.As(err, &decryption) {
		return fmt.Errorf("%w: %v", config.ErrSecretAccess, err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "AccessDeniedException" {
		return fmt.Errorf("%w: %v", config.ErrSecretAccess, err)
	}

	return fmt.Errorf("%w: %v", config.ErrSecretTransport, err)
}
