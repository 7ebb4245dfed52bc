package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/GaleriaDecor/api-arquiteto/internal/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// secretsAPI é o subconjunto do cliente do Secrets Manager usado aqui.
type secretsAPI interface {
	GetSecretValue(ctx context.Context, in *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

func novoClienteSecrets(ctx context.Context) (secretsAPI, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("carregar config aws: %w", err)
	}
	return secretsmanager.NewFromConfig(cfg), nil
}

// retrieveCredentials usa DB_USERNAME/DB_PASSWORD quando presentes; senão busca o segredo.
func retrieveCredentials(ctx context.Context, cfg config.DB, cliente func(context.Context) (secretsAPI, error)) (Credentials, error) {
	if cfg.Usuario != "" && cfg.Senha != "" {
		return Credentials{Username: cfg.Usuario, Password: cfg.Senha}, nil
	}
	if cfg.SecretID == "" {
		return Credentials{}, errors.New("defina DB_USERNAME/DB_PASSWORD ou DB_SECRET_ID")
	}

	api, err := cliente(ctx)
	if err != nil {
		return Credentials{}, err
	}
	out, err := api.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(cfg.SecretID),
		VersionStage: aws.String("AWSCURRENT"),
	})
	if err != nil {
		return Credentials{}, fmt.Errorf("buscar segredo %s: %w", cfg.SecretID, err)
	}
	if out.SecretString == nil {
		return Credentials{}, fmt.Errorf("segredo %s sem SecretString", cfg.SecretID)
	}

	var c Credentials
	if err := json.Unmarshal([]byte(aws.ToString(out.SecretString)), &c); err != nil {
		return Credentials{}, fmt.Errorf("decodificar segredo: %w", err)
	}
	return c, nil
}
