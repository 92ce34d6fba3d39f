package service

import (
	"context"
	"errors"
	"log/slog"

	"portal_creditos/internal/config"
	"portal_creditos/internal/middleware"
	"portal_creditos/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/aws/smithy-go"
)

// SESMailer envía correos a través de AWS SES.
type SESMailer struct {
	client *sesv2.Client
	cfg    *config.SESConfig
}

// NewSESMailer arma el cliente SES según el método de autenticación configurado.
func NewSESMailer(cfg *config.Config) Mailer {
	var awsCfgOpts []func(*awsconfig.LoadOptions) error
	awsCfgOpts = append(awsCfgOpts, awsconfig.WithRegion(cfg.SES.Region))

	switch cfg.SES.AuthType {
	case "static_credentials":
		slog.Info("Configuring SES with static credentials.")
		if cfg.SES.AccessKeyID == "" || cfg.SES.SecretAccessKey == "" {
			slog.Error("SES auth_type is 'static_credentials' but access_key_id or secret_access_key is missing in config.")
			panic("missing static credentials for SES")
		}
		creds := credentials.NewStaticCredentialsProvider(
			cfg.SES.AccessKeyID,
			cfg.SES.SecretAccessKey,
			"",
		)
		awsCfgOpts = append(awsCfgOpts, awsconfig.WithCredentialsProvider(creds))

	case "iam_role":
		slog.Info("Configuring SES with IAM Role credentials.")

	default:
		slog.Warn("Unknown SES auth_type specified, defaulting to IAM Role.", "type", cfg.SES.AuthType)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsCfgOpts...)
	if err != nil {
		slog.Error("Failed to load AWS config for SES", "error", err)
		panic(err)
	}

	return &SESMailer{
		client: sesv2.NewFromConfig(awsCfg),
		cfg:    &cfg.SES,
	}
}

func (m *SESMailer) Send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	logger := middleware.GetLogger(ctx)

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(m.cfg.From),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	_, err := m.client.SendEmail(ctx, input)
	if err != nil {
		logger.Error("Failed to send email via SES", "error", err, "to", to)
		return classifySESError(err)
	}

	logger.Info("Email sent successfully via SES", "to", to, "subject", subject)
	return nil
}

// classifySESError mapea los errores tipados de SES a las categorías de transporte.
func classifySESError(err error) error {
	var rejected *types.MessageRejected
	if errors.As(err, &rejected) {
		return model.NewMailError(model.MailErrSenderRejected, err)
	}
	var notFound *types.MailFromDomainNotVerifiedException
	if errors.As(err, &notFound) {
		return model.NewMailError(model.MailErrSenderRejected, err)
	}
	var limited *types.TooManyRequestsException
	if errors.As(err, &limited) {
		return model.NewMailError(model.MailErrRateLimited, err)
	}
	var paused *types.SendingPausedException
	if errors.As(err, &paused) {
		return model.NewMailError(model.MailErrRateLimited, err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "UnrecognizedClientException", "InvalidClientTokenId", "SignatureDoesNotMatch", "AccessDeniedException":
			return model.NewMailError(model.MailErrAuth, err)
		}
	}
	return model.NewMailError(model.MailErrUnknown, err)
}
