package notifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/rs/zerolog/log"

	config "github.com/Wesley-SdS/modern-ecommerce/configs"
	"github.com/Wesley-SdS/modern-ecommerce/internal/money"
)

// SESAPI is the slice of the SES client the notifier uses.
type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type EmailNotifier struct {
	client SESAPI
	sender string
	locale string
}

func NewEmailNotifier(client SESAPI, sender string) *EmailNotifier {
	return &EmailNotifier{client: client, sender: sender, locale: "pt-BR"}
}

// NewSESNotifier builds the SES client from static credentials when given,
// the default AWS chain otherwise.
func NewSESNotifier(ctx context.Context, cfg config.EmailConfig) (*EmailNotifier, error) {
	if cfg.SenderEmail == "" {
		return nil, errors.New("sender email address is not configured")
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.AWSRegion)}
	if cfg.AWSAccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	return NewEmailNotifier(ses.NewFromConfig(awsCfg), cfg.SenderEmail), nil
}

func (e *EmailNotifier) NotifyOrderPaid(ctx context.Context, n OrderNotice) error {
	if n.Email == "" {
		return errors.New("recipient email address is empty")
	}

	total := money.FormatCentsIn(n.TotalCents, n.Currency, e.locale)
	subject := fmt.Sprintf("Order #%s Confirmation - Thank You for Your Purchase!", n.OrderID)

	bodyHTML := fmt.Sprintf(`
        <html>
        <body>
            <p>Dear %s,</p>
            <p>Thank you for your order! Your payment for order #%s has been confirmed.</p>
            <p><strong>Order Details:</strong></p>
            <ul>
                <li>Order ID: %s</li>
                <li>Total Amount: %s</li>
            </ul>
            <p>We'll send you another email when your order ships.</p>
            <p>Best regards,</p>
            <p>Your E-commerce Team</p>
        </body>
        </html>`, n.CustomerName, n.OrderID, n.OrderID, total)

	bodyText := fmt.Sprintf(
		"Dear %s,\n\nThank you for your order! Your payment for order #%s has been confirmed.\n\n"+
			"Order Details:\nOrder ID: %s\nTotal Amount: %s\n\n"+
			"We'll send you another email when your order ships.\n\nBest regards,\nYour E-commerce Team",
		n.CustomerName, n.OrderID, n.OrderID, total)

	input := &ses.SendEmailInput{
		Source: aws.String(e.sender),
		Destination: &types.Destination{
			ToAddresses: []string{n.Email},
		},
		Message: &types.Message{
			Subject: &types.Content{Charset: aws.String("UTF-8"), Data: aws.String(subject)},
			Body: &types.Body{
				Html: &types.Content{Charset: aws.String("UTF-8"), Data: aws.String(bodyHTML)},
				Text: &types.Content{Charset: aws.String("UTF-8"), Data: aws.String(bodyText)},
			},
		},
	}

	if _, err := e.client.SendEmail(ctx, input); err != nil {
		log.Error().Err(err).Str("order_id", n.OrderID).Str("to", n.Email).Msg("order email failed")
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Info().Str("order_id", n.OrderID).Str("to", n.Email).Msg("order confirmation email sent")
	return nil
}
