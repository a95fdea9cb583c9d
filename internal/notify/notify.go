// Copyright Sigma Labs Ltd., 2026. All rights reserved.

// Package notify sends the pipeline start and end status emails over SES.
package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/sigmalabs/pharmazer/pkg/types"
)

const subject = "Automated PharmaZer Pipeline Notification"

const bodyTemplate = `<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; background-color: #F8F9FA; padding: 20px; }
        h1 { color: #FF9900; text-align: center; margin-bottom: 20px; }
        p { line-height: 1.6; margin-bottom: 10px; }
    </style>
</head>
<body>
    <h1>Pipeline Notification</h1>
    <p>%s</p>
</body>
</html>`

// Notifier sends status emails. The zero-value Notifier (no sender or
// recipient configured) silently sends nothing.
type Notifier struct {
	ses       *sesv2.Client
	sender    string
	recipient string
}

// New builds a notifier from config. When sender or recipient is empty the
// notifier is a no-op.
func New(ctx context.Context, cfg types.NotifyConfig, accessKeyID, secretAccessKey string) (*Notifier, error) {
	if cfg.Sender == "" || cfg.Recipient == "" {
		return &Notifier{}, nil
	}

	awscfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("loading AWS configuration: %w", err)
	}

	return &Notifier{
		ses:       sesv2.NewFromConfig(awscfg),
		sender:    cfg.Sender,
		recipient: cfg.Recipient,
	}, nil
}

// Started announces that the pipeline found filename and is starting.
func (n *Notifier) Started(ctx context.Context, filename string) error {
	return n.send(ctx, fmt.Sprintf("%s found - Pipeline starting...", filename))
}

// Finished announces that filename was created and uploaded.
func (n *Notifier) Finished(ctx context.Context, filename string) error {
	return n.send(ctx, fmt.Sprintf("%s has been created and uploaded to the output bucket!", filename))
}

func (n *Notifier) send(ctx context.Context, message string) error {
	if n.ses == nil {
		return nil
	}

	html := fmt.Sprintf(bodyTemplate, message)

	_, err := n.ses.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(n.sender),
		Destination: &sestypes.Destination{
			ToAddresses: []string{n.recipient},
		},
		Content: &sestypes.EmailContent{
			Simple: &sestypes.Message{
				Subject: &sestypes.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &sestypes.Body{
					Html: &sestypes.Content{
						Data:    aws.String(html),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("sending notification email: %w", err)
	}
	return nil
}
