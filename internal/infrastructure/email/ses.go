package email

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// Notifier delivers verification and reset codes over SES. Sends are
// synchronous; the caller treats a returned error as "code not delivered"
// and aborts the issuing operation.
type Notifier struct {
	client *sesv2.Client
	sender string
}

func NewNotifier(cfg aws.Config, sender string) *Notifier {
	return &Notifier{client: sesv2.NewFromConfig(cfg), sender: sender}
}

func (n *Notifier) SendVerificationCode(ctx context.Context, email, code string) error {
	subject := "Verify Your SpotJobs Account"
	html := fmt.Sprintf(
		"<h3>Welcome to SpotJobs!</h3>"+
			"<p>Please verify your email address to complete your registration.</p>"+
			"<p>Your verification code is:</p><h1><b>%s</b></h1>"+
			"<p>This code will expire in 10 minutes.</p>"+
			"<p>If you didn't create an account, please ignore this email.</p>", code)
	text := fmt.Sprintf(
		"Welcome to SpotJobs!\n\nYour verification code is: %s\n\nThis code will expire in 10 minutes.", code)

	return n.send(ctx, email, subject, html, text)
}

func (n *Notifier) SendPasswordResetCode(ctx context.Context, email, code string) error {
	subject := "Your Password Reset Code"
	html := fmt.Sprintf(
		"<h3>Password Reset Request</h3>"+
			"<p>Your code to reset your password is:</p><h1><b>%s</b></h1>"+
			"<p>This code will expire in 10 minutes.</p>", code)
	text := fmt.Sprintf(
		"Password Reset Request\n\nYour code to reset your password is: %s\n\nThis code will expire in 10 minutes.", code)

	return n.send(ctx, email, subject, html, text)
}

func (n *Notifier) send(ctx context.Context, to, subject, html, text string) error {
	_, err := n.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(n.sender),
		Destination:      &types.Destination{ToAddresses: []string{to}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(html), Charset: aws.String("UTF-8")},
					Text: &types.Content{Data: aws.String(text), Charset: aws.String("UTF-8")},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("ses send: %w", err)
	}
	return nil
}
