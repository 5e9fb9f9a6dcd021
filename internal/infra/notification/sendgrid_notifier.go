package notification

import (
	"context"
	"log/slog"
	"net/http"

	"accounts/config"
	"accounts/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const defaultSenderName = "Accounts"

// mailSender is the subset of the SendGrid client used for delivery.
type mailSender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// SendGridNotifier delivers verification mails through the SendGrid v3 API.
type SendGridNotifier struct {
	client   mailSender
	from     *mail.Email
	renderer *Renderer
	logger   *slog.Logger
}

// NewSendGridNotifier builds a notifier from the mail configuration.
func NewSendGridNotifier(cfg *config.MailConfig, renderer *Renderer, logger *slog.Logger) (*SendGridNotifier, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("sendgrid api key must be provided")
	}
	if cfg.SenderEmail == "" {
		return nil, errors.New("sendgrid sender email must be provided")
	}

	senderName := cfg.SenderName
	if senderName == "" {
		senderName = defaultSenderName
	}

	return newSendGridNotifier(sendgrid.NewSendClient(cfg.APIKey), mail.NewEmail(senderName, cfg.SenderEmail), renderer, logger), nil
}

func newSendGridNotifier(client mailSender, from *mail.Email, renderer *Renderer, logger *slog.Logger) *SendGridNotifier {
	return &SendGridNotifier{
		client:   client,
		from:     from,
		renderer: renderer,
		logger:   logger,
	}
}

// SendVerification renders and sends the verification mail. Non-2xx responses are errors.
func (n *SendGridNotifier) SendVerification(ctx context.Context, msg *service.VerificationMessage) error {
	rendered, err := n.renderer.Render(msg)
	if err != nil {
		return errors.Wrap(err, "render verification mail")
	}

	message := mail.NewSingleEmail(n.from, rendered.Subject, mail.NewEmail("", rendered.To), rendered.PlainText, rendered.HTML)
	if len(rendered.QRCode) > 0 {
		attachment := mail.NewAttachment().
			SetContent(rendered.QRCodeBase64()).
			SetType("image/png").
			SetFilename("verify.png").
			SetDisposition("inline").
			SetContentID(verificationQRContentID)
		message.AddAttachment(attachment)
	}

	response, err := n.client.SendWithContext(ctx, message)
	if err != nil {
		return errors.Wrap(err, "sendgrid send")
	}
	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return errors.Errorf("sendgrid rejected mail: status %d: %s", response.StatusCode, response.Body)
	}

	n.logger.DebugContext(ctx, "Verification email accepted", slog.String("to", rendered.To), slog.Int("status", response.StatusCode))

	return nil
}
