package notification

import (
	"context"
	"log/slog"

	"accounts/internal/domain/service"
)

// LogNotifier writes verification mails to the structured logger instead of sending them.
type LogNotifier struct {
	renderer *Renderer
	logger   *slog.Logger
}

// NewLogNotifier constructs a logging notifier.
func NewLogNotifier(renderer *Renderer, logger *slog.Logger) *LogNotifier {
	return &LogNotifier{renderer: renderer, logger: logger}
}

// SendVerification writes the rendered mail to the logger.
func (n *LogNotifier) SendVerification(ctx context.Context, msg *service.VerificationMessage) error {
	mail, err := n.renderer.Render(msg)
	if err != nil {
		return err
	}

	n.logger.InfoContext(ctx, "verification email",
		slog.String("to", mail.To),
		slog.String("subject", mail.Subject),
		slog.String("link", msg.VerificationURL),
		slog.Bool("qr_code", len(mail.QRCode) > 0),
	)

	return nil
}
