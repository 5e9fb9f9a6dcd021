package notification

import (
	"log/slog"
	"strings"

	"accounts/config"
	"accounts/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// NotifierParams holds dependencies for the notifier provider, injected by Fx.
type NotifierParams struct {
	fx.In

	Config    *config.Config
	QRService service.QRCodeService `optional:"true"`
	Logger    *slog.Logger
}

// NewVerificationNotifier selects the mail transport from configuration.
func NewVerificationNotifier(params NotifierParams) (service.VerificationNotifier, error) {
	var qrService service.QRCodeService
	if params.Config.QRCode != nil && params.Config.QRCode.Enabled {
		qrService = params.QRService
	}
	renderer := NewRenderer(qrService, params.Logger)

	provider := config.MailProviderLog
	if params.Config.Mail != nil && params.Config.Mail.Provider != "" {
		provider = strings.ToLower(params.Config.Mail.Provider)
	}

	switch provider {
	case config.MailProviderSendGrid:
		params.Logger.Info("Using SendGrid verification notifier")

		return NewSendGridNotifier(params.Config.Mail, renderer, params.Logger)
	case config.MailProviderLog:
		params.Logger.Info("Using log verification notifier")

		return NewLogNotifier(renderer, params.Logger), nil
	default:
		return nil, errors.Errorf("unsupported mail provider: %s", provider)
	}
}
