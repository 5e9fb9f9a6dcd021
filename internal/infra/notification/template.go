// Package notification delivers verification emails.
package notification

import (
	"bytes"
	"encoding/base64"
	"html/template"
	"log/slog"
	"strings"

	"accounts/internal/domain/service"
)

const (
	// VerificationSubject is the subject line of every verification email.
	VerificationSubject = "Verify email"

	verificationQRContentID = "verify-qr"
)

var verificationHTML = template.Must(template.New("verification").Parse(
	`<a target="_blank" href="{{.URL}}">Click verify email</a>` +
		`{{if .QRCode}}<p><img src="cid:` + verificationQRContentID + `" alt="Verification QR code"/></p>{{end}}`,
))

// Mail is a rendered verification email.
type Mail struct {
	To        string
	Subject   string
	PlainText string
	HTML      string
	// QRCode is an optional PNG of the verification link.
	QRCode []byte
}

// QRCodeBase64 returns the inline attachment content.
func (m *Mail) QRCodeBase64() string {
	return base64.StdEncoding.EncodeToString(m.QRCode)
}

// Renderer turns verification messages into mails.
type Renderer struct {
	qrService service.QRCodeService
	logger    *slog.Logger
}

// NewRenderer builds a Renderer. qrService may be nil to disable QR codes.
func NewRenderer(qrService service.QRCodeService, logger *slog.Logger) *Renderer {
	return &Renderer{qrService: qrService, logger: logger}
}

// Render builds the verification mail for msg.
func (r *Renderer) Render(msg *service.VerificationMessage) (*Mail, error) {
	mail := &Mail{
		To:        msg.Email,
		Subject:   VerificationSubject,
		PlainText: "Open this link to verify your email: " + msg.VerificationURL,
	}

	if r.qrService != nil {
		png, err := r.qrService.GenerateLinkQR(msg.VerificationURL)
		if err != nil {
			// The link alone is enough to verify.
			r.logger.Warn("Failed to render verification QR code", slog.Any("error", err))
		} else {
			mail.QRCode = png
		}
	}

	var html bytes.Buffer
	err := verificationHTML.Execute(&html, struct {
		URL    string
		QRCode bool
	}{URL: msg.VerificationURL, QRCode: len(mail.QRCode) > 0})
	if err != nil {
		return nil, err //nolint:wrapcheck // template errors carry their own context
	}
	mail.HTML = strings.TrimSpace(html.String())

	return mail, nil
}
