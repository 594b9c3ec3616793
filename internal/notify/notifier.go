// Package notify delivers customer notifications.
package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"strings"

	"github.com/SergeyBogomolovv/storefront-service/internal/entities"
)

type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<!doctype html>
<html>
<body>
<p>Hi {{.Name}},</p>
<p>Thank you for your order <b>{{.OrderID}}</b>.</p>
<table>
<tr><th align="left">Item</th><th>Qty</th><th align="right">Price</th><th align="right">Total</th></tr>
{{range .Items}}<tr><td>{{.Name}}{{if .Size}} ({{.Size}}){{end}}</td><td align="center">{{.Quantity}}</td><td align="right">{{.UnitPrice}}</td><td align="right">{{.LineTotal}}</td></tr>
{{end}}</table>
<p>Subtotal: {{.Subtotal}}<br>Tax: {{.Tax}}<br>Shipping: {{.ShippingCost}}<br><b>Total: {{.Total}}</b></p>
<p>Ships to:<br>
{{with .Shipping}}{{.FullName}}<br>{{.Line1}}<br>{{if .Line2}}{{.Line2}}<br>{{end}}{{.City}}{{if .Region}}, {{.Region}}{{end}} {{.PostalCode}}<br>{{.Country}}{{end}}</p>
</body>
</html>
`))

type notifier struct {
	logger *slog.Logger
	mailer Mailer
}

func NewNotifier(logger *slog.Logger, mailer Mailer) *notifier {
	return &notifier{
		logger: logger.With(slog.String("service", "notifier")),
		mailer: mailer,
	}
}

// SendOrderConfirmation emails the order summary. Events without an email are skipped.
func (n *notifier) SendOrderConfirmation(ctx context.Context, event entities.OrderConfirmation) error {
	logger := n.logger.With(slog.String("order_id", event.OrderID))

	if strings.TrimSpace(event.Email) == "" {
		logger.Warn("confirmation skipped: no email")
		return nil
	}

	var body bytes.Buffer
	if err := confirmationTmpl.Execute(&body, event); err != nil {
		return fmt.Errorf("failed to render confirmation: %w", err)
	}

	subject := fmt.Sprintf("Order %s confirmed", event.OrderID)
	if err := n.mailer.Send(ctx, event.Email, subject, body.String()); err != nil {
		return fmt.Errorf("failed to send confirmation: %w", err)
	}

	logger.Info("confirmation sent")
	return nil
}
