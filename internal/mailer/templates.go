package mailer

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/presyo/backend/internal/model"
	"github.com/presyo/backend/pkg/currency"
)

// TemplateID identifies one of the alert email variants. The set is closed:
// templates resolve through the lookup table below, never through file paths.
type TemplateID string

const (
	TemplatePriceBelow  TemplateID = "alert-below"
	TemplatePriceAbove  TemplateID = "alert-above"
	TemplatePriceChange TemplateID = "alert-change"
)

// TemplateData carries the placeholder values substituted into a template.
// Prices arrive pre-formatted per unit (e.g. "₱45.00/kg") so templates stay
// free of money logic.
type TemplateData struct {
	ProductName string
	OldPrice    string
	NewPrice    string
	TargetPrice string
}

const baseLayout = `<html>
<body style="font-family: sans-serif; color: #1f2937;">
  <h2>%s</h2>
  %s
  <p style="color:#6b7280; font-size:12px;">
    You are receiving this because you subscribed to price alerts on Presyo.
    Manage your alerts from the alerts page using this email address.
  </p>
</body>
</html>`

var templateBodies = map[TemplateID]string{
	TemplatePriceBelow: `<p>Good news! <strong>{{.ProductName}}</strong> has dropped below your target price.</p>
  <ul>
    <li>Your target: {{.TargetPrice}}</li>
    <li>Price now: <strong>{{.NewPrice}}</strong> (was {{.OldPrice}})</li>
  </ul>`,
	TemplatePriceAbove: `<p>Heads up: <strong>{{.ProductName}}</strong> has risen above your target price.</p>
  <ul>
    <li>Your target: {{.TargetPrice}}</li>
    <li>Price now: <strong>{{.NewPrice}}</strong> (was {{.OldPrice}})</li>
  </ul>`,
	TemplatePriceChange: `<p>The price of <strong>{{.ProductName}}</strong> has changed.</p>
  <ul>
    <li>Previous: {{.OldPrice}}</li>
    <li>Now: <strong>{{.NewPrice}}</strong></li>
  </ul>`,
}

var templateSubjects = map[TemplateID]string{
	TemplatePriceBelow:  "Price drop: %s is now %s",
	TemplatePriceAbove:  "Price increase: %s is now %s",
	TemplatePriceChange: "Price update: %s is now %s",
}

var templates = func() map[TemplateID]*template.Template {
	parsed := make(map[TemplateID]*template.Template, len(templateBodies))
	for id, body := range templateBodies {
		parsed[id] = template.Must(template.New(string(id)).Parse(body))
	}
	return parsed
}()

// TemplateForAlertType maps an alert type to its email variant.
func TemplateForAlertType(t model.AlertType) (TemplateID, error) {
	switch t {
	case model.AlertTypeBelow:
		return TemplatePriceBelow, nil
	case model.AlertTypeAbove:
		return TemplatePriceAbove, nil
	case model.AlertTypeChange:
		return TemplatePriceChange, nil
	}
	return "", fmt.Errorf("no template for alert type %q", t)
}

// Render produces the subject and HTML body for a template.
func Render(id TemplateID, data TemplateData) (subject, body string, err error) {
	tmpl, ok := templates[id]
	if !ok {
		return "", "", fmt.Errorf("unknown template %q", id)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("render template %s: %w", id, err)
	}

	subject = fmt.Sprintf(templateSubjects[id], data.ProductName, data.NewPrice)
	body = fmt.Sprintf(baseLayout, subject, buf.String())
	return subject, body, nil
}

// AlertMailer formats a fired alert and hands it to the transport.
type AlertMailer struct {
	sender EmailSender
}

// NewAlertMailer creates an alert mailer over the given transport.
func NewAlertMailer(sender EmailSender) *AlertMailer {
	return &AlertMailer{sender: sender}
}

// Notify renders the email for a firing and delivers it to the subscriber.
func (m *AlertMailer) Notify(recipient string, fired model.FiredAlert) error {
	id, err := TemplateForAlertType(fired.Alert.AlertType)
	if err != nil {
		return err
	}

	unit := fired.Product.Unit
	data := TemplateData{
		ProductName: fired.Product.DisplayName(),
		OldPrice:    currency.Peso(fired.OldPrice).FormatPerUnit(unit),
		NewPrice:    currency.Peso(fired.NewPrice).FormatPerUnit(unit),
		TargetPrice: currency.Peso(fired.Alert.TargetPrice).FormatPerUnit(unit),
	}

	subject, body, err := Render(id, data)
	if err != nil {
		return err
	}

	return m.sender.Send(recipient, subject, body)
}
