package notify

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"net/url"
	texttemplate "text/template"

	"github.com/VivekRai08/Jain-Foam-website/internal/domain"
)

const htmlBody = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333; border-bottom: 2px solid #007bff; padding-bottom: 10px;">New Contact Inquiry Received</h2>
  <div style="background-color: #f8f9fa; padding: 20px; margin: 20px 0; border-radius: 5px;">
    <h3 style="color: #007bff; margin-top: 0;">Customer Details:</h3>
    <p><strong>Name:</strong> {{.Name}}</p>
    <p><strong>Email:</strong> <a href="mailto:{{.Email}}">{{.Email}}</a></p>
    <p><strong>Phone:</strong> <a href="{{.PhoneURL}}">{{.Phone}}</a></p>
    <p><strong>Service Interested:</strong> {{.Service}}</p>
  </div>
  <div style="background-color: #fff; padding: 20px; margin: 20px 0; border: 1px solid #dee2e6; border-radius: 5px;">
    <h3 style="color: #333; margin-top: 0;">Message:</h3>
    <p style="line-height: 1.6; white-space: pre-wrap;">{{.Message}}</p>
  </div>
  <div style="background-color: #e9ecef; padding: 15px; margin: 20px 0; border-radius: 5px;">
    <p style="margin: 0; font-size: 14px; color: #6c757d;">
      <strong>Please respond to this inquiry as soon as possible.</strong><br>
      Contact the customer directly or reply to this email.
    </p>
  </div>
  <hr style="border: none; border-top: 1px solid #dee2e6; margin: 30px 0;">
  <p style="font-size: 12px; color: #6c757d; text-align: center;">{{.Footer}}</p>
</div>
`

const textBody = `New Contact Inquiry Received

Customer Details:
Name: {{.Name}}
Email: {{.Email}}
Phone: {{.Phone}}
Service: {{.Service}}

Message:
{{.Message}}

Please respond to this inquiry as soon as possible.

{{.Footer}}
`

// Footer closes every notification.
const Footer = "This email was sent from the Jain Foam & Furnishing website contact form."

var (
	htmlTmpl = htmltemplate.Must(htmltemplate.New("inquiry.html").Parse(htmlBody))
	textTmpl = texttemplate.Must(texttemplate.New("inquiry.txt").Parse(textBody))
)

type view struct {
	Name     string
	Email    string
	Phone    string
	PhoneURL htmltemplate.URL
	Service  string
	Message  string
	Footer   string
}

// Composer turns an inquiry into the staff notification email.
type Composer struct {
	from      domain.EmailAddress
	recipient domain.EmailAddress
}

// NewComposer creates a composer sending from from to recipient.
func NewComposer(from, recipient domain.EmailAddress) *Composer {
	return &Composer{from: from, recipient: recipient}
}

// Compose renders the message. User fields are HTML-escaped in the HTML part.
func (c *Composer) Compose(inquiry *domain.ContactInquiry) (*domain.EmailMessage, error) {
	v := view{
		Name:     inquiry.Name,
		Email:    inquiry.Email,
		Phone:    inquiry.Phone,
		PhoneURL: htmltemplate.URL("tel:" + url.PathEscape(inquiry.Phone)),
		Service:  inquiry.Service,
		Message:  inquiry.Message,
		Footer:   Footer,
	}

	var html, text bytes.Buffer
	if err := htmlTmpl.Execute(&html, v); err != nil {
		return nil, fmt.Errorf("render html body: %w", err)
	}
	if err := textTmpl.Execute(&text, v); err != nil {
		return nil, fmt.Errorf("render text body: %w", err)
	}

	return &domain.EmailMessage{
		From:    c.from,
		To:      []domain.EmailAddress{c.recipient},
		ReplyTo: &domain.EmailAddress{Name: inquiry.Name, Email: inquiry.Email},
		Subject: "New Contact Inquiry - " + inquiry.Service,
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}
