// Package themes holds the registry of named HTML rendering strategies for
// outbound marketing emails. A theme is a pure function from email content to
// a complete HTML document; adding one means registering a new entry here,
// dispatch logic never changes.
package themes

import (
	"strconv"
	"strings"
	"time"
)

// Data is everything a theme needs to render one email.
type Data struct {
	Topic         string
	Subject       string
	Body          string // already sanitized by the caller
	RecipientName string
	AgencyName    string
}

// RenderFunc produces a complete HTML document for one recipient.
type RenderFunc func(d Data) string

// Theme couples an identifier and display name with its renderer.
type Theme struct {
	ID     string
	Name   string
	Render RenderFunc
}

// registry preserves registration order so List is stable.
var registry = []Theme{
	{ID: "modern", Name: "Modern Gradient", Render: renderModern},
	{ID: "classic", Name: "Classic Professional", Render: renderClassic},
}

// Get returns the theme registered under id.
func Get(id string) (Theme, bool) {
	for _, t := range registry {
		if t.ID == id {
			return t, true
		}
	}
	return Theme{}, false
}

// List returns all registered themes in registration order.
func List() []Theme {
	out := make([]Theme, len(registry))
	copy(out, registry)
	return out
}

// IDs returns the registered theme identifiers, for error messages.
func IDs() []string {
	ids := make([]string, len(registry))
	for i, t := range registry {
		ids[i] = t.ID
	}
	return ids
}

func fill(tmpl string, d Data) string {
	agency := d.AgencyName
	if agency == "" {
		agency = "Digital Marketing Agency"
	}
	r := strings.NewReplacer(
		"{topic}", d.Topic,
		"{subject}", d.Subject,
		"{body}", d.Body,
		"{recipient_name}", d.RecipientName,
		"{agency_name}", agency,
		"{year}", strconv.Itoa(time.Now().Year()),
	)
	return r.Replace(tmpl)
}

func renderModern(d Data) string  { return fill(modernTemplate, d) }
func renderClassic(d Data) string { return fill(classicTemplate, d) }

const modernTemplate = `<!DOCTYPE html>
<html>
  <head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
      * { margin: 0; padding: 0; box-sizing: border-box; }
      body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; line-height: 1.6; color: #333; background: #f5f5f5; }
      .email-wrapper { background: #f5f5f5; padding: 40px 20px; }
      .container { max-width: 600px; margin: 0 auto; background: white; border-radius: 16px; overflow: hidden; box-shadow: 0 4px 20px rgba(0,0,0,0.1); }
      .header {
        background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
        color: white;
        padding: 40px 30px;
        text-align: center;
      }
      .topic {
        font-size: 12px;
        text-transform: uppercase;
        letter-spacing: 2px;
        opacity: 0.9;
        margin-bottom: 10px;
        font-weight: 600;
      }
      .subject {
        font-size: 28px;
        font-weight: 700;
        margin: 0;
        line-height: 1.2;
      }
      .content {
        padding: 40px 30px;
        background: white;
      }
      .greeting {
        font-size: 18px;
        color: #667eea;
        margin-bottom: 20px;
        font-weight: 600;
      }
      .body-content {
        color: #555;
        font-size: 15px;
        line-height: 1.8;
        margin-bottom: 30px;
      }
      .body-content p { margin-bottom: 15px; }
      .body-content h1, .body-content h2, .body-content h3 {
        color: #333;
        margin-top: 25px;
        margin-bottom: 15px;
      }
      .body-content ul, .body-content ol {
        margin-left: 20px;
        margin-bottom: 15px;
      }
      .body-content li { margin-bottom: 8px; }
      .cta-button {
        display: inline-block;
        padding: 14px 35px;
        background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
        color: white;
        text-decoration: none;
        border-radius: 8px;
        font-weight: 600;
        margin: 20px 0;
        transition: transform 0.2s;
      }
      .footer {
        background: #f9f9f9;
        padding: 30px;
        text-align: center;
        color: #888;
        font-size: 13px;
        border-top: 1px solid #eee;
      }
      .footer a { color: #667eea; text-decoration: none; }
      .social-links { margin: 20px 0; }
      .social-links a {
        display: inline-block;
        margin: 0 10px;
        color: #667eea;
        text-decoration: none;
        font-weight: 600;
      }
    </style>
  </head>
  <body>
    <div class="email-wrapper">
      <div class="container">
        <div class="header">
          <div class="topic">{topic}</div>
          <h1 class="subject">{subject}</h1>
        </div>
        <div class="content">
          <div class="greeting">Hi {recipient_name}! 👋</div>
          <div class="body-content">
            {body}
          </div>
        </div>
        <div class="footer">
          <div class="social-links">
            <a href="#">Facebook</a> •
            <a href="#">Twitter</a> •
            <a href="#">LinkedIn</a> •
            <a href="#">Instagram</a>
          </div>
          <p>© {year} {agency_name}. All rights reserved.</p>
          <p>You're receiving this email because you submitted an inquiry on our website.</p>
        </div>
      </div>
    </div>
  </body>
</html>
`

const classicTemplate = `<!DOCTYPE html>
<html>
  <head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
      * { margin: 0; padding: 0; box-sizing: border-box; }
      body { font-family: Georgia, 'Times New Roman', serif; line-height: 1.7; color: #2c3e50; background: #ecf0f1; }
      .email-wrapper { background: #ecf0f1; padding: 40px 20px; }
      .container { max-width: 600px; margin: 0 auto; background: white; border: 2px solid #34495e; }
      .header {
        background: #34495e;
        color: white;
        padding: 35px 30px;
        border-bottom: 4px solid #e67e22;
      }
      .topic {
        font-size: 11px;
        text-transform: uppercase;
        letter-spacing: 3px;
        color: #e67e22;
        margin-bottom: 12px;
        font-weight: bold;
      }
      .subject {
        font-size: 26px;
        font-weight: 700;
        margin: 0;
        line-height: 1.3;
        font-family: 'Georgia', serif;
      }
      .content {
        padding: 40px 35px;
        background: white;
      }
      .greeting {
        font-size: 17px;
        color: #34495e;
        margin-bottom: 25px;
        font-weight: 600;
        font-style: italic;
      }
      .body-content {
        color: #4a4a4a;
        font-size: 15px;
        line-height: 1.8;
        margin-bottom: 30px;
      }
      .body-content p { margin-bottom: 18px; }
      .body-content h1, .body-content h2, .body-content h3 {
        color: #34495e;
        margin-top: 30px;
        margin-bottom: 15px;
        border-bottom: 2px solid #e67e22;
        padding-bottom: 8px;
      }
      .body-content ul, .body-content ol {
        margin-left: 25px;
        margin-bottom: 18px;
      }
      .body-content li { margin-bottom: 10px; }
      .cta-button {
        display: inline-block;
        padding: 12px 32px;
        background: #e67e22;
        color: white;
        text-decoration: none;
        border: 2px solid #d35400;
        font-weight: 600;
        margin: 20px 0;
        text-transform: uppercase;
        letter-spacing: 1px;
        font-size: 13px;
      }
      .divider {
        height: 2px;
        background: #ecf0f1;
        margin: 30px 0;
      }
      .footer {
        background: #f8f9fa;
        padding: 30px 35px;
        text-align: center;
        color: #7f8c8d;
        font-size: 13px;
        border-top: 2px solid #34495e;
      }
      .footer a { color: #e67e22; text-decoration: none; font-weight: 600; }
      .signature {
        margin-top: 30px;
        padding-top: 20px;
        border-top: 1px solid #ddd;
        font-style: italic;
        color: #7f8c8d;
      }
    </style>
  </head>
  <body>
    <div class="email-wrapper">
      <div class="container">
        <div class="header">
          <div class="topic">{topic}</div>
          <h1 class="subject">{subject}</h1>
        </div>
        <div class="content">
          <div class="greeting">Dear {recipient_name},</div>
          <div class="body-content">
            {body}
          </div>
          <div class="divider"></div>
          <div class="signature">
            <strong>Best regards,</strong><br>
            {agency_name} Team
          </div>
        </div>
        <div class="footer">
          <p><strong>{agency_name}</strong></p>
          <p style="margin: 15px 0;">
            <a href="#">Website</a> |
            <a href="#">LinkedIn</a> |
            <a href="#">Contact Us</a>
          </p>
          <p style="margin-top: 20px;">© {year} All rights reserved.</p>
          <p style="margin-top: 10px; font-size: 12px;">You received this email because you submitted an inquiry on our website.</p>
        </div>
      </div>
    </div>
  </body>
</html>
`
