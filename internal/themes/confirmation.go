package themes

// ConfirmationSubject is the subject line of the inquiry acknowledgement.
const ConfirmationSubject = "Thank You for Your Inquiry!"

// RenderConfirmation produces the acknowledgement email sent to a customer
// right after their first inquiry is recorded.
func RenderConfirmation(customerName, agencyName string) string {
	return fill(confirmationTemplate, Data{
		RecipientName: customerName,
		AgencyName:    agencyName,
	})
}

const confirmationTemplate = `<!DOCTYPE html>
<html>
  <head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
      * { margin: 0; padding: 0; box-sizing: border-box; }
      body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; background: #f9f9f9; }
      .container { max-width: 600px; margin: 0 auto; padding: 20px; background: white; border-radius: 10px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
      .header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
      .content { padding: 30px; }
      .footer { text-align: center; margin-top: 30px; color: #666; font-size: 12px; }
      h2 { color: #333; margin-bottom: 20px; }
      p { margin-bottom: 15px; }
      ol { margin-left: 20px; margin-bottom: 20px; }
      li { margin-bottom: 10px; }
    </style>
  </head>
  <body>
    <div class="container">
      <div class="header">
        <h1>We've Received Your Inquiry! ✅</h1>
      </div>
      <div class="content">
        <h2>Hi {recipient_name}!</h2>
        <p>Thank you for reaching out to us! We've received your inquiry and our team will review it shortly.</p>
        <p>We typically respond within 24-48 hours. In the meantime, feel free to explore our services and resources.</p>
        <p><strong>What happens next?</strong></p>
        <ol>
          <li>Our team will review your requirements</li>
          <li>We'll prepare a customized proposal</li>
          <li>One of our specialists will contact you directly</li>
        </ol>
        <p>Looking forward to working with you!</p>
      </div>
      <div class="footer">
        <p>If you have any urgent questions, please don't hesitate to contact us.</p>
        <p>© {year} {agency_name}. All rights reserved.</p>
      </div>
    </div>
  </body>
</html>
`
