package notification

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	"doctorsmile/models"
)

type emailData struct {
	App       models.Application
	HasImages bool
	Before    htmltemplate.URL
	After     htmltemplate.URL
	Submitted string
}

func newEmailData(app models.Application) emailData {
	d := emailData{
		App:       app,
		Submitted: app.CreatedAt.Format("January 2, 2006 3:04 PM"),
	}
	if app.Images.HasBoth() {
		d.HasImages = true
		d.Before = htmltemplate.URL(app.Images.Before)
		d.After = htmltemplate.URL(app.Images.After)
	}
	return d
}

const clientHTMLSrc = `<!DOCTYPE html>
<html>
<head>
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background-color: #fef3c7; padding: 20px; text-align: center; }
    .content { background-color: #fff; padding: 20px; border: 1px solid #e5e7eb; }
    .footer { background-color: #f3f4f6; padding: 20px; text-align: center; font-size: 12px; }
    .steps { background-color: #f9fafb; padding: 15px; border-radius: 5px; margin: 20px 0; }
    .step { margin-bottom: 10px; }
    .contact { background-color: #f0fdf4; padding: 15px; border-radius: 5px; margin-top: 20px; }
    .image-comparison { display: flex; gap: 10px; margin: 20px 0; }
    .image-container { flex: 1; text-align: center; }
    .image-container img { max-width: 100%; height: auto; border-radius: 8px; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h2>Thank you {{.App.Name}}!</h2>
      <p>Your smile design session has been secured with a $150 deposit.</p>
    </div>

    <div class="content">
      <p>We're excited to help you achieve your perfect smile! Your deposit has been received and your application is being reviewed by our team.</p>

      {{if .HasImages}}
      <div>
        <h3>Your AI Smile Preview:</h3>
        <div class="image-comparison">
          <div class="image-container">
            <p><strong>Before</strong></p>
            <img src="{{.Before}}" alt="Your current smile" />
          </div>
          <div class="image-container">
            <p><strong>Potential After</strong></p>
            <img src="{{.After}}" alt="AI-generated smile preview" />
          </div>
        </div>
        <p style="font-size: 12px; color: #666; text-align: center;">
          *This is an AI-generated preview. Actual results may vary and will be discussed during your consultation.
        </p>
      </div>
      {{end}}

      <div class="steps">
        <h3>Next Steps:</h3>
        <div class="step">
          <strong>1. Consultation Scheduling</strong><br>
          Our team will contact you within 24 hours to schedule your virtual consultation.
        </div>
        <div class="step">
          <strong>2. Preparation</strong><br>
          We'll send preparation materials via email before your consultation.
        </div>
        <div class="step">
          <strong>3. Virtual Consultation</strong><br>
          Your 20-minute virtual consultation will be scheduled at your convenience.
        </div>
      </div>

      <div class="contact">
        <h3>Questions?</h3>
        <p>Reply to this email or call us at <strong>(519) 123-4567</strong></p>
        <p>Our team is available Monday-Friday, 9AM-5PM EST</p>
      </div>
    </div>

    <div class="footer">
      <p>DoctorSmile.ca - Transforming Smiles, Changing Lives</p>
      <p>This email was sent in response to your application submission</p>
    </div>
  </div>
</body>
</html>`

const clientTextSrc = `Thank you {{.App.Name}}!

Your smile design session has been secured with a $150 deposit.

We're excited to help you achieve your perfect smile! Your deposit has been received and your application is being reviewed by our team.

{{if .HasImages}}Your AI-generated smile preview has been saved and will be discussed during your consultation. View it in the HTML version of this email.

{{end}}Next Steps:
1. Consultation Scheduling
   Our team will contact you within 24 hours to schedule your virtual consultation.

2. Preparation
   We'll send preparation materials via email before your consultation.

3. Virtual Consultation
   Your 20-minute virtual consultation will be scheduled at your convenience.

Questions?
Reply to this email or call us at (519) 123-4567
Our team is available Monday-Friday, 9AM-5PM EST

DoctorSmile.ca - Transforming Smiles, Changing Lives
This email was sent in response to your application submission`

const ownerHTMLSrc = `<!DOCTYPE html>
<html>
<head>
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background-color: #dcfce7; padding: 20px; text-align: center; }
    .content { background-color: #fff; padding: 20px; border: 1px solid #e5e7eb; }
    .application-details { background-color: #f9fafb; padding: 15px; border-radius: 5px; margin: 20px 0; }
    .detail-item { margin-bottom: 8px; }
    .image-comparison { display: flex; gap: 10px; margin: 20px 0; }
    .image-container { flex: 1; text-align: center; }
    .image-container img { max-width: 100%; height: auto; border-radius: 8px; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h2>New Smile Design Application Received!</h2>
      <p>Application ID: {{.App.ID}}</p>
    </div>

    <div class="content">
      <h3>Applicant Details:</h3>
      <div class="application-details">
        <div class="detail-item"><strong>Name:</strong> {{.App.Name}}</div>
        <div class="detail-item"><strong>Email:</strong> {{.App.Email}}</div>
        <div class="detail-item"><strong>Mobile:</strong> {{.App.Mobile}}</div>
        <div class="detail-item"><strong>City:</strong> {{.App.City}}</div>
        <div class="detail-item"><strong>Timeline:</strong> {{.App.Timeline}}</div>
        <div class="detail-item"><strong>Budget:</strong> {{.App.Budget}}</div>
        <div class="detail-item"><strong>Submitted:</strong> {{.Submitted}}</div>
      </div>

      <h3>Smile Goals:</h3>
      <p>{{.App.Goals}}</p>

      {{if .HasImages}}
      <div>
        <h3>AI-Generated Smile Preview:</h3>
        <div class="image-comparison">
          <div class="image-container">
            <p><strong>Before</strong></p>
            <img src="{{.Before}}" alt="Before" />
          </div>
          <div class="image-container">
            <p><strong>Potential After</strong></p>
            <img src="{{.After}}" alt="AI-generated after" />
          </div>
        </div>
      </div>
      {{else}}<p>No photos were uploaded by the applicant.</p>{{end}}

      <p><strong>Next Action:</strong> Contact applicant within 24 hours to schedule consultation</p>
    </div>
  </div>
</body>
</html>`

const ownerTextSrc = `New Smile Design Application Received!
Application ID: {{.App.ID}}

Applicant Details:
- Name: {{.App.Name}}
- Email: {{.App.Email}}
- Mobile: {{.App.Mobile}}
- City: {{.App.City}}
- Timeline: {{.App.Timeline}}
- Budget: {{.App.Budget}}
- Submitted: {{.Submitted}}

Smile Goals:
{{.App.Goals}}

{{if .HasImages}}Note: Applicant uploaded photos with AI-generated preview. View images in the HTML version of this email.{{else}}No photos were uploaded by the applicant.{{end}}

Next Action: Contact applicant within 24 hours to schedule consultation`

var (
	clientHTMLTmpl = htmltemplate.Must(htmltemplate.New("clientHTML").Parse(clientHTMLSrc))
	clientTextTmpl = texttemplate.Must(texttemplate.New("clientText").Parse(clientTextSrc))
	ownerHTMLTmpl  = htmltemplate.Must(htmltemplate.New("ownerHTML").Parse(ownerHTMLSrc))
	ownerTextTmpl  = texttemplate.Must(texttemplate.New("ownerText").Parse(ownerTextSrc))
)

// RenderClientConfirmation renders the applicant-facing confirmation email.
func RenderClientConfirmation(app models.Application) (html, text string, err error) {
	data := newEmailData(app)

	var htmlBuf, textBuf bytes.Buffer
	if err := clientHTMLTmpl.Execute(&htmlBuf, data); err != nil {
		return "", "", fmt.Errorf("render client html: %w", err)
	}
	if err := clientTextTmpl.Execute(&textBuf, data); err != nil {
		return "", "", fmt.Errorf("render client text: %w", err)
	}
	return htmlBuf.String(), textBuf.String(), nil
}

// RenderOwnerNotification renders the owner/staff-facing application summary.
func RenderOwnerNotification(app models.Application) (html, text string, err error) {
	data := newEmailData(app)

	var htmlBuf, textBuf bytes.Buffer
	if err := ownerHTMLTmpl.Execute(&htmlBuf, data); err != nil {
		return "", "", fmt.Errorf("render owner html: %w", err)
	}
	if err := ownerTextTmpl.Execute(&textBuf, data); err != nil {
		return "", "", fmt.Errorf("render owner text: %w", err)
	}
	return htmlBuf.String(), textBuf.String(), nil
}

// RenderBookingConfirmation renders the post-booking confirmation/reminder
// email used by the send-confirmation endpoint and the reminder worker.
func RenderBookingConfirmation(name string, booking models.Booking, displayTime string) (html, text string) {
	text = fmt.Sprintf(`Hi %s,

Your virtual consultation is confirmed.

Confirmation number: %s
When: %s (%s)
Duration: 20 minutes

Check your inbox for the meeting link before the call. If anything changes,
reply to this email.

DoctorSmile.ca - Transforming Smiles, Changing Lives`, name, booking.ID, displayTime, booking.Timezone)

	html = fmt.Sprintf(`<html><body style="font-family: Arial, sans-serif; color: #333;">
<h2>Hi %s, your consultation is confirmed</h2>
<p><strong>Confirmation number:</strong> %s</p>
<p><strong>When:</strong> %s (%s)</p>
<p><strong>Duration:</strong> 20 minutes</p>
<p>Check your inbox for the meeting link before the call. If anything changes, reply to this email.</p>
<p style="font-size: 12px; color: #666;">DoctorSmile.ca - Transforming Smiles, Changing Lives</p>
</body></html>`,
		htmltemplate.HTMLEscapeString(name), booking.ID, displayTime, booking.Timezone)
	return html, text
}
