package email

const (
	TemplateWelcome              = "welcome"
	TemplatePasswordReset        = "password_reset"
	TemplatePasswordChanged      = "password_changed"
	TemplateJobReviewed          = "job_reviewed"
	TemplateEmployerVerified     = "employer_verified"
	TemplateVerificationRequest  = "verification_requested"
	TemplateApplicationSubmitted = "application_submitted"
	TemplateApplicationReceived  = "application_received"
	TemplateApplicationStatus    = "application_status"
)

var defaultTemplates = map[string]string{
	TemplateWelcome: `<h2>Welcome to Job Portal!</h2>
<p>Hi {{.Name}},</p>
<p>Your account has been created successfully as a <strong>{{.Role}}</strong>.</p>
{{if eq .Role "employer"}}<p><strong>Note:</strong> Your account requires admin verification before you can post jobs.</p>{{end}}
<p>Start exploring opportunities today!</p>`,

	TemplatePasswordReset: `<h2>Password Reset Request</h2>
<p>Hi {{.Name}},</p>
<p>You requested to reset your password. Click the link below to reset it:</p>
<p><a href="{{.ResetURL}}">Reset Password</a></p>
<p>This link will expire in {{.ExpiresIn}}.</p>
<p>If you didn't request this, please ignore this email.</p>`,

	TemplatePasswordChanged: `<h2>Password Reset Successful</h2>
<p>Hi {{.Name}},</p>
<p>Your password has been successfully reset.</p>
<p>If you didn't make this change, please contact support immediately.</p>`,

	TemplateJobReviewed: `<h2>Job Posting {{.StatusTitle}}</h2>
<p>Your job posting "<strong>{{.JobTitle}}</strong>" has been {{.Status}}.</p>
{{if .Reason}}<p><strong>Reason:</strong> {{.Reason}}</p>{{end}}`,

	TemplateEmployerVerified: `<h2>Account Verified!</h2>
<p>Congratulations! Your employer account has been verified.</p>
<p>You can now start posting jobs on our platform.</p>`,

	TemplateVerificationRequest: `<p>{{.Name}} ({{.Email}}) has requested verification.</p>`,

	TemplateApplicationSubmitted: `<h2>Application Submitted Successfully!</h2>
<p>Hi {{.Name}},</p>
<p>Your application for <strong>{{.JobTitle}}</strong> at <strong>{{.Company}}</strong> has been submitted successfully.</p>
<p>We'll notify you once the employer reviews your application.</p>
<p>Good luck!</p>`,

	TemplateApplicationReceived: `<h2>New Application Received</h2>
<p>Hi {{.Name}},</p>
<p><strong>{{.ApplicantName}}</strong> has applied for your job posting: <strong>{{.JobTitle}}</strong></p>
<p>Please review the application in your dashboard.</p>`,

	TemplateApplicationStatus: `<h2>Application Status Update</h2>
<p>Hi {{.Name}},</p>
<p>Your application for <strong>{{.JobTitle}}</strong> at <strong>{{.Company}}</strong> has been <strong>{{.Status}}</strong>.</p>
{{if eq .Status "shortlisted"}}<p>Congratulations! You have been shortlisted for this position.</p>{{end}}
{{if eq .Status "accepted"}}<p>Congratulations! Your application has been accepted!</p>{{end}}
{{if eq .Status "rejected"}}<p>We regret to inform you that your application was not selected for this position.</p>{{end}}
{{if .Notes}}<p><strong>Notes from employer:</strong> {{.Notes}}</p>{{end}}
<p>Check your dashboard for more details.</p>`,
}
