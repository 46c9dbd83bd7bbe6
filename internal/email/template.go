package email

import "fmt"

const verificationSubject = "Verify your email address"

// The 10-minute window stated here matches the expiry stored with the code.
const verificationHTML = `
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333; text-align: center;">Verify Your Email Address</h2>
  <p style="font-size: 16px; line-height: 1.5; color: #555;">
    Thank you for signing up! Please use the verification code below to complete your registration:
  </p>
  <div style="background-color: #f5f5f5; padding: 15px; border-radius: 5px; text-align: center; margin: 20px 0;">
    <h1 style="font-size: 32px; letter-spacing: 5px; margin: 0; color: #333;">%s</h1>
  </div>
  <p style="font-size: 16px; line-height: 1.5; color: #555;">
    This code will expire in 10 minutes.
  </p>
  <p style="font-size: 16px; line-height: 1.5; color: #555;">
    If you didn't request this verification, you can safely ignore this email.
  </p>
</div>`

// VerificationMail renders the verification email for a code.
func VerificationMail(code string) (subject, html string) {
	return verificationSubject, fmt.Sprintf(verificationHTML, code)
}
