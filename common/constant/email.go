package constant

const EmailSubjectBookingConfirmed = "Booking Confirmed - %s"

// EmailBookingConfirmationTemplate is parsed with html/template. Each mail is
// scoped to a single ticket of the booking, so the template renders exactly
// one ticket block.
const EmailBookingConfirmationTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Booking Confirmation - {{.EventName}}</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <div style="background: linear-gradient(135deg, #ed7519, #ff8c42); color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0;">
      <h1 style="margin: 0;">Booking Confirmed!</h1>
      <p style="margin: 10px 0 0 0; font-size: 18px;">Welcome to {{.EventName}}</p>
    </div>

    <div style="background: white; padding: 30px; border-radius: 0 0 10px 10px;">
      <p>Dear Customer,</p>
      <p>Your booking has been successfully confirmed! We're excited to welcome you to our grand celebration.</p>

      <div style="background: #f8f9fa; padding: 20px; margin: 20px 0; border-radius: 8px;">
        <h3 style="color: #ed7519; margin-top: 0;">Booking Information</h3>
        <p><strong>Booking ID:</strong> {{.BookingID}}</p>
        <p><strong>Payment ID:</strong> {{.PaymentID}}</p>
        <p><strong>Amount Paid:</strong> {{.Amount}}</p>
        <p><strong>Payment Date:</strong> {{.PaymentDate}}</p>
        <p><strong>Members in Your Ticket:</strong> {{.MemberTotal}}</p>
      </div>

      <div style="background: #e3f2fd; padding: 20px; margin: 20px 0; border-radius: 8px;">
        <h3 style="color: #1976d2; margin-top: 0;">Event Details</h3>
        <p><strong>Event:</strong> {{.EventName}}</p>
        <p><strong>Date:</strong> {{.EventDate}}</p>
        <p><strong>Time:</strong> {{.EventTime}}</p>
        <p><strong>Venue:</strong> {{.EventVenue}}</p>
      </div>

      <div style="background: #f8f9fa; padding: 20px; margin: 15px 0; border-radius: 8px; border-left: 4px solid #ed7519;">
        <h3 style="color: #ed7519; margin: 0 0 10px 0;">{{.TicketTypeLabel}} #{{.TicketNumber}}</h3>
        <p style="margin: 5px 0;"><strong>Adults:</strong> {{.AdultNames}}</p>
        {{if .ChildNames}}<p style="margin: 5px 0;"><strong>Children:</strong> {{.ChildNames}}</p>{{end}}
        <p style="margin: 5px 0;"><strong>Type:</strong> {{.TicketTypeLabel}}</p>
        <p style="margin: 5px 0;"><strong>Children Included:</strong> {{.ChildrenCount}}</p>
      </div>

      {{if .HasAttachment}}
      <div style="background: #e8f5e8; padding: 15px; margin: 20px 0; border-radius: 8px; border-left: 4px solid #4caf50;">
        <h4 style="color: #2e7d32; margin: 0 0 10px 0;">Digital Pass Attached</h4>
        <p style="margin: 0; color: #2e7d32;">
          Your digital pass with QR code has been attached to this email.
          Please save it on your phone or print it for entry to the event.
        </p>
      </div>
      {{end}}

      <p>We look forward to celebrating with you!</p>
      <p>Best regards,<br>Team {{.EventName}}</p>
    </div>

    <div style="text-align: center; margin-top: 30px; color: #666; font-size: 14px;">
      <p>This is an automated email. Please do not reply to this email.</p>
    </div>
  </div>
</body>
</html>
`
