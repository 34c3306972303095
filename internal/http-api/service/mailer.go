package service

// Mailer delivers rendered receipts to customers. SMTP (or whatever
// transport) lives behind this interface, outside the core.
type Mailer interface {
	SendReceipt(to, subject, body string) error
}
