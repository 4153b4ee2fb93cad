package domain

// EmailAddress is a mailbox with an optional display name.
type EmailAddress struct {
	Name  string
	Email string
}

// EmailMessage is a composed notification ready for a transport.
type EmailMessage struct {
	From    EmailAddress
	To      []EmailAddress
	ReplyTo *EmailAddress
	Subject string
	HTML    string
	Text    string
}
