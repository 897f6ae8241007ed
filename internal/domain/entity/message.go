// internal/domain/entity/message.go
package entity

// OutboundMessage is what a channel needs to deliver one notification.
// Recipient is channel specific: a phone number for SMS, an email address
// for email, a device token for push.
type OutboundMessage struct {
	Recipient string
	Subject   string
	Body      string
}
