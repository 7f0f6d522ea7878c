package smtp

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/planloop/planloop/pkg/logger"
	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
)

// Client is the outbound mail client.
type Client struct {
	dialer *gomail.Dialer
}

func NewClient(dialer *gomail.Dialer) *Client {
	return &Client{dialer: dialer}
}

// SendInviteEmail sends an organization invite code. Failures are logged, not
// returned; invites can be re-sent.
func (c *Client) SendInviteEmail(to string, code string, organizationName string) {
	msg := gomail.NewMessage()

	domain := viper.GetString("service.smtp.domain")
	messageID := generateMessageID(domain)

	msg.SetHeader("Message-ID", messageID)
	msg.SetHeader("Date", time.Now().Format(time.RFC1123Z))
	msg.SetHeader("From", viper.GetString("service.smtp.email"))
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("You have been invited to %s", organizationName))
	msg.SetBody("text/plain", fmt.Sprintf("Use this code to join %s: %s", organizationName, code))

	if err := c.dialer.DialAndSend(msg); err != nil {
		logger.Log.Errorf("failed to send invite email to %s: %v", to, err)
		return
	}

	logger.Log.Infof("Invite email sent to %s", to)
}

func generateMessageID(domain string) string {
	uniqueID := uuid.New().String()
	return fmt.Sprintf("<%s@%s>", uniqueID, domain)
}
