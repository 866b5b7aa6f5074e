package contactController

import (
	"context"
	"fmt"
	"server/config"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/services"
)

type ContactController struct {
	mailer    services.Mailer
	recipient string
	log       logger.Logger
}

func New(mailer services.Mailer, config config.Config) *ContactController {
	return &ContactController{
		mailer:    mailer,
		recipient: config.ContactRecipient,
		log:       logger.New("ContactController"),
	}
}

// Send forwards an inquiry by mail. Delivery failure is logged and
// swallowed; the enclosing write still succeeds.
func (cc *ContactController) Send(ctx context.Context, req WriteRequest) error {
	log := cc.log.Function("Send")

	// Older form builds posted the topic as category instead of subject.
	topic := req.Subject
	if topic == "" {
		topic = req.Category
	}

	subject := "【バク売れLPテンプレ】お問い合わせ: " + topic
	body := fmt.Sprintf(
		"氏名: %s\nメール: %s\n種別: %s\n内容:\n%s",
		req.Name, req.Email, topic, req.Message,
	)

	if err := cc.mailer.Send(cc.recipient, subject, body); err != nil {
		log.Warn("inquiry mail delivery failed", "name", req.Name, "email", req.Email, "error", err)
	}

	return nil
}
