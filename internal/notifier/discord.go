package notifier

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
	"github.com/ucampus/campus-events-api/internal/models"
)

// DiscordNotifier posts review-queue activity into the staff channel so
// responsibles see submissions without polling the API.
type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
}

func NewDiscordNotifier(session *discordgo.Session, channelID string) *DiscordNotifier {
	return &DiscordNotifier{
		session:   session,
		channelID: channelID,
	}
}

func (n *DiscordNotifier) send(message string) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	if n.channelID == "" {
		return fmt.Errorf("discord channel ID is empty")
	}
	_, err := n.session.ChannelMessageSend(n.channelID, message)
	if err != nil {
		log.Printf("Failed to send discord message: %v", err)
		return err
	}
	return nil
}

func (n *DiscordNotifier) PaymentSubmitted(student models.User, detail models.EventDetail, payment models.Payment) error {
	return n.send(fmt.Sprintf("💳 **Proof of payment awaiting review**\n**Student:** %s\n**Offering:** %s\n**Amount:** %s (%s)",
		student.Username, detail.Title, formatCents(payment.AmountCents), payment.Method))
}

func (n *DiscordNotifier) PaymentDecided(student models.User, detail models.EventDetail, payment models.Payment) error {
	verdict := "approved ✅"
	if payment.Status == models.PaymentRejected {
		verdict = fmt.Sprintf("rejected ❌ (%s)", payment.RejectComment)
	}
	return n.send(fmt.Sprintf("💳 **Payment %s**\n**Student:** %s\n**Offering:** %s",
		verdict, student.Username, detail.Title))
}

func (n *DiscordNotifier) DocumentSubmitted(student models.User, detail models.EventDetail, doc models.RequirementDocument) error {
	return n.send(fmt.Sprintf("📄 **Document awaiting review**\n**Student:** %s\n**Offering:** %s\n**Type:** %s",
		student.Username, detail.Title, doc.DocType))
}

func (n *DiscordNotifier) DocumentDecided(student models.User, detail models.EventDetail, doc models.RequirementDocument) error {
	verdict := "approved ✅"
	if doc.Status == models.DocumentRejected {
		verdict = fmt.Sprintf("rejected ❌ (%s)", doc.RejectComment)
	}
	return n.send(fmt.Sprintf("📄 **Document %s %s**\n**Student:** %s\n**Offering:** %s",
		doc.DocType, verdict, student.Username, detail.Title))
}

func (n *DiscordNotifier) RegistrationCompleted(student models.User, detail models.EventDetail) error {
	return n.send(fmt.Sprintf("🎉 **Registration complete**\n**Student:** %s\n**Offering:** %s",
		student.Username, detail.Title))
}

func formatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
