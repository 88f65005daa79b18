package wa

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	walog "go.mau.fi/whatsmeow/util/log"
)

type CommandHandler interface {
	Execute(ctx context.Context, userID, name, msg string) (string, error)
}

type LIDResolver interface {
	ResolveLIDToPhone(ctx context.Context, lid string) string
}

type DispatcherConfig struct {
	GroupID         string
	ReplyDelayMinMs int
	ReplyDelayMaxMs int
	ShowTyping      bool
}

// Dispatcher turns incoming group messages into command replies.
type Dispatcher struct {
	cfg      DispatcherConfig
	commands CommandHandler
	resolver LIDResolver
	log      walog.Logger
	sleep    func(time.Duration)
}

func NewDispatcher(cfg DispatcherConfig, commands CommandHandler, resolver LIDResolver, logger walog.Logger) *Dispatcher {
	return &Dispatcher{
		cfg:      cfg,
		commands: commands,
		resolver: resolver,
		log:      logger,
		sleep:    time.Sleep,
	}
}

func (d *Dispatcher) HandleMessage(ctx context.Context, client *whatsmeow.Client, evt *events.Message) {
	if d.cfg.GroupID != "" && evt.Info.Chat.String() != d.cfg.GroupID {
		return
	}
	if evt.Info.IsFromMe {
		return
	}

	msg := messageText(evt.Message)
	if msg == "" {
		return
	}

	userID := resolveUserID(ctx, evt.Info.Sender, d.resolver)
	pushName := evt.Info.PushName
	if pushName == "" {
		pushName = "Unknown"
	}

	d.log.Debugf("Message from %s (%s): %s", pushName, userID, msg)

	response, err := d.commands.Execute(ctx, userID, pushName, msg)
	if err != nil {
		d.log.Errorf("Error handling message from %s: %v", userID, err)
		return
	}
	if response == "" {
		return
	}

	if delay := replyDelay(d.cfg.ReplyDelayMinMs, d.cfg.ReplyDelayMaxMs, rand.Intn); delay > 0 {
		if d.cfg.ShowTyping {
			_ = client.SendChatPresence(ctx, evt.Info.Chat, types.ChatPresenceComposing, types.ChatPresenceMediaText)
		}
		d.log.Debugf("Delaying reply by %v", delay)
		d.sleep(delay)
		if d.cfg.ShowTyping {
			_ = client.SendChatPresence(ctx, evt.Info.Chat, types.ChatPresencePaused, types.ChatPresenceMediaText)
		}
	}

	if _, err := client.SendMessage(ctx, evt.Info.Chat, &waE2E.Message{Conversation: &response}); err != nil {
		d.log.Errorf("Failed to send response: %v", err)
	}
}

// resolveUserID keys members by phone number. LIDs are mapped back to the
// phone number when whatsmeow knows it.
func resolveUserID(ctx context.Context, sender types.JID, resolver LIDResolver) string {
	if sender.Server == types.HiddenUserServer || sender.Server == types.DefaultUserServer && len(sender.User) > 15 {
		return resolver.ResolveLIDToPhone(ctx, sender.User)
	}
	return sender.User
}

func messageText(msg *waE2E.Message) string {
	if msg == nil {
		return ""
	}
	if msg.Conversation != nil {
		return strings.TrimSpace(*msg.Conversation)
	}
	if msg.ExtendedTextMessage != nil && msg.ExtendedTextMessage.Text != nil {
		return strings.TrimSpace(*msg.ExtendedTextMessage.Text)
	}
	return ""
}

// replyDelay picks a delay in [minMs, maxMs]; maxMs <= minMs means a fixed minMs.
func replyDelay(minMs, maxMs int, intn func(int) int) time.Duration {
	delayMs := minMs
	if maxMs > minMs {
		delayMs = minMs + intn(maxMs-minMs+1)
	}
	if delayMs <= 0 {
		return 0
	}
	return time.Duration(delayMs) * time.Millisecond
}
