package telegram

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	tele "gopkg.in/telebot.v3"
)

// Notifier mirrors portal toasts into a Telegram chat, for sessions
// that opted into out-of-band delivery.
type Notifier struct {
	log  *logrus.Entry
	bot  *tele.Bot
	chat tele.ChatID
}

func NewBot(token string) (*tele.Bot, error) {
	config := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(config)
	if err != nil {
		return nil, fmt.Errorf("new bot failed: %w", err)
	}
	return b, nil
}

func New(log *logrus.Logger, bot *tele.Bot, chat int64) *Notifier {
	return &Notifier{
		log:  log.WithField("component", "telegram"),
		bot:  bot,
		chat: tele.ChatID(chat),
	}
}

func (n *Notifier) Info(_ context.Context, message string) {
	n.send(message)
}

func (n *Notifier) Error(_ context.Context, message string) {
	n.send("⚠ " + message)
}

func (n *Notifier) send(message string) {
	if _, err := n.bot.Send(n.chat, message); err != nil {
		n.log.Warnf("err sending notification: %v", err)
	}
}
