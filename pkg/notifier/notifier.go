package notifier

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Notifier is the toast surface of the portal: one short line per
// finished user action, success or failure.
type Notifier interface {
	Info(ctx context.Context, message string)
	Error(ctx context.Context, message string)
}

type ToastNotifier struct {
	log *logrus.Entry
}

func New(log *logrus.Logger) *ToastNotifier {
	return &ToastNotifier{
		log: log.WithField("component", "notifier"),
	}
}

func (n *ToastNotifier) Info(_ context.Context, message string) {
	n.log.Info(message)
}

func (n *ToastNotifier) Error(_ context.Context, message string) {
	n.log.Error(message)
}
