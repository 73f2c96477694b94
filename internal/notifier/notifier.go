package notifier

import "log"

// Notifier delivers a finished report to wherever the user reads it.
type Notifier interface {
	Send(text string) error
	Name() string
}

// LogNotifier writes reports to the process log. It is the fallback sink for
// run-once invocations without a configured Telegram chat.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier { return &LogNotifier{} }

func (l *LogNotifier) Name() string { return "log" }

func (l *LogNotifier) Send(text string) error {
	log.Printf("[INFO] report:\n%s", text)
	return nil
}
