package commands

import (
	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
)

// Subscription releases a dispatcher registration.
type Subscription interface {
	Unsubscribe()
}

// Subscribe registers handler with the process-wide go-command dispatcher.
// maxRetries above zero re-runs failed executions that many times.
func Subscribe[T command.Message](handler command.Commander[T], maxRetries int) Subscription {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return dispatcher.SubscribeCommand(handler, runner.WithMaxRetries(maxRetries))
}

// UnsubscribeAll releases every subscription, skipping nil entries.
func UnsubscribeAll(subs []Subscription) {
	for _, sub := range subs {
		if sub != nil {
			sub.Unsubscribe()
		}
	}
}
