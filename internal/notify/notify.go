// Package notify is the best-effort notification port. Sends are attempted
// independently and their failures are logged but never propagated to the
// operation that triggered them.
package notify

import (
	"context"
	"sync"
)

// Message is one plaintext notification email.
type Message struct {
	From    string
	To      string
	Subject string
	Text    string
}

// Sender delivers a single message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Result is the outcome of one dispatch leg.
type Result struct {
	To  string
	Err error
}

// Dispatch sends every message concurrently and waits for all of them to
// settle. Each leg fails independently; one failed send never blocks or
// cancels another, and the caller gets every outcome.
func Dispatch(ctx context.Context, sender Sender, msgs []Message) []Result {
	results := make([]Result, len(msgs))

	var wg sync.WaitGroup
	for i, msg := range msgs {
		wg.Add(1)
		go func(i int, msg Message) {
			defer wg.Done()
			results[i] = Result{
				To:  msg.To,
				Err: sender.Send(ctx, msg),
			}
		}(i, msg)
	}
	wg.Wait()

	return results
}
