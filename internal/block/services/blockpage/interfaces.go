package blockpage

import "context"

// Navigator applies the dismissal policy. Back returns to the previous
// history entry; Home sends the fire-and-forget home-redirect message to the
// background collaborator and waits for its synchronous ack.
type Navigator interface {
	Back(ctx context.Context) error
	Home(ctx context.Context) error
}

// Display receives rendered text. The page surface implements this; tests
// substitute a recorder.
type Display interface {
	SetMessage(msg string)
	SetCountdown(text string)
}
