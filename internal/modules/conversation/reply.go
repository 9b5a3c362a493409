package conversation

// Reply is what the bot answers to a user input.
type Reply struct {
	Text string
	// Keyboard offers reply buttons, one slice per row.
	Keyboard [][]string
	// RemoveKeyboard hides a previously offered keyboard.
	RemoveKeyboard bool
	// HTML marks Text as HTML formatted.
	HTML bool
}

// Input is one user message routed to the conversation manager.
type Input struct {
	ChatID   int64
	UserID   int64
	Username string
	Text     string
}

func text(s string) Reply {
	return Reply{Text: s}
}

func closing(s string) Reply {
	return Reply{Text: s, RemoveKeyboard: true}
}
