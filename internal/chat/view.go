package chat

// UserLabel heads every bubble the user wrote.
const UserLabel = "You"

// Bubble is one rendered entry of the conversation thread.
type Bubble struct {
	Author  string `json:"author"`
	Content string `json:"content"`
	User    bool   `json:"user"`
}

// RenderBubble labels content with its author: "You" for the user,
// advisorName for everything else.
func RenderBubble(content string, isUser bool, advisorName string) Bubble {
	author := advisorName
	if isUser {
		author = UserLabel
	}
	return Bubble{Author: author, Content: content, User: isUser}
}

// View is the conversation surface the handler drives. Bubbles are only ever
// appended; at most one typing indicator exists at a time.
type View interface {
	RemoveWelcome()
	AppendBubble(b Bubble)
	ShowTyping()
	HideTyping()
	ScrollToEnd()
	ClearInput()
	SetSendEnabled(enabled bool)
	FocusInput()
}
