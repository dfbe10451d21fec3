package entity

// Chat message senders
const (
	ChatSenderUser  = "user"
	ChatSenderAdmin = "admin"
)

// ChatMessage is one message of a support conversation, stored under <ns>_chat_<userId>.
type ChatMessage struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	Text     string `json:"text"`
	Sender   string `json:"sender"`
	Time     string `json:"time"`
}

// ChatThread summarizes a conversation in the <ns>_all_chats map.
type ChatThread struct {
	UserID      string `json:"userId"`
	UserName    string `json:"userName"`
	LastMessage string `json:"lastMessage"`
	LastTime    string `json:"lastTime"`
	UnreadCount int    `json:"unreadCount"`
}
