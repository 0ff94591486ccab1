package dummymail

import (
	"sync"

	"github.com/trezcool/chuo/core"
)

var (
	SentMessages = make([]core.EmailMessage, 0)
	mu           sync.Mutex
)

type service struct{}

var _ core.EmailService = (*service)(nil)

func NewService() core.EmailService {
	return &service{}
}

func (svc service) SendMessages(messages ...*core.EmailMessage) {
	mu.Lock()
	defer mu.Unlock()
	for _, msg := range messages {
		if msg.HasRecipients() && msg.HasContent() {
			SentMessages = append(SentMessages, *msg)
		}
	}
}

// ClearSentMessages empties the outbox between tests.
func ClearSentMessages() {
	mu.Lock()
	defer mu.Unlock()
	SentMessages = SentMessages[:0]
}
