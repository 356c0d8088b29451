package notifications

import (
	"context"

	"github.com/9ssi7/exponent"
)

// PushSender is the subset of the Expo client the notifiers use.
type PushSender interface {
	Publish(ctx context.Context, msgs []*exponent.Message) ([]*exponent.MessageResponse, error)
}

// NewExpoSender returns a PushSender backed by the Expo push service. An
// empty access token is allowed for projects without enhanced security.
func NewExpoSender(accessToken string) PushSender {
	if accessToken == "" {
		return exponent.NewClient()
	}
	return exponent.NewClient(exponent.WithAccessToken(accessToken))
}

// TokenSource resolves users to their registered Expo push tokens.
type TokenSource interface {
	GetTokensByUserIDs(ctx context.Context, userIDs []int64) (map[int64][]string, error)
}

func messages(tokens []string, title, body string, data map[string]string) []*exponent.Message {
	msgs := make([]*exponent.Message, 0, len(tokens))
	for _, t := range tokens {
		token := exponent.Token(t)
		msgs = append(msgs, &exponent.Message{
			To:    []*exponent.Token{&token},
			Title: title,
			Body:  body,
			Data:  data,
		})
	}
	return msgs
}
