package yatgtypes

import (
	"github.com/gotd/td/tg"
)

// TranslatedText is one translated fragment returned by the remote
// translation service. Formatting entities are preserved for premium users
// and come back empty otherwise.
type TranslatedText struct {
	Text     string
	Entities []tg.MessageEntityClass
}

// ParseTranslatedText builds a TranslatedText from its raw representation.
func ParseTranslatedText(raw tg.TextWithEntities) TranslatedText {
	return TranslatedText{
		Text:     raw.Text,
		Entities: raw.Entities,
	}
}
