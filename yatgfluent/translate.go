package yatgfluent

import (
	"context"
	"net/http"

	"github.com/YaCodeDev/GoYaCodeDevUtils/yaerrors"
	"github.com/YaCodeDev/GoYaCodeDevUtils/yalogger"
	"github.com/YaCodeDev/GoYaTgFluent/yatgpeers"
	"github.com/YaCodeDev/GoYaTgFluent/yatgtypes"
	"github.com/google/uuid"
	"github.com/gotd/td/tg"
	"golang.org/x/text/language"
)

// TranslateTextOptions tunes TranslateText.
type TranslateTextOptions struct {
	// Entities supplies pre-built formatting entities. When set, the text
	// is sent verbatim and the client-side markup encoding is skipped; the
	// two ways of expressing formatting are mutually exclusive.
	Entities []tg.MessageEntityClass
}

// TranslateMessageText translates the text or caption of existing messages
// to the given language. Formatting is preserved for premium users.
//
// All identifiers go out in one request; the returned Results collapses to
// Single only when the response itself carried exactly one translation.
//
// Example usage:
//
//	res, err := fluent.TranslateMessageText(ctx, "en", yatgpeers.ID(chatID), msgID)
//	if err != nil {
//	    // Handle error
//	}
//
//	if one, ok := res.Single(); ok {
//	    fmt.Println(one.Text)
//	}
func (c *Client) TranslateMessageText(
	ctx context.Context,
	toLanguageCode string,
	chat yatgpeers.PeerRef,
	messageIDs ...int,
) (Results[yatgtypes.TranslatedText], yaerrors.Error) {
	log := c.log.WithRequestUUID(uuid.New())

	if len(messageIDs) == 0 {
		return Results[yatgtypes.TranslatedText]{}, yaerrors.FromStringWithLog(
			http.StatusBadRequest,
			"failed to translate message text: no message ids",
			log,
		)
	}

	c.warnUnknownLanguage(toLanguageCode, log)

	peer, yaErr := c.peers.ResolvePeer(ctx, chat)
	if yaErr != nil {
		return Results[yatgtypes.TranslatedText]{}, yaErr.WrapWithLog(
			"failed to translate message text",
			log,
		)
	}

	request := &tg.MessagesTranslateTextRequest{
		ToLang: toLanguageCode,
	}
	request.SetPeer(peer)
	request.SetID(messageIDs)

	response, err := c.raw.MessagesTranslateText(ctx, request)
	if err != nil {
		return Results[yatgtypes.TranslatedText]{}, yaerrors.FromErrorWithLog(
			http.StatusInternalServerError,
			err,
			"failed to translate message text",
			log,
		)
	}

	return translatedResults(response), nil
}

// TranslateText translates free-form text to the given language. Unless
// pre-built entities are supplied the text first runs through the client's
// markup encoding to split it into plain text plus formatting entities.
//
// Example usage:
//
//	res, err := fluent.TranslateText(ctx, "fa", "**YaCodeDev**", yatgfluent.TranslateTextOptions{})
//	if err != nil {
//	    // Handle error
//	}
func (c *Client) TranslateText(
	ctx context.Context,
	toLanguageCode string,
	text string,
	options TranslateTextOptions,
) (Results[yatgtypes.TranslatedText], yaerrors.Error) {
	log := c.log.WithRequestUUID(uuid.New())

	c.warnUnknownLanguage(toLanguageCode, log)

	message, entities := text, options.Entities
	if entities == nil {
		message, entities = c.encoding.Parse(text)
	}

	request := &tg.MessagesTranslateTextRequest{
		ToLang: toLanguageCode,
	}
	request.SetText([]tg.TextWithEntities{{
		Text:     message,
		Entities: entities,
	}})

	response, err := c.raw.MessagesTranslateText(ctx, request)
	if err != nil {
		return Results[yatgtypes.TranslatedText]{}, yaerrors.FromErrorWithLog(
			http.StatusInternalServerError,
			err,
			"failed to translate text",
			log,
		)
	}

	return translatedResults(response), nil
}

// warnUnknownLanguage flags language codes BCP 47 cannot parse. The value is
// still forwarded verbatim: the accepted set is owned by the remote side.
func (c *Client) warnUnknownLanguage(code string, log yalogger.Logger) {
	if _, err := language.Parse(code); err != nil {
		log.Warnf("Language code %q does not parse as BCP 47: %v", code, err)
	}
}

func translatedResults(response *tg.MessagesTranslateResult) Results[yatgtypes.TranslatedText] {
	items := make([]yatgtypes.TranslatedText, 0, len(response.Result))
	for _, raw := range response.Result {
		items = append(items, yatgtypes.ParseTranslatedText(raw))
	}

	return resultsOf(items)
}
