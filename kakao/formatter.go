package kakao

import (
	"fmt"
	"strings"

	"github.com/medimatch/medimatch-agent/types"
)

// Openbuilder rendering caps. Payloads violating them are rejected by the
// platform, so the formatter enforces them unconditionally.
const (
	maxSimpleTextRunes = 1000
	maxCardButtons     = 3
	maxCarouselItems   = 10
	maxQuickReplies    = 10

	skillVersion = "2.0"

	defaultThumbnailURL = "https://t1.kakaocdn.net/openbuilder/sample/img_005.jpg"
)

// SimpleTextResponse wraps plain text in the v2.0 envelope, truncating to
// the platform cap.
func SimpleTextResponse(text string, quickReplies ...types.QuickReply) *types.SkillResponse {
	return &types.SkillResponse{
		Version: skillVersion,
		Template: types.SkillTemplate{
			Outputs:      []types.SkillOutput{{SimpleText: &types.SimpleText{Text: truncateText(text)}}},
			QuickReplies: capQuickReplies(quickReplies),
		},
	}
}

// CardResponse wraps one basic card.
func CardResponse(card types.BasicCard, quickReplies ...types.QuickReply) *types.SkillResponse {
	card.Buttons = capButtons(card.Buttons)
	return &types.SkillResponse{
		Version: skillVersion,
		Template: types.SkillTemplate{
			Outputs:      []types.SkillOutput{{BasicCard: &card}},
			QuickReplies: capQuickReplies(quickReplies),
		},
	}
}

// CarouselResponse wraps place cards into a basicCard carousel, capped at
// ten items, with an optional lead-in text bubble.
func CarouselResponse(leadIn string, cards []types.BasicCard, quickReplies ...types.QuickReply) *types.SkillResponse {
	if len(cards) > maxCarouselItems {
		cards = cards[:maxCarouselItems]
	}
	for i := range cards {
		cards[i].Buttons = capButtons(cards[i].Buttons)
	}
	var outputs []types.SkillOutput
	if leadIn != "" {
		outputs = append(outputs, types.SkillOutput{SimpleText: &types.SimpleText{Text: truncateText(leadIn)}})
	}
	outputs = append(outputs, types.SkillOutput{Carousel: &types.Carousel{Type: "basicCard", Items: cards}})
	return &types.SkillResponse{
		Version: skillVersion,
		Template: types.SkillTemplate{
			Outputs:      outputs,
			QuickReplies: capQuickReplies(quickReplies),
		},
	}
}

// PlaceCard renders one hospital or pharmacy as a basic card with map and
// directions buttons. The origin, when known, anchors the directions link.
func PlaceCard(p types.Place, origin *types.Coordinates) types.BasicCard {
	var desc strings.Builder
	if p.Category != "" {
		desc.WriteString(p.Category + "\n")
	}
	if p.Address != "" {
		desc.WriteString("📍 " + p.Address + "\n")
	}
	if p.Phone != "" {
		desc.WriteString("📞 " + p.Phone + "\n")
	}
	if p.Distance != "" {
		desc.WriteString(formatDistance(p.Distance))
	}

	buttons := []types.CardButton{
		{Label: "지도 보기", Action: "webLink", WebLinkURL: MapURL(p.Name, p.Coordinates.X, p.Coordinates.Y)},
	}
	originX, originY := "", ""
	if origin != nil {
		originX, originY = origin.X, origin.Y
	}
	buttons = append(buttons, types.CardButton{
		Label:      "길찾기",
		Action:     "webLink",
		WebLinkURL: DirectionsURL(p.Name, p.Coordinates.X, p.Coordinates.Y, originX, originY),
	})
	if p.Phone != "" {
		buttons = append(buttons, types.CardButton{
			Label:      "전화하기",
			Action:     "webLink",
			WebLinkURL: "tel:" + strings.ReplaceAll(p.Phone, "-", ""),
		})
	}

	title := p.Name
	if p.IsSpecialtyMatch {
		title = "⭐ " + title
	}
	return types.BasicCard{
		Title:       title,
		Description: strings.TrimRight(desc.String(), "\n"),
		Thumbnail:   &types.Thumbnail{ImageURL: defaultThumbnailURL},
		Buttons:     buttons,
	}
}

// PlaceCards renders a result list, keeping at most the carousel cap.
func PlaceCards(places []types.Place, origin *types.Coordinates) []types.BasicCard {
	if len(places) > maxCarouselItems {
		places = places[:maxCarouselItems]
	}
	cards := make([]types.BasicCard, 0, len(places))
	for _, p := range places {
		cards = append(cards, PlaceCard(p, origin))
	}
	return cards
}

// QuickReplyText builds a message-sending suggestion chip.
func QuickReplyText(label, message string) types.QuickReply {
	return types.QuickReply{Label: label, Action: "message", MessageText: message}
}

func formatDistance(distance string) string {
	if distance == "" {
		return ""
	}
	return fmt.Sprintf("🚶 %sm", distance)
}

// truncateText enforces the 1000-rune text cap, ending visibly truncated
// text with an ellipsis marker.
func truncateText(text string) string {
	runes := []rune(text)
	if len(runes) <= maxSimpleTextRunes {
		return text
	}
	return string(runes[:maxSimpleTextRunes-3]) + "..."
}

func capButtons(buttons []types.CardButton) []types.CardButton {
	if len(buttons) > maxCardButtons {
		return buttons[:maxCardButtons]
	}
	return buttons
}

func capQuickReplies(replies []types.QuickReply) []types.QuickReply {
	if len(replies) > maxQuickReplies {
		return replies[:maxQuickReplies]
	}
	return replies
}
