package types

// Kakao i 오픈빌더 skill server payloads. Only the fields the dialogue
// handler actually reads or writes are modeled.

// SkillRequest is the inbound POST body from the openbuilder.
type SkillRequest struct {
	UserRequest SkillUserRequest `json:"userRequest"`
}

// SkillUserRequest carries the utterance and user identity.
type SkillUserRequest struct {
	Utterance string    `json:"utterance"`
	User      SkillUser `json:"user"`
}

// SkillUser identifies the chat user; ID keys the session store.
type SkillUser struct {
	ID string `json:"id"`
}

// UserID returns the session key, falling back to "anonymous" when the
// openbuilder omitted the user block.
func (r *SkillRequest) UserID() string {
	if r.UserRequest.User.ID == "" {
		return "anonymous"
	}
	return r.UserRequest.User.ID
}

// SkillResponse is the openbuilder v2.0 response envelope.
type SkillResponse struct {
	Version  string        `json:"version"`
	Template SkillTemplate `json:"template"`
}

// SkillTemplate holds outputs plus optional quick replies.
type SkillTemplate struct {
	Outputs      []SkillOutput `json:"outputs"`
	QuickReplies []QuickReply  `json:"quickReplies,omitempty"`
}

// SkillOutput is one output slot; exactly one of the fields is set.
type SkillOutput struct {
	SimpleText *SimpleText `json:"simpleText,omitempty"`
	BasicCard  *BasicCard  `json:"basicCard,omitempty"`
	Carousel   *Carousel   `json:"carousel,omitempty"`
}

// SimpleText is a plain text bubble (openbuilder caps it at 1000 chars).
type SimpleText struct {
	Text string `json:"text"`
}

// BasicCard is a single card with optional buttons.
type BasicCard struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Thumbnail   *Thumbnail   `json:"thumbnail,omitempty"`
	Buttons     []CardButton `json:"buttons,omitempty"`
}

// Thumbnail is the card image.
type Thumbnail struct {
	ImageURL string `json:"imageUrl"`
}

// CardButton is a card action; WebLinkURL is set for action "webLink".
type CardButton struct {
	Label       string `json:"label"`
	Action      string `json:"action"`
	MessageText string `json:"messageText,omitempty"`
	WebLinkURL  string `json:"webLinkUrl,omitempty"`
}

// Carousel holds up to ten basic cards.
type Carousel struct {
	Type  string      `json:"type"`
	Items []BasicCard `json:"items"`
}

// QuickReply is a suggestion chip under the message.
type QuickReply struct {
	Label       string `json:"label"`
	Action      string `json:"action"`
	MessageText string `json:"messageText"`
}
