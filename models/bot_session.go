package models

import (
	"fmt"
	"time"
)

// BotState is the step a chat booking dialogue is currently waiting on.
type BotState string

const (
	BotStateAskName  BotState = "ask_name"
	BotStateAskPhone BotState = "ask_phone"
	BotStateAskDate  BotState = "ask_date"
	BotStateAskTime  BotState = "ask_time"
	BotStateAskNote  BotState = "ask_note"
	BotStateComplete BotState = "complete"
)

// BotStates lists every state in dialogue order.
var BotStates = []BotState{
	BotStateAskName,
	BotStateAskPhone,
	BotStateAskDate,
	BotStateAskTime,
	BotStateAskNote,
	BotStateComplete,
}

// ParseBotState converts a stored tag into a BotState. Sessions written before the
// dialogue gained an explicit first step carry "" or "start"; both mean ask_name.
func ParseBotState(tag string) (BotState, error) {
	switch tag {
	case "", "start":
		return BotStateAskName, nil
	}
	for _, s := range BotStates {
		if string(s) == tag {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown bot state %q", tag)
}

// IsTerminal reports whether no further transitions are defined from s.
func (s BotState) IsTerminal() bool {
	return s == BotStateComplete
}

// BotAnswers is the partial booking collected across dialogue turns.
type BotAnswers struct {
	ClientName    string `bson:"client_name,omitempty" json:"client_name,omitempty"`
	Phone         string `bson:"phone,omitempty" json:"phone,omitempty"`
	PreferredDate string `bson:"preferred_date,omitempty" json:"preferred_date,omitempty"`
	PreferredTime string `bson:"preferred_time,omitempty" json:"preferred_time,omitempty"`
	Note          string `bson:"note,omitempty" json:"note,omitempty"`
}

// BotSession is one chat user's booking dialogue. There is at most one per TelegramUserID.
type BotSession struct {
	ID             string     `bson:"id" json:"id"`
	TelegramUserID int64      `bson:"telegram_user_id" json:"telegram_user_id"`
	Username       string     `bson:"username,omitempty" json:"username,omitempty"`
	State          BotState   `bson:"state" json:"state"`
	Answers        BotAnswers `bson:"data" json:"data"`
	CreatedAt      time.Time  `bson:"created_at" json:"created_at"`
	LastUpdate     *time.Time `bson:"last_update,omitempty" json:"last_update,omitempty"`
}

// BotUpdate is an inbound chat message as delivered to the webhook.
type BotUpdate struct {
	UserID      *int64  `json:"user_id"`
	MessageText *string `json:"message_text"`
	Username    *string `json:"username"`
}

// Text returns the message body, or "" when the update carried none.
func (u BotUpdate) Text() string {
	if u.MessageText == nil {
		return ""
	}
	return *u.MessageText
}

// BotReply is what the webhook answers with.
type BotReply struct {
	Reply string   `json:"reply"`
	State BotState `json:"state"`
}
