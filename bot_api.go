package main

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// BotAPI abstracts the Telegram bot methods used by the notifier.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}
