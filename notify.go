package main

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"sysagent/internal/format"
)

// telegramNotifier pushes alert and fatal events to a Telegram chat.
// The log sink still records every cycle; only this outbound channel is
// rate limited by the cooldown.
type telegramNotifier struct {
	bot      BotAPI
	chatID   int64
	cooldown time.Duration

	mu        sync.Mutex
	lastAlert time.Time
}

func newTelegramNotifier(bot BotAPI, cfg TelegramConfig) *telegramNotifier {
	return &telegramNotifier{
		bot:      bot,
		chatID:   cfg.ChatID,
		cooldown: time.Duration(cfg.CooldownMinutes) * time.Minute,
	}
}

func (n *telegramNotifier) Emit(e Event) {
	switch e.Kind {
	case EventAlert:
		if !n.takeAlertSlot(e.Time) {
			return
		}
		msg := fmt.Sprintf("🚨 *High CPU Usage*\n\n"+
			"Time: `%s`\n"+
			"CPU: `%s` %s\n"+
			"Threshold: `%s`\n"+
			"Excess: `%s` above threshold",
			e.Time.Format("2006-01-02 15:04:05"),
			format.FormatPercent(e.CPUPercent),
			format.MakeProgressBar(e.CPUPercent),
			format.FormatPercent(e.Threshold),
			format.FormatPercent(e.Excess))
		n.send(msg)
	case EventFatal:
		n.send(fmt.Sprintf("❌ *Monitoring stopped*\n\n`%v`", e.Err))
	}
}

// takeAlertSlot enforces the cooldown between outbound alerts.
func (n *telegramNotifier) takeAlertSlot(at time.Time) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.lastAlert.IsZero() && at.Sub(n.lastAlert) < n.cooldown {
		return false
	}
	n.lastAlert = at
	return true
}

func (n *telegramNotifier) send(text string) {
	m := tgbotapi.NewMessage(n.chatID, text)
	m.ParseMode = "Markdown"
	safeSend(n.bot, m)
}

// safeSend sends a Telegram message and logs any error
func safeSend(bot BotAPI, msg tgbotapi.Chattable) {
	if bot == nil {
		return
	}
	if _, err := bot.Send(msg); err != nil {
		slog.Error("Telegram send failed", "err", err)
	}
}
