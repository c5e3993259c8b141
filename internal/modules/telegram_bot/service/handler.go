package service

import (
	"context"
	"strconv"
	"strings"

	"binary_bot/internal/notify"
	"binary_bot/internal/runner"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const helpText = "Команды:\n" +
	"/runs - активные запуски\n" +
	"/stop <id> - остановить запуск\n" +
	"/stop all - остановить все"

func (t *Telegram) handleUpdate(ctx context.Context, update tgbot.Update) {
	msg := update.Message
	if msg == nil || msg.Chat == nil || !msg.IsCommand() {
		return
	}
	// управлять можно только из своего чата
	if msg.Chat.ID != t.chatID {
		t.log.Warn("[TG] command from foreign chat", zap.Int64("chat_id", msg.Chat.ID))
		return
	}

	var reply string
	switch msg.Command() {
	case "start", "help":
		reply = helpText
	case "runs":
		reply = t.handleRuns()
	case "stop":
		reply = t.handleStop(strings.TrimSpace(msg.CommandArguments()))
	default:
		reply = helpText
	}

	if _, err := t.Send(ctx, msg.Chat.ID, reply); err != nil {
		t.log.Warn("[TG] reply", zap.String("command", msg.Command()), zap.Error(err))
	}
}

func (t *Telegram) handleRuns() string {
	c := t.runControl()
	if c == nil {
		return "❗️ Менеджер запусков не подключён"
	}
	return notify.FormatRuns(c.List())
}

func (t *Telegram) handleStop(arg string) string {
	c := t.runControl()
	if c == nil {
		return "❗️ Менеджер запусков не подключён"
	}

	switch arg {
	case "":
		return "Укажи id: /stop <id> или /stop all"
	case "all":
		n := c.CancelAll()
		t.log.Info("[TG] stop all", zap.Int("count", n))
		return "⛔️ Остановлено запусков: " + strconv.Itoa(n)
	}

	if err := c.Cancel(arg); err != nil {
		if errors.Is(err, runner.ErrRunNotFound) {
			return "🤷 Запуск " + arg + " не найден"
		}
		return "❗️ " + err.Error()
	}
	return "⛔️ Запуск " + arg + " останавливается"
}
