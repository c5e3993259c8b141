package service

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"binary_bot/internal/models"
	"binary_bot/internal/modules/config"
	"binary_bot/internal/notify"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// botAPI: часть *tgbot.BotAPI, которой пользуемся.
type botAPI interface {
	Send(c tgbot.Chattable) (tgbot.Message, error)
	GetUpdatesChan(config tgbot.UpdateConfig) tgbot.UpdatesChannel
	StopReceivingUpdates()
}

// RunControl: управление запусками для команд /runs и /stop.
type RunControl interface {
	List() []models.RunSnapshot
	Cancel(id string) error
	CancelAll() int
}

const (
	// long polling держит запрос updatesTimeout секунд, клиент ждёт дольше
	updatesTimeout = 30
	httpTimeout    = 45 * time.Second

	outboxSize = 64
)

// Telegram: отчёты о сделках в чат и команды управления.
// Без токена или chat_id ничего не делает.
// Отчёты уходят через очередь: торговый цикл никогда не ждёт Telegram.
type Telegram struct {
	bot    botAPI
	chatID int64
	log    *zap.Logger

	outbox   chan string
	done     chan struct{}
	stopOnce sync.Once

	mu      sync.Mutex
	control RunControl
}

func NewTelegram(cfg *config.Config, log *zap.Logger) (*Telegram, error) {
	if cfg.Telegram.Token == "" || cfg.Telegram.ChatID == 0 {
		log.Info("[TG] disabled: token or chat_id not set")
		return &Telegram{log: log}, nil
	}

	b, err := tgbot.NewBotAPIWithClient(cfg.Telegram.Token, tgbot.APIEndpoint, &http.Client{Timeout: httpTimeout})
	if err != nil {
		return nil, errors.Wrap(err, "NewTelegram")
	}
	return newTelegram(b, cfg.Telegram.ChatID, log), nil
}

func newTelegram(bot botAPI, chatID int64, log *zap.Logger) *Telegram {
	t := &Telegram{
		bot:    bot,
		chatID: chatID,
		log:    log,
		outbox: make(chan string, outboxSize),
		done:   make(chan struct{}),
	}
	go t.deliver()
	return t
}

// enqueue не блокирует: при полной очереди сообщение теряется.
func (t *Telegram) enqueue(text string) {
	if !t.Enabled() {
		return
	}
	select {
	case t.outbox <- text:
	default:
		t.log.Warn("[TG] outbox full, report dropped")
	}
}

func (t *Telegram) deliver() {
	for {
		select {
		case <-t.done:
			return
		case text := <-t.outbox:
			if _, err := t.bot.Send(tgbot.NewMessage(t.chatID, text)); err != nil {
				t.log.Warn("[TG] send report", zap.Error(err))
			}
		}
	}
}

func (t *Telegram) Enabled() bool { return t != nil && t.bot != nil && t.chatID != 0 }

func (t *Telegram) SetControl(c RunControl) {
	t.mu.Lock()
	t.control = c
	t.mu.Unlock()
}

func (t *Telegram) runControl() RunControl {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.control
}

func (t *Telegram) Send(_ context.Context, chatID int64, msg string) (tgbot.Message, error) {
	if !t.Enabled() {
		return tgbot.Message{}, nil
	}
	return t.bot.Send(tgbot.NewMessage(chatID, msg))
}

func (t *Telegram) SendF(ctx context.Context, chatID int64, format string, args ...any) (tgbot.Message, error) {
	return t.Send(ctx, chatID, fmt.Sprintf(format, args...))
}

// Iteration: в чат идут только итерации со сделкой.
func (t *Telegram) Iteration(_ context.Context, rep models.IterationReport) {
	if !rep.Traded {
		return
	}
	t.enqueue(notify.FormatIteration(rep))
}

func (t *Telegram) Finished(_ context.Context, res models.RunResult) {
	t.enqueue(fmt.Sprintf("[%s] %s", res.RunID, notify.FormatFinished(res)))
}

// Start читает апдейты в фоне до отмены ctx или Stop.
func (t *Telegram) Start(ctx context.Context) {
	if !t.Enabled() {
		return
	}
	u := tgbot.NewUpdate(0)
	u.Timeout = updatesTimeout
	updates := t.bot.GetUpdatesChan(u)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case update, ok := <-updates:
				if !ok {
					return
				}
				t.handleUpdate(ctx, update)
			}
		}
	}()
}

func (t *Telegram) Stop() {
	if !t.Enabled() {
		return
	}
	t.stopOnce.Do(func() {
		close(t.done)
		t.bot.StopReceivingUpdates()
	})
}
