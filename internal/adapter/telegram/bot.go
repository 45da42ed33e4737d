// Package telegram is the chat transport for the product importer.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/bazaarline/importer/internal/core/domain"
	"github.com/bazaarline/importer/internal/core/port"
	"github.com/bazaarline/importer/pkg/stats"
)

const pollTimeoutSec = 30

const (
	replyUnauthorized = "⚠️ شما مجاز به استفاده از این ربات نیستید"
	replyEmpty        = "❌ پیام باید متن یا کپشن داشته باشد."
	replyNoData       = "⚠️ اطلاعات محصول کامل نیست\n\n" +
		"لطفاً از فرمت زیر استفاده کنید:\n" +
		"نام محصول\n" +
		"قیمت: 1,000,000 تومان\n" +
		"توضیحات..."
	replyIncomplete = "⚠️ فرمت پیام صحیح نیست.\n" +
		"لطفاً حداقل نام و قیمت محصول را وارد کنید."
	replyStoreFailed = "❌ خطا در ذخیره محصول"
)

type Bot struct {
	api      *tgbotapi.BotAPI
	importer port.MessageImporter
	stats    *stats.Importer
	admins   map[int64]struct{}
}

func NewBot(
	token string,
	adminChatIDs []int64,
	importer port.MessageImporter,
	st *stats.Importer,
) (*Bot, error) {
	const op = "NewBot"

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	admins := make(map[int64]struct{}, len(adminChatIDs))
	for _, id := range adminChatIDs {
		admins[id] = struct{}{}
	}

	return &Bot{
		api:      api,
		importer: importer,
		stats:    st,
		admins:   admins,
	}, nil
}

func (b *Bot) Run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	const op = "Bot.Run"
	log := slog.With("op", op)

	defer wg.Done()
	defer stopFn()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollTimeoutSec
	updates := b.api.GetUpdatesChan(u)

	log.Info("bot is running", "username", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			log.Info("stopped")
			return
		case update, ok := <-updates:
			if !ok {
				log.Info("updates channel is closed")
				return
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) Close() {
	const op = "Bot.Close"
	log := slog.With("op", op)

	log.Info("closing bot...")
	b.api.StopReceivingUpdates()
	log.Info("bot is closed")
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if !b.isAdmin(msg.Chat.ID) {
		b.reply(msg.Chat.ID, replyUnauthorized)
		return
	}

	if msg.IsCommand() {
		b.handleCommand(msg)
		return
	}

	b.importMessage(ctx, msg)
}

func (b *Bot) isAdmin(chatID int64) bool {
	// No configured admins means an open bot, useful in development.
	if len(b.admins) == 0 {
		return true
	}
	_, ok := b.admins[chatID]
	return ok
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.reply(msg.Chat.ID, b.welcomeText())
	case "help":
		b.reply(msg.Chat.ID, helpText)
	case "stats":
		b.reply(msg.Chat.ID, b.statsText())
	case "status":
		b.reply(msg.Chat.ID, statusText)
	case "ping":
		b.reply(msg.Chat.ID, "pong")
	}
}

func (b *Bot) importMessage(ctx context.Context, msg *tgbotapi.Message) {
	const op = "Bot.importMessage"
	log := slog.With("op", op, "chatID", msg.Chat.ID)

	b.stats.MessageProcessed()
	if msg.ForwardDate != 0 {
		b.stats.MessageForwarded()
	}

	raw := domain.RawMessage{
		Text:     msg.Text,
		Caption:  msg.Caption,
		PhotoURL: b.photoURL(msg),
	}

	outcome, err := b.importer.ImportMessage(ctx, raw)
	if err != nil {
		b.stats.Error()
		b.reply(msg.Chat.ID, rejectionReply(err))
		log.Warn("import rejected", "err", err)
		return
	}

	b.stats.ProductImported()
	b.reply(msg.Chat.ID, successReply(outcome))
	log.Info("product imported",
		"action", outcome.Action,
		"productID", outcome.ProductID,
		"slug", outcome.Product.Slug)
}

// photoURL resolves a direct link to the largest photo size, empty
// when the message carries no photo.
func (b *Bot) photoURL(msg *tgbotapi.Message) string {
	if len(msg.Photo) == 0 {
		return ""
	}

	largest := msg.Photo[len(msg.Photo)-1]
	url, err := b.api.GetFileDirectURL(largest.FileID)
	if err != nil {
		slog.Warn("failed to resolve photo url", "err", err)
		return ""
	}
	return url
}

func (b *Bot) reply(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		slog.Error("failed to send reply", "chatID", chatID, "err", err)
	}
}

func rejectionReply(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyMessage):
		return replyEmpty
	case errors.Is(err, domain.ErrNoProductData):
		return replyNoData
	case errors.Is(err, domain.ErrIncomplete):
		return replyIncomplete
	default:
		return replyStoreFailed
	}
}

func successReply(o domain.ImportOutcome) string {
	return fmt.Sprintf(
		"✅ محصول با موفقیت ثبت شد!\n\n"+
			"📦 %s\n"+
			"💰 %s تومان\n"+
			"📂 %s\n"+
			"📊 موجودی: %d عدد",
		o.Product.Name,
		formatThousands(o.Product.Price),
		o.Product.Category,
		o.Product.Stock,
	)
}

func (b *Bot) welcomeText() string {
	snap := b.stats.Snapshot()
	return fmt.Sprintf(
		"🤖 خوش آمدید به ربات Import محصولات\n\n"+
			"📋 دستورات موجود:\n"+
			"/help - راهنمای استفاده\n"+
			"/stats - آمار ربات\n"+
			"/status - وضعیت ربات\n\n"+
			"🔄 نحوه استفاده:\n"+
			"1. پیام‌های حاوی اطلاعات محصول را به این ربات فوروارد کنید\n"+
			"2. یا مستقیماً اطلاعات محصول را ارسال کنید\n"+
			"3. ربات به‌طور خودکار محصول را استخراج و ذخیره خواهد کرد\n\n"+
			"📊 آمار فعلی: %d محصول import شده",
		snap.Imported,
	)
}

const helpText = "🔍 راهنمای استفاده از ربات Import محصولات\n\n" +
	"📝 فرمت پیام محصول:\n" +
	"نام محصول\n" +
	"قیمت: 1,000,000 تومان\n" +
	"توضیحات محصول\n" +
	"#دسته_بندی\n\n" +
	"🖼 تصاویر:\n" +
	"- تصاویر محصولات به‌طور خودکار پردازش می‌شوند\n" +
	"- Caption تصویر برای استخراج اطلاعات استفاده می‌شود\n\n" +
	"⚙️ پردازش خودکار:\n" +
	"- تشخیص قیمت به تومان\n" +
	"- استخراج دسته‌بندی از کلمات کلیدی\n" +
	"- ایجاد slug خودکار\n" +
	"- بررسی تکراری"

const statusText = "🤖 وضعیت ربات Import\n\n" +
	"🟢 آنلاین و آماده\n\n" +
	"⚡ آماده برای Import محصولات"

func (b *Bot) statsText() string {
	snap := b.stats.Snapshot()

	lastActivity := "هرگز"
	if !snap.LastActivity.IsZero() {
		lastActivity = snap.LastActivity.Format(time.RFC3339)
	}

	return fmt.Sprintf(
		"📊 آمار ربات Import محصولات\n\n"+
			"✅ محصولات Import شده: %d\n"+
			"📨 پیام‌های پردازش شده: %d\n"+
			"📤 پیام‌های فوروارد شده: %d\n"+
			"❌ خطاها: %d\n\n"+
			"⏰ آخرین فعالیت: %s",
		snap.Imported, snap.Processed, snap.Forwarded, snap.Errors,
		lastActivity,
	)
}

// formatThousands renders 1250000 as "1,250,000".
func formatThousands(v int) string {
	s := strconv.Itoa(v)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}

	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
