package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/medzapis/talon-bot/internal/repository"
)

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg == nil || msg.From == nil {
		return
	}
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	if strings.HasPrefix(text, "/start") {
		b.handleStart(ctx, msg)
		return
	}

	st := b.sessions.get(chatID)

	// registration steps consume free text before anything else
	if st.Stage >= stageFirstName && st.Stage <= stagePassport {
		b.handleRegistrationInput(ctx, chatID, st, text)
		return
	}

	switch text {
	case buttonSearch:
		b.startSearch(ctx, chatID, st)
		return
	case buttonBack:
		b.sessions.reset(chatID)
		b.sendMainMenu(ctx, chatID, textMainMenu)
		return
	case buttonMyAppointments:
		b.handleMyAppointments(ctx, chatID)
		return
	case buttonDecline:
		b.startCancelFlow(ctx, chatID, st)
		return
	}

	// a category label picked from the reply keyboard
	if st.Stage == stageCategory {
		b.handleCategoryChosen(ctx, chatID, st, text)
		return
	}

	b.reply(ctx, chatID, textHint)
}

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	b.sessions.reset(chatID)

	if err := b.registration.EnsureUser(ctx, chatID, msg.From.UserName); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to register user")
		b.reply(ctx, chatID, textError)
		return
	}

	user, err := b.registration.User(ctx, chatID)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to load user")
		b.reply(ctx, chatID, textError)
		return
	}

	if !user.ProfileComplete() {
		st := b.sessions.get(chatID)
		st.Stage = stageFirstName
		b.sessions.save(chatID, st)
		b.reply(ctx, chatID, textAskFirstName)
		return
	}

	b.sendMainMenu(ctx, chatID, textGreeting)
}

// handleRegistrationInput advances the strictly ordered five-field
// collection. Invalid input re-prompts the same field.
func (b *Bot) handleRegistrationInput(ctx context.Context, chatID int64, st *session, text string) {
	switch st.Stage {
	case stageFirstName:
		if !b.registration.ValidName(text) {
			b.reply(ctx, chatID, textBadName)
			return
		}
		st.Profile.FirstName = text
		st.Stage = stageLastName
		b.sessions.save(chatID, st)
		b.reply(ctx, chatID, textAskLastName)
	case stageLastName:
		if !b.registration.ValidName(text) {
			b.reply(ctx, chatID, textBadName)
			return
		}
		st.Profile.LastName = text
		st.Stage = stagePatronymic
		b.sessions.save(chatID, st)
		b.reply(ctx, chatID, textAskPatronymic)
	case stagePatronymic:
		if !b.registration.ValidName(text) {
			b.reply(ctx, chatID, textBadName)
			return
		}
		st.Profile.Patronymic = text
		st.Stage = stagePolicy
		b.sessions.save(chatID, st)
		b.reply(ctx, chatID, textAskPolicy)
	case stagePolicy:
		if !b.registration.ValidMedicalPolicy(text) {
			b.reply(ctx, chatID, textBadPolicy)
			return
		}
		st.Profile.PolicyNumber = text
		st.Stage = stagePassport
		b.sessions.save(chatID, st)
		b.reply(ctx, chatID, textAskPassport)
	case stagePassport:
		if !b.registration.ValidPassport(text) {
			b.reply(ctx, chatID, textBadPassport)
			return
		}
		st.Profile.PassportNumber = text
		if err := b.registration.SaveProfile(ctx, chatID, &st.Profile); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Msg("failed to save profile")
			b.reply(ctx, chatID, textError)
			return
		}
		b.sessions.reset(chatID)
		b.sendMainMenu(ctx, chatID, textRegistered)
	}
}

func (b *Bot) startSearch(ctx context.Context, chatID int64, st *session) {
	categories, err := b.booking.Categories(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to list categories")
		b.reply(ctx, chatID, textError)
		return
	}
	if len(categories) == 0 {
		b.reply(ctx, chatID, textNoCategories)
		return
	}

	st.Stage = stageCategory
	b.sessions.save(chatID, st)
	b.replyWithKeyboard(ctx, chatID, textChooseCategory, categoriesKeyboard(categories))
}

func (b *Bot) handleCategoryChosen(ctx context.Context, chatID int64, st *session, category string) {
	hospitals, err := b.booking.HospitalsByCategory(ctx, category)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to list hospitals")
		b.reply(ctx, chatID, textError)
		return
	}
	if len(hospitals) == 0 {
		b.reply(ctx, chatID, textNoHospitals)
		return
	}

	st.Category = category
	st.Stage = stageHospital
	b.sessions.save(chatID, st)
	b.replyWithKeyboard(ctx, chatID, textChooseHospital, hospitalsKeyboard(hospitals))
}

func (b *Bot) handleMyAppointments(ctx context.Context, chatID int64) {
	user, err := b.registration.User(ctx, chatID)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to load user")
		b.reply(ctx, chatID, textError)
		return
	}

	appointments, err := b.booking.ActiveAppointments(ctx, user.ID)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to list appointments")
		b.reply(ctx, chatID, textError)
		return
	}
	if len(appointments) == 0 {
		b.reply(ctx, chatID, textNoAppointments)
		return
	}

	var sb strings.Builder
	sb.WriteString("Ваши записи:\n")
	for _, a := range appointments {
		address := ""
		if a.HospitalAddress != nil {
			address = ", " + *a.HospitalAddress
		}
		fmt.Fprintf(&sb, "\n%s — %s %s, %s%s",
			a.AppointmentDate.Format("02.01.2006 15:04"),
			a.DoctorFirstName, a.DoctorLastName,
			a.HospitalName, address,
		)
	}
	b.reply(ctx, chatID, sb.String())
}

func (b *Bot) startCancelFlow(ctx context.Context, chatID int64, st *session) {
	user, err := b.registration.User(ctx, chatID)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to load user")
		b.reply(ctx, chatID, textError)
		return
	}

	appointments, err := b.booking.ActiveAppointments(ctx, user.ID)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to list appointments")
		b.reply(ctx, chatID, textError)
		return
	}
	if len(appointments) == 0 {
		b.reply(ctx, chatID, textNoAppointments)
		return
	}

	st.Stage = stageCancelSelect
	b.sessions.save(chatID, st)
	b.replyWithKeyboard(ctx, chatID, textCancelPrompt, cancelListKeyboard(appointments))
}

// userID resolves the chat to the persisted user row.
func (b *Bot) userID(ctx context.Context, chatID int64) (int64, error) {
	user, err := b.registration.User(ctx, chatID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, err
		}
		return 0, fmt.Errorf("failed to load user: %w", err)
	}
	return user.ID, nil
}

// now is stubbed in tests.
var now = time.Now
