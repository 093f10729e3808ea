package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/medzapis/talon-bot/internal/repository"
)

func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq == nil || cq.Message == nil {
		return
	}
	b.answerCallback(cq)

	chatID := cq.Message.Chat.ID
	data := cq.Data
	st := b.sessions.get(chatID)

	switch {
	case strings.HasPrefix(data, cbHospital):
		b.handleHospitalCallback(ctx, chatID, st, strings.TrimPrefix(data, cbHospital))
	case strings.HasPrefix(data, cbDoctor):
		b.handleDoctorCallback(ctx, chatID, st, strings.TrimPrefix(data, cbDoctor))
	case strings.HasPrefix(data, cbDay):
		b.handleDayCallback(ctx, chatID, st, strings.TrimPrefix(data, cbDay))
	case strings.HasPrefix(data, cbTime):
		b.handleHourCallback(ctx, chatID, st, strings.TrimPrefix(data, cbTime))
	case data == cbConfirmAppt:
		b.handleConfirmAppointment(ctx, chatID, st)
	case strings.HasPrefix(data, cbConfirmCancel):
		b.handleConfirmCancel(ctx, chatID, st, strings.TrimPrefix(data, cbConfirmCancel))
	case strings.HasPrefix(data, cbCancel):
		b.handleCancelSelected(ctx, chatID, st, strings.TrimPrefix(data, cbCancel))
	case strings.HasPrefix(data, cbNotify):
		b.handleNotifyOffer(ctx, chatID, strings.TrimPrefix(data, cbNotify))
	case strings.HasPrefix(data, cbSearch):
		b.handleSearchRequest(ctx, chatID, strings.TrimPrefix(data, cbSearch))
	case data == cbRollback:
		b.handleRollback(ctx, chatID, st)
	}
}

func (b *Bot) handleHospitalCallback(ctx context.Context, chatID int64, st *session, idStr string) {
	hospitalID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || st.Category == "" {
		b.reply(ctx, chatID, textError)
		return
	}

	doctors, err := b.booking.DoctorsByCategoryAndHospital(ctx, st.Category, hospitalID)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to list doctors")
		b.reply(ctx, chatID, textError)
		return
	}
	if len(doctors) == 0 {
		b.reply(ctx, chatID, textNoDoctors)
		return
	}

	st.Hospital = hospitalID
	st.Stage = stageDoctor
	b.sessions.save(chatID, st)
	b.replyWithKeyboard(ctx, chatID, textChooseDoctor, doctorsKeyboard(doctors))
}

func (b *Bot) handleDoctorCallback(ctx context.Context, chatID int64, st *session, idStr string) {
	doctorID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		b.reply(ctx, chatID, textError)
		return
	}

	available, full, err := b.booking.AvailableDays(ctx, doctorID, now())
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to load available days")
		b.reply(ctx, chatID, textError)
		return
	}

	st.DoctorID = doctorID
	st.Stage = stageDay
	b.sessions.save(chatID, st)

	if len(available) == 0 {
		if len(full) > 0 {
			b.replyWithKeyboard(ctx, chatID, textNoDays+"\n"+textNotifyOffer, searchDatesKeyboard(doctorID, full))
			return
		}
		b.reply(ctx, chatID, textNoDays)
		return
	}
	b.replyWithKeyboard(ctx, chatID, textChooseDay, daysKeyboard(available, full, doctorID))
}

func (b *Bot) handleDayCallback(ctx context.Context, chatID int64, st *session, dateStr string) {
	day, err := time.Parse(callbackDateLayout, dateStr)
	if err != nil || st.DoctorID == 0 {
		b.reply(ctx, chatID, textError)
		return
	}

	hours, err := b.booking.AvailableHours(ctx, st.DoctorID, day)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to load available hours")
		b.reply(ctx, chatID, textError)
		return
	}

	if len(hours) == 0 {
		// the day filled up between the two keyboards
		b.replyWithKeyboard(ctx, chatID, textNoHours+"\n"+textNotifyOffer,
			searchDatesKeyboard(st.DoctorID, []time.Time{day}))
		return
	}

	st.Day = day
	st.Stage = stageHour
	b.sessions.save(chatID, st)
	b.replyWithKeyboard(ctx, chatID, textChooseHour, hoursKeyboard(hours))
}

func (b *Bot) handleHourCallback(ctx context.Context, chatID int64, st *session, hourStr string) {
	hour, err := strconv.Atoi(hourStr)
	if err != nil || st.DoctorID == 0 || st.Day.IsZero() {
		b.reply(ctx, chatID, textError)
		return
	}

	st.Hour = hour
	st.Stage = stageConfirm
	b.sessions.save(chatID, st)

	summary, err := b.bookingSummary(ctx, st)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to build booking summary")
		b.reply(ctx, chatID, textError)
		return
	}
	b.replyWithKeyboard(ctx, chatID, summary, confirmKeyboard())
}

func (b *Bot) bookingSummary(ctx context.Context, st *session) (string, error) {
	doctor, err := b.booking.Doctor(ctx, st.DoctorID)
	if err != nil {
		return "", err
	}
	hospital, err := b.booking.Hospital(ctx, doctor.HospitalID)
	if err != nil {
		return "", err
	}

	address := ""
	if hospital.Address != nil {
		address = ", " + *hospital.Address
	}
	return fmt.Sprintf("Подтвердите запись:\n%s, %s%s\n%s в %02d:00",
		doctor.FullName(), hospital.Name, address,
		st.Day.Format(displayDateLayout), st.Hour,
	), nil
}

// handleConfirmAppointment commits the booking. A stale or replayed callback
// with no scratch state is a terminal no-op: nothing is written.
func (b *Bot) handleConfirmAppointment(ctx context.Context, chatID int64, st *session) {
	if st.Stage != stageConfirm || st.DoctorID == 0 || st.Day.IsZero() {
		b.reply(ctx, chatID, textError)
		return
	}

	userID, err := b.userID(ctx, chatID)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to resolve user")
		b.reply(ctx, chatID, textError)
		return
	}

	err = b.booking.Book(ctx, userID, st.DoctorID, st.Day, st.Hour)
	switch {
	case errors.Is(err, repository.ErrDayFull):
		b.metrics.BookingsRejected.WithLabelValues("day_full").Inc()
		b.replyWithKeyboard(ctx, chatID, textDayFull+"\n"+textNotifyOffer,
			searchDatesKeyboard(st.DoctorID, []time.Time{st.Day}))
		return
	case errors.Is(err, repository.ErrSlotTaken):
		b.metrics.BookingsRejected.WithLabelValues("slot_taken").Inc()
		b.reply(ctx, chatID, textSlotTaken)
		b.handleDayCallback(ctx, chatID, st, st.Day.Format(callbackDateLayout))
		return
	case err != nil:
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to book appointment")
		b.reply(ctx, chatID, textError)
		return
	}

	b.metrics.BookingsCreated.Inc()
	b.sessions.reset(chatID)
	b.sendMainMenu(ctx, chatID, fmt.Sprintf("%s %s в %02d:00",
		textBooked, st.Day.Format(displayDateLayout), st.Hour))
}

func (b *Bot) handleCancelSelected(ctx context.Context, chatID int64, st *session, idStr string) {
	appointmentID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		b.reply(ctx, chatID, textError)
		return
	}

	appointment, err := b.booking.Appointment(ctx, appointmentID)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to load appointment")
		b.reply(ctx, chatID, textError)
		return
	}

	st.CancelID = appointmentID
	st.Stage = stageCancelConfirm
	b.sessions.save(chatID, st)
	b.replyWithKeyboard(ctx, chatID,
		fmt.Sprintf("Отказаться от записи на %s?", appointment.AppointmentDate.Format("02.01.2006 15:04")),
		cancelConfirmKeyboard(appointmentID))
}

func (b *Bot) handleConfirmCancel(ctx context.Context, chatID int64, st *session, idStr string) {
	appointmentID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || st.Stage != stageCancelConfirm || st.CancelID != appointmentID {
		b.reply(ctx, chatID, textError)
		return
	}

	userID, err := b.userID(ctx, chatID)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to resolve user")
		b.reply(ctx, chatID, textError)
		return
	}

	if err := b.booking.Cancel(ctx, userID, appointmentID); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to cancel appointment")
		b.reply(ctx, chatID, textError)
		return
	}

	b.metrics.BookingsCancelled.Inc()
	b.sessions.reset(chatID)
	b.sendMainMenu(ctx, chatID, textCancelled)
}

// handleNotifyOffer lists the doctor's fully booked days as subscription
// targets.
func (b *Bot) handleNotifyOffer(ctx context.Context, chatID int64, idStr string) {
	doctorID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		b.reply(ctx, chatID, textError)
		return
	}

	_, full, err := b.booking.AvailableDays(ctx, doctorID, now())
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to load full days")
		b.reply(ctx, chatID, textError)
		return
	}
	if len(full) == 0 {
		b.reply(ctx, chatID, textNoDays)
		return
	}
	b.replyWithKeyboard(ctx, chatID, textNotifyOffer, searchDatesKeyboard(doctorID, full))
}

// handleSearchRequest creates the notify-me subscription; data is
// "<doctorID>_<YYYY-MM-DD>".
func (b *Bot) handleSearchRequest(ctx context.Context, chatID int64, data string) {
	parts := strings.SplitN(data, "_", 2)
	if len(parts) != 2 {
		b.reply(ctx, chatID, textError)
		return
	}
	doctorID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		b.reply(ctx, chatID, textError)
		return
	}
	targetDate, err := time.Parse(callbackDateLayout, parts[1])
	if err != nil {
		b.reply(ctx, chatID, textError)
		return
	}

	userID, err := b.userID(ctx, chatID)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to resolve user")
		b.reply(ctx, chatID, textError)
		return
	}

	if err := b.booking.RequestNotification(ctx, userID, doctorID, targetDate); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to create search request")
		b.reply(ctx, chatID, textError)
		return
	}

	b.metrics.SearchRequestsCreated.Inc()
	b.sendMainMenu(ctx, chatID, textNotifyCreated)
}

// handleRollback steps one stage back in whichever flow is active.
func (b *Bot) handleRollback(ctx context.Context, chatID int64, st *session) {
	switch st.Stage {
	case stageHospital:
		b.startSearch(ctx, chatID, st)
	case stageDoctor:
		st.Stage = stageHospital
		b.sessions.save(chatID, st)
		b.handleCategoryChosen(ctx, chatID, st, st.Category)
	case stageDay:
		b.handleHospitalCallback(ctx, chatID, st, strconv.FormatInt(st.Hospital, 10))
	case stageHour:
		b.handleDoctorCallback(ctx, chatID, st, strconv.FormatInt(st.DoctorID, 10))
	case stageConfirm:
		b.handleDayCallback(ctx, chatID, st, st.Day.Format(callbackDateLayout))
	case stageCancelConfirm:
		st.Stage = stageCancelSelect
		st.CancelID = 0
		b.sessions.save(chatID, st)
		b.reply(ctx, chatID, textCancelAbort)
		b.startCancelFlow(ctx, chatID, st)
	default:
		b.sessions.reset(chatID)
		b.sendMainMenu(ctx, chatID, textMainMenu)
	}
}
