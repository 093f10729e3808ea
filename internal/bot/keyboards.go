package bot

import (
	"fmt"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/medzapis/talon-bot/internal/model"
)

// Callback-data prefixes. These are part of the observable bot contract.
const (
	cbDoctor        = "doctor_"
	cbDay           = "day_"
	cbTime          = "time_"
	cbCancel        = "cancel_"
	cbConfirmCancel = "confirm_cancel_"
	cbConfirmAppt   = "confirm_appointment_"
	cbHospital      = "hospital_"
	cbRollback      = "rollback"
	cbNotify        = "notify_"
	cbSearch        = "search_"
)

const (
	callbackDateLayout = "2006-01-02"
	displayDateLayout  = "02.01.2006"
)

var mainMenu = tgbotapi.NewReplyKeyboard(
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(buttonSearch),
		tgbotapi.NewKeyboardButton(buttonMyAppointments),
	),
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(buttonDecline),
	),
)

func categoriesKeyboard(categories []string) tgbotapi.ReplyKeyboardMarkup {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(categories)+1)
	for _, c := range categories {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(c)))
	}
	rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(buttonBack)))
	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.ResizeKeyboard = true
	return kb
}

func rollbackRow() []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⬅️ Назад", cbRollback),
	)
}

func hospitalsKeyboard(hospitals []*model.Hospital) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(hospitals)+1)
	for _, h := range hospitals {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(h.Name, cbHospital+strconv.FormatInt(h.ID, 10)),
		))
	}
	rows = append(rows, rollbackRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func doctorsKeyboard(doctors []*model.Doctor) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(doctors)+1)
	for _, d := range doctors {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(d.FullName(), cbDoctor+strconv.FormatInt(d.ID, 10)),
		))
	}
	rows = append(rows, rollbackRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// daysKeyboard lists bookable days; full days are omitted. When some days
// are full, a subscribe button is appended.
func daysKeyboard(available, full []time.Time, doctorID int64) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(available)+2)
	for _, d := range available {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				d.Format(displayDateLayout),
				cbDay+d.Format(callbackDateLayout),
			),
		))
	}
	if len(full) > 0 {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				"🔔 Сообщить, если талон освободится",
				cbNotify+strconv.FormatInt(doctorID, 10),
			),
		))
	}
	rows = append(rows, rollbackRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func hoursKeyboard(hours []int) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(hours)+1)
	row := make([]tgbotapi.InlineKeyboardButton, 0, 3)
	for _, h := range hours {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("%02d:00", h),
			fmt.Sprintf("%s%02d", cbTime, h),
		))
		if len(row) == 3 {
			rows = append(rows, row)
			row = make([]tgbotapi.InlineKeyboardButton, 0, 3)
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, rollbackRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func confirmKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Подтвердить", cbConfirmAppt),
		),
		rollbackRow(),
	)
}

func cancelListKeyboard(appointments []*model.AppointmentInfo) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(appointments)+1)
	for _, a := range appointments {
		label := fmt.Sprintf("%s %s, %s",
			a.DoctorFirstName, a.DoctorLastName,
			a.AppointmentDate.Format("02.01.2006 15:04"),
		)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, cbCancel+strconv.FormatInt(a.ID, 10)),
		))
	}
	rows = append(rows, rollbackRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func cancelConfirmKeyboard(appointmentID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Да", cbConfirmCancel+strconv.FormatInt(appointmentID, 10)),
			tgbotapi.NewInlineKeyboardButtonData("Нет", cbRollback),
		),
	)
}

// searchDatesKeyboard lists full days as notify-me subscription targets.
func searchDatesKeyboard(doctorID int64, full []time.Time) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(full)+1)
	for _, d := range full {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				d.Format(displayDateLayout),
				fmt.Sprintf("%s%d_%s", cbSearch, doctorID, d.Format(callbackDateLayout)),
			),
		))
	}
	rows = append(rows, rollbackRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
