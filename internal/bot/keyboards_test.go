package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysKeyboardOmitsFullDays(t *testing.T) {
	available := []time.Time{
		time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC),
	}
	full := []time.Time{
		time.Date(2024, 6, 13, 0, 0, 0, 0, time.UTC),
	}

	kb := daysKeyboard(available, full, 7)

	var data []string
	for _, row := range kb.InlineKeyboard {
		for _, btn := range row {
			require.NotNil(t, btn.CallbackData)
			data = append(data, *btn.CallbackData)
		}
	}

	assert.Contains(t, data, "day_2024-06-10")
	assert.Contains(t, data, "day_2024-06-11")
	assert.NotContains(t, data, "day_2024-06-13")
	// full days only surface through the subscribe button
	assert.Contains(t, data, "notify_7")
}

func TestDaysKeyboardWithoutFullDaysHasNoNotifyButton(t *testing.T) {
	available := []time.Time{time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)}

	kb := daysKeyboard(available, nil, 7)

	for _, row := range kb.InlineKeyboard {
		for _, btn := range row {
			require.NotNil(t, btn.CallbackData)
			assert.NotContains(t, *btn.CallbackData, cbNotify)
		}
	}
}

func TestHoursKeyboardDataFormat(t *testing.T) {
	kb := hoursKeyboard([]int{9, 10, 11, 12})

	var data []string
	for _, row := range kb.InlineKeyboard {
		for _, btn := range row {
			require.NotNil(t, btn.CallbackData)
			data = append(data, *btn.CallbackData)
		}
	}

	assert.Contains(t, data, "time_09")
	assert.Contains(t, data, "time_12")
	// three buttons per row plus the rollback row
	assert.Len(t, kb.InlineKeyboard, 3)
}

func TestSearchDatesKeyboardDataFormat(t *testing.T) {
	full := []time.Time{time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)}

	kb := searchDatesKeyboard(3, full)

	require.NotEmpty(t, kb.InlineKeyboard)
	require.NotNil(t, kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "search_3_2024-06-10", *kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "10.06.2024", kb.InlineKeyboard[0][0].Text)
}

func TestCancelConfirmKeyboard(t *testing.T) {
	kb := cancelConfirmKeyboard(3)

	require.Len(t, kb.InlineKeyboard, 1)
	require.Len(t, kb.InlineKeyboard[0], 2)
	assert.Equal(t, "confirm_cancel_3", *kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, cbRollback, *kb.InlineKeyboard[0][1].CallbackData)
}
