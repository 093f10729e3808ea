// Package schedule holds the slot calendar rules: which days are bookable
// and which hour buckets exist on a working day.
package schedule

import (
	"time"
)

const (
	// OpenHour and LastHour bound the bookable hours, both inclusive.
	OpenHour = 9
	LastHour = 14

	// SlotsPerDay is the active-appointment capacity per doctor per day.
	SlotsPerDay = LastHour - OpenHour + 1

	// HorizonDays is how far ahead the day picker looks.
	HorizonDays = 14
)

// Russian federal public holidays, fixed-date.
var holidays = map[[2]int]bool{
	{1, 1}: true, {1, 2}: true, {1, 3}: true, {1, 4}: true,
	{1, 5}: true, {1, 6}: true, {1, 7}: true, {1, 8}: true,
	{2, 23}: true,
	{3, 8}:  true,
	{5, 1}:  true,
	{5, 9}:  true,
	{6, 12}: true,
	{11, 4}: true,
}

// IsHoliday reports whether the date is a public holiday.
func IsHoliday(t time.Time) bool {
	return holidays[[2]int{int(t.Month()), t.Day()}]
}

// IsWorkingDay reports whether appointments can be booked on the date.
func IsWorkingDay(t time.Time) bool {
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}
	return !IsHoliday(t)
}

// WorkingDays returns the bookable days within the horizon, starting with
// the day after from.
func WorkingDays(from time.Time) []time.Time {
	days := make([]time.Time, 0, HorizonDays)
	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	for i := 1; i <= HorizonDays; i++ {
		candidate := day.AddDate(0, 0, i)
		if IsWorkingDay(candidate) {
			days = append(days, candidate)
		}
	}
	return days
}

// Hours returns all bookable hour buckets of a working day.
func Hours() []int {
	hours := make([]int, 0, SlotsPerDay)
	for h := OpenHour; h <= LastHour; h++ {
		hours = append(hours, h)
	}
	return hours
}

// FreeHours returns the bookable hours minus the already booked ones.
func FreeHours(booked []int) []int {
	taken := make(map[int]bool, len(booked))
	for _, h := range booked {
		taken[h] = true
	}
	free := make([]int, 0, SlotsPerDay)
	for _, h := range Hours() {
		if !taken[h] {
			free = append(free, h)
		}
	}
	return free
}

// SlotTime combines a day with an hour bucket.
func SlotTime(day time.Time, hour int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())
}
