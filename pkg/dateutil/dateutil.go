package dateutil

import (
	"time"
)

// Age calculates the age in whole years at a given date
func Age(birthDate, atDate time.Time) int {
	age := atDate.Year() - birthDate.Year()
	if atDate.Month() < birthDate.Month() ||
		(atDate.Month() == birthDate.Month() && atDate.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// Today returns the current date at midnight UTC
func Today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// OrToday returns date, or Today when date is the zero time
func OrToday(date time.Time) time.Time {
	if date.IsZero() {
		return Today()
	}
	return date
}

// DateForAge returns the date on which someone born on birthDate turns age
func DateForAge(birthDate time.Time, age int) time.Time {
	return birthDate.AddDate(age, 0, 0)
}
