package model

import (
	"fmt"
	"strings"
)

// Month is an upper-case English month name, the format the backend stores.
type Month string

const (
	January   Month = "JANUARY"
	February  Month = "FEBRUARY"
	March     Month = "MARCH"
	April     Month = "APRIL"
	May       Month = "MAY"
	June      Month = "JUNE"
	July      Month = "JULY"
	August    Month = "AUGUST"
	September Month = "SEPTEMBER"
	October   Month = "OCTOBER"
	November  Month = "NOVEMBER"
	December  Month = "DECEMBER"
)

// Present is the end-month choice for an experience that has not ended.
const Present = "present"

var months = []Month{
	January, February, March, April, May, June,
	July, August, September, October, November, December,
}

// Months returns the twelve months in calendar order.
func Months() []Month {
	out := make([]Month, len(months))
	copy(out, months)
	return out
}

// ParseMonth accepts a month name in any letter case.
func ParseMonth(s string) (Month, bool) {
	m := Month(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range months {
		if m == known {
			return m, true
		}
	}
	return "", false
}

// Experience is one work-history entry. EndMonth is empty (or "present")
// for a position that is still held; EndYear is zero in that case.
type Experience struct {
	ID         int64    `json:"id"`
	Position   string   `json:"position"`
	Company    string   `json:"company"`
	Logo       string   `json:"logo"`
	StartMonth Month    `json:"start_month"`
	StartYear  int      `json:"start_year"`
	EndMonth   Month    `json:"end_month,omitempty"`
	EndYear    int      `json:"end_year,omitempty"`
	Jobdesk    []string `json:"jobdesk"`
	Tech       []string `json:"tech"`
}

// GetID lets Experience live in a screen.Collection.
func (e Experience) GetID() int64 { return e.ID }

// IsCurrent reports whether the experience has no end month.
func (e Experience) IsCurrent() bool {
	return e.EndMonth == "" || strings.EqualFold(string(e.EndMonth), Present)
}

// Duration renders the range shown on cards, e.g. "MARCH 2021 - JULY 2022"
// or "MARCH 2021 - Present".
func (e Experience) Duration() string {
	start := formatMonthYear(e.StartMonth, e.StartYear)
	if e.IsCurrent() {
		return start + " - Present"
	}
	return start + " - " + formatMonthYear(e.EndMonth, e.EndYear)
}

func formatMonthYear(m Month, year int) string {
	if year == 0 {
		return string(m)
	}
	return fmt.Sprintf("%s %d", m, year)
}
