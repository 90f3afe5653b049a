package stock

import (
	"time"

	"go-pharmacy-inventory/internal/model"
)

// Window is a reporting date filter applied to a transaction's stored date.
type Window string

const (
	WindowToday Window = "today"
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
	WindowAll   Window = "all"
)

// ParseWindow accepts the window names; empty means all time.
func ParseWindow(s string) (Window, error) {
	switch w := Window(s); w {
	case "":
		return WindowAll, nil
	case WindowToday, WindowWeek, WindowMonth, WindowAll:
		return w, nil
	}
	return "", invalidParam("window", s, "today, week, month or all")
}

// Bounds returns the closed interval [from, to] of the window as of now.
// bounded is false for WindowAll.
func (w Window) Bounds(now time.Time) (from, to model.Date, bounded bool) {
	today := model.DateOf(now)
	switch w {
	case WindowToday:
		return today, today, true
	case WindowWeek:
		return today.AddDays(-7), today, true
	case WindowMonth:
		return today.AddMonths(-1), today, true
	}
	return model.Date{}, model.Date{}, false
}

// Contains reports whether d falls inside the window as of now.
func (w Window) Contains(d model.Date, now time.Time) bool {
	from, to, bounded := w.Bounds(now)
	if !bounded {
		return true
	}
	return !d.Before(from) && !d.After(to)
}

// FilterByWindow keeps the transactions dated inside the window, preserving order.
func FilterByWindow(transactions []model.Transaction, w Window, now time.Time) []model.Transaction {
	out := make([]model.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if w.Contains(t.Date, now) {
			out = append(out, t)
		}
	}
	return out
}
