package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout — календарная дата ISO 8601.
const DateLayout = "2006-01-02"

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidDateRange = errors.New("invalid date range")
	ErrUnpairedDates    = errors.New("dates must come in from/to pairs")
)

// DateRange — закрытый интервал календарных дат [From, To], обе границы включены.
type DateRange struct {
	From time.Time
	To   time.Time
}

// NewDateRange нормализует границы до полуночи UTC и проверяет порядок.
// Одинаковые даты допустимы: это окно в один день.
func NewDateRange(from, to time.Time) (DateRange, error) {
	if from.IsZero() || to.IsZero() {
		return DateRange{}, ErrInvalidDateRange
	}

	from = DateOnly(from)
	to = DateOnly(to)

	if from.After(to) {
		return DateRange{}, fmt.Errorf("%w: from %s is after to %s",
			ErrInvalidDateRange, from.Format(DateLayout), to.Format(DateLayout))
	}

	return DateRange{From: from, To: to}, nil
}

// ParseDate разбирает дату формата YYYY-MM-DD.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return t, nil
}

// ParseDateRange разбирает пару строковых дат в интервал.
func ParseDateRange(from, to string) (DateRange, error) {
	f, err := ParseDate(from)
	if err != nil {
		return DateRange{}, err
	}
	t, err := ParseDate(to)
	if err != nil {
		return DateRange{}, err
	}
	return NewDateRange(f, t)
}

// PairDates превращает плоский список дат [from1, to1, from2, to2, ...]
// в интервалы. Так окна приходят в query-параметрах.
func PairDates(values []string) ([]DateRange, error) {
	if len(values)%2 != 0 {
		return nil, ErrUnpairedDates
	}

	ranges := make([]DateRange, 0, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		r, err := ParseDateRange(values[i], values[i+1])
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, r)
	}
	return ranges, nil
}

// Contains сообщает, лежит ли other целиком внутри r (границы включены).
func (r DateRange) Contains(other DateRange) bool {
	return !r.From.After(other.From) && !r.To.Before(other.To)
}

func (r DateRange) String() string {
	return r.From.Format(DateLayout) + ".." + r.To.Format(DateLayout)
}

// DateOnly отбрасывает время и переводит дату в UTC.
func DateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
