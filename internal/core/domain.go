package core

import (
	"errors"
	"fmt"
	"strings"
)

const (
	Income Category = "Income"
	Needs  Category = "Needs"
	Wants  Category = "Wants"
	Save   Category = "Save"
)

type (
	// Category classifies a transaction. The set is fixed; anything else is a
	// validation error.
	Category string

	// Money is an amount in cents. Calculations always happen on cents to
	// avoid floating-point drift.
	Money struct {
		Cents int64
	}

	// Date is a plain calendar date. It is never converted to a time.Time:
	// dates are stored, compared and serialized as YYYY-MM-DD, so the same
	// calendar day survives any server or client timezone.
	Date struct {
		Year  int
		Month int
		Day   int
	}

	Transaction struct {
		ID       string   `json:"id"`
		OwnerID  string   `json:"userId"`
		Title    string   `json:"title"`
		Amount   Money    `json:"amount"`
		Category Category `json:"category"`
		Date     Date     `json:"date"`
	}

	User struct {
		ID           string
		Username     string
		PasswordHash string
	}
)

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidCategory = errors.New("invalid category")
	ErrEmptyTitle      = errors.New("empty title")
	ErrTitleTooLong    = errors.New("title too long")
	ErrEmptyUsername   = errors.New("empty username")
)

// ParseCategory validates and normalizes a category string.
func ParseCategory(s string) (Category, error) {
	switch Category(strings.TrimSpace(s)) {
	case Income:
		return Income, nil
	case Needs:
		return Needs, nil
	case Wants:
		return Wants, nil
	case Save:
		return Save, nil
	default:
		return "", ErrInvalidCategory
	}
}

func (c Category) Validate() error {
	switch c {
	case Income, Needs, Wants, Save:
		return nil
	default:
		return ErrInvalidCategory
	}
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// NewDate builds a Date without validating it; call Validate before trusting
// caller-supplied values.
func NewDate(year, month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// ParseDate parses a strict YYYY-MM-DD string. Every non-dash position must
// be an ASCII digit; padding, signs and trailing characters are rejected.
func ParseDate(s string) (Date, error) {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return Date{}, ErrInvalidDate
	}
	for i := 0; i < 10; i++ {
		if i == 4 || i == 7 {
			continue
		}
		if s[i] < '0' || s[i] > '9' {
			return Date{}, ErrInvalidDate
		}
	}
	digits := func(from, to int) int {
		n := 0
		for i := from; i < to; i++ {
			n = n*10 + int(s[i]-'0')
		}
		return n
	}
	d := Date{Year: digits(0, 4), Month: digits(5, 7), Day: digits(8, 10)}
	if err := d.Validate(); err != nil {
		return Date{}, err
	}
	return d, nil
}

func (d Date) Validate() error {
	if d.Year < 1 || d.Year > 9999 {
		return ErrInvalidDate
	}
	if d.Month < 1 || d.Month > 12 {
		return ErrInvalidDate
	}
	if d.Day < 1 || d.Day > daysInMonth(d.Year, d.Month) {
		return ErrInvalidDate
	}
	return nil
}

func (d Date) IsZero() bool {
	return d == Date{}
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func daysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
			return 29
		}
		return 28
	default:
		return 0
	}
}

func (t Transaction) Validate() error {
	title := strings.TrimSpace(t.Title)
	if title == "" {
		return ErrEmptyTitle
	}
	if len(title) > 200 {
		return ErrTitleTooLong
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if err := t.Category.Validate(); err != nil {
		return err
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	return nil
}

// NormalizeUsername lower-cases and trims a username so that lookups and the
// uniqueness constraint are case-insensitive.
func NormalizeUsername(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
