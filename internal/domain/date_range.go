package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// DateRange é um intervalo de dias UTC semiaberto [From, ToExclusive).
type DateRange struct {
	From        time.Time
	ToExclusive time.Time
}

// RangeEcho é a forma serializada de um DateRange: datas inclusivas YYYY-MM-DD.
type RangeEcho struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ParseDateRange converte datas inclusivas YYYY-MM-DD em um intervalo UTC semiaberto.
func ParseDateRange(from, to string) (DateRange, error) {
	start, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(from), time.UTC)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: from %q", ErrInvalidRange, from)
	}

	end, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(to), time.UTC)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: to %q", ErrInvalidRange, to)
	}

	if end.Before(start) {
		return DateRange{}, fmt.Errorf("%w: from %s is after to %s", ErrInvalidRange, from, to)
	}

	return DateRange{From: start, ToExclusive: end.AddDate(0, 0, 1)}, nil
}

// DayRange devolve o intervalo de um único dia UTC contendo t.
func DayRange(t time.Time) DateRange {
	day := StartOfDay(t)
	return DateRange{From: day, ToExclusive: day.AddDate(0, 0, 1)}
}

// StartOfDay trunca t para a meia-noite UTC.
func StartOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysInclusive é o número de dias do intervalo, nunca menor que 1.
func (r DateRange) DaysInclusive() int {
	days := int(math.Round(r.ToExclusive.Sub(r.From).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

// To é o último dia incluído no intervalo.
func (r DateRange) To() time.Time {
	return r.ToExclusive.AddDate(0, 0, -1)
}

// PreviousPeriod devolve o período imediatamente anterior com o mesmo tamanho.
func (r DateRange) PreviousPeriod() DateRange {
	days := r.DaysInclusive()
	return DateRange{
		From:        r.From.AddDate(0, 0, -days),
		ToExclusive: r.ToExclusive.AddDate(0, 0, -days),
	}
}

// NextDays lista os n dias seguintes ao fim do intervalo, em YYYY-MM-DD.
func (r DateRange) NextDays(n int) []string {
	days := make([]string, 0, n)
	for i := 0; i < n; i++ {
		days = append(days, r.ToExclusive.AddDate(0, 0, i).Format(time.DateOnly))
	}
	return days
}

func (r DateRange) FromString() string {
	return r.From.Format(time.DateOnly)
}

func (r DateRange) ToString() string {
	return r.To().Format(time.DateOnly)
}

func (r DateRange) Echo() RangeEcho {
	return RangeEcho{From: r.FromString(), To: r.ToString()}
}

func (r DateRange) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`{"from":%q,"to":%q}`, r.FromString(), r.ToString())), nil
}
