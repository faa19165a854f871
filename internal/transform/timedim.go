package transform

import (
	"time"

	"warehouse-etl/internal/model"
)

// TimeDimension generates one row per calendar day from the earliest to the
// latest order date, inclusive. DayOfWeek is Monday-based (0..6) so weekend
// days are 5 and 6. IsHoliday is always false; there is no holiday calendar
// integrated. Returns nil when there are no orders to span.
func TimeDimension(orders []model.Order) []model.TimeRow {
	if len(orders) == 0 {
		return nil
	}

	min, max := orders[0].OrderDate, orders[0].OrderDate
	for _, o := range orders[1:] {
		if o.OrderDate.Before(min) {
			min = o.OrderDate
		}
		if o.OrderDate.After(max) {
			max = o.OrderDate
		}
	}

	start := time.Date(min.Year(), min.Month(), min.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(max.Year(), max.Month(), max.Day(), 0, 0, 0, 0, time.UTC)

	var out []model.TimeRow
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dow := (int(d.Weekday()) + 6) % 7
		_, week := d.ISOWeek()
		out = append(out, model.TimeRow{
			Date:       d,
			DayOfWeek:  dow,
			DayOfMonth: d.Day(),
			DayOfYear:  d.YearDay(),
			WeekOfYear: week,
			Month:      int(d.Month()),
			MonthName:  d.Month().String(),
			Quarter:    (int(d.Month())-1)/3 + 1,
			Year:       d.Year(),
			IsWeekend:  dow >= 5,
			IsHoliday:  false,
		})
	}
	return out
}
