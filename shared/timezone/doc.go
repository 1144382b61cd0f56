// Package timezone pins every calendar computation to the hotel's local timezone.
//
// Stay dates, expense dates and report ranges are plain calendar days. They are parsed with
// ParseDate, truncated with DateOf and compared in the location loaded from APP_TIMEZONE
// (an IANA name such as "Asia/Kolkata"). An empty or unknown name falls back to UTC.
//
//	today := timezone.Today()
//	nights := timezone.DaysBetween(checkIn, checkOut)
//	first := timezone.MonthStart(today)
package timezone
