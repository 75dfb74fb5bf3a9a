// Package timezone keeps every timestamp in the application timezone (APP_TIMEZONE)
// and provides the calendar helpers used by booking rules.
//
//	now := timezone.Now()
//	loc := timezone.LoadLocation(cfg.Booking.Timezone)
//	today := timezone.StartOfDay(now, loc)
//
// Services receive a Clock instead of calling Now directly so tests can pin the
// current instant with FixedClock. Location names must be IANA names such as
// "UTC" or "Asia/Ho_Chi_Minh"; the tz database is embedded.
package timezone
