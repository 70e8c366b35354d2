// Package timezone provides timezone utilities for the application.
//
// All booking dates are calendar dates (YYYY-MM-DD) interpreted at local
// midnight in the application timezone, so date arithmetic such as the
// edit cutoff and the review window must go through this package rather
// than time.Parse directly.
//
// Usage:
//
//	now := timezone.Now()
//	checkIn, err := timezone.ParseDate("2025-03-01")
//	formatted := timezone.Format(t, constant.DateOnlyFormat)
//
// Supported timezone formats are standard IANA names only: "UTC",
// "Asia/Kathmandu", "America/New_York". The timezone is configured via the
// APP_TIMEZONE environment variable and is initialized when the package is
// imported.
package timezone
