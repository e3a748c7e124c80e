package cron

import "testing"

func FuzzValidateSchedule(f *testing.F) {
	f.Add("*/5 * * * *")
	f.Add("0 9 * * *")
	f.Add("invalid")
	f.Add("")
	f.Add("0 25 * * *")

	f.Fuzz(func(_ *testing.T, expr string) {
		// Must not panic; errors are expected.
		_ = ValidateSchedule(expr)
	})
}
