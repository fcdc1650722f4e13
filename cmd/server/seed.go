/*
seed.go - Demo data for local development

PURPOSE:
  Populates a fresh database with a demo user and a few weeks of sample
  ledger data so the API can be explored without manual setup. Safe to
  run repeatedly: the upsert-keyed records converge and the user is only
  created once.
*/
package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/worksuite/worktime-engine/auth"
	"github.com/worksuite/worktime-engine/calendar"
	"github.com/worksuite/worktime-engine/leave"
	"github.com/worksuite/worktime-engine/store/sqlite"
	"github.com/worksuite/worktime-engine/worktime"
)

const (
	demoUsername = "demo"
	demoPassword = "demo-password"
)

func seedDemoData(ctx context.Context, store *sqlite.Store) error {
	user, err := store.UserByUsername(ctx, demoUsername)
	if err != nil {
		return err
	}
	if user == nil {
		hash, err := auth.HashPassword(demoPassword)
		if err != nil {
			return err
		}
		user = &auth.User{
			ID:           uuid.NewString(),
			Username:     demoUsername,
			DisplayName:  "Demo User",
			PasswordHash: hash,
			CreatedAt:    time.Now().UTC(),
		}
		if err := store.CreateUser(ctx, *user); err != nil {
			return err
		}
	}

	year := time.Now().Year()

	if err := store.UpsertCarryOver(ctx, user.ID, worktime.CarryOver{Year: year, Minutes: 120}); err != nil {
		return err
	}

	// Two sample weeks: a full nine-hour week and one with a short Friday.
	start := calendar.NewDate(year, time.February, 2) // a Monday in most layouts; weekends skipped below
	day := start
	for logged := 0; logged < 10; day = day.AddDays(1) {
		if day.IsWeekend() {
			continue
		}
		s := worktime.MustParseClock("08:30")
		e := worktime.MustParseClock("18:00")
		if day.ISOWeekday() == 5 {
			e = worktime.MustParseClock("12:30")
		}
		entry := worktime.WorkLogEntry{
			Date:         day,
			Start:        &s,
			End:          &e,
			BreakMinutes: 30,
		}
		if err := store.UpsertWorkLog(ctx, user.ID, entry); err != nil {
			return err
		}
		logged++
	}

	balance := leave.Balance{
		Year:          year,
		BaseDays:      decimal.NewFromInt(25),
		PurchasedDays: decimal.NewFromInt(5),
		HoursPerDay:   decimal.NewFromInt(8),
	}
	if err := store.UpsertBalance(ctx, user.ID, balance); err != nil {
		return err
	}

	entries, err := store.Entries(ctx, user.ID, year)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		entry := leave.Entry{
			ID:          uuid.NewString(),
			Date:        calendar.NewDate(year, time.March, 16),
			Hours:       decimal.NewFromInt(8),
			Description: "Spring break",
		}
		if err := store.AddEntry(ctx, user.ID, entry); err != nil {
			return err
		}
	}

	return nil
}
