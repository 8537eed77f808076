package render_test

import (
	"io"
	"os"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"

	"github.com/Tiliavir/punch/internal/model"
	"github.com/Tiliavir/punch/internal/punch"
	"github.com/Tiliavir/punch/internal/render"
)

func TestMain(m *testing.M) {
	loc, err := time.LoadLocation("Europe/Warsaw")
	if err != nil {
		panic(err)
	}
	time.Local = loc
	os.Exit(m.Run())
}

func plain() *render.Renderer {
	return render.New(io.Discard, false, false)
}

func TestHistoryPlain(t *testing.T) {
	days := punch.EntryList(model.Collection{{
		Day: 1571004000,
		Entries: []model.RawEntry{
			{From: 1571043673, To: 1571043674, Valid: true},
			{From: 1571043678, To: 1571044420, Valid: false},
		},
	}})

	want := "14.10.2019  0h 00m  (11:01 – XX:XX)\n" +
		"  11:01 - 11:01  (0h 00m)\n" +
		"  11:01 - XX:XX  (Xh XXm)\n"
	assert.Equal(t, want, plain().History(days))
}

func TestHistoryEmpty(t *testing.T) {
	assert.Equal(t, "No entries found.\n", plain().History(nil))
}

func TestStatusClockedIn(t *testing.T) {
	s := model.Status{State: model.StateIn, Since: 1571043673, Online: 2, DeltaForDay: 120, DeltaForMonth: -7200}
	now := time.Unix(1571043673+3600, 0)

	want := "2 people are clocked in right now.\n" +
		"You've been clocked in for 1h 00m.\n" +
		"You're 1h 02m ahead for the day.\n" +
		"You're 1h 00m behind for the month.\n"
	assert.Equal(t, want, plain().Status(s, now))
}

func TestStatusClockedOut(t *testing.T) {
	s := model.Status{State: model.StateOut, Since: 1571043673, Online: 1, DeltaForDay: -5400, DeltaForMonth: 0}
	now := time.Unix(1571050000, 0)

	want := "1 person is clocked in right now.\n" +
		"You're currently clocked out.\n" +
		"You're 1h 30m behind for the day.\n" +
		"You're 0h 00m ahead for the month.\n"
	assert.Equal(t, want, plain().Status(s, now))
}

func TestElapsedWithClockSkew(t *testing.T) {
	since := int64(1571043673)
	assert.Equal(t, "0h 01m", render.Elapsed(since, time.Unix(since, 0).Add(-30*time.Second)))
	assert.Equal(t, "0h 01m", render.Elapsed(since, time.Unix(since, 0).Add(90*time.Second)))
}

func TestOnlineUsersPlain(t *testing.T) {
	users := []model.OnlineUser{{UID: 4, Since: 1571043673}}
	now := time.Unix(1571043673+742, 0)
	assert.Equal(t, "uid 4      since 14.10.2019 11:01  (0h 12m)\n", plain().OnlineUsers(users, now))
	assert.Equal(t, "Nobody is clocked in.\n", plain().OnlineUsers(nil, now))
}

func TestStyledOutputUsesANSI(t *testing.T) {
	r := render.New(io.Discard, true, true)
	days := punch.EntryList(model.Collection{{
		Day:     1571004000,
		Entries: []model.RawEntry{{From: 1571043678, To: 1571044420, Valid: false}},
	}})

	out := r.History(days)
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "14.10.2019")

	status := r.Status(model.Status{State: model.StateOut}, time.Unix(1571043673, 0))
	assert.Contains(t, status, "STATUS")
	assert.Contains(t, status, "clocked out")
}
