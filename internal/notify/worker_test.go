package notify_test

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"go.uber.org/goleak"

	dbfs "github.com/quickhiresl/backend/db"
	"github.com/quickhiresl/backend/internal/db"
	"github.com/quickhiresl/backend/internal/models"
	"github.com/quickhiresl/backend/internal/notify"
	"github.com/quickhiresl/backend/internal/repository/sqlite"
)

func TestMain(m *testing.M) {
	// verify no goroutine leaks across tests in this package
	defer goleak.VerifyTestMain(m)
	os.Exit(m.Run())
}

var memCounter int

func newTestEnv(t *testing.T) (*db.DB, *sqlite.SQLiteRepo) {
	t.Helper()
	memCounter++
	dsn := fmt.Sprintf("file:notifytest%d?mode=memory&cache=shared", memCounter)

	ctx := context.Background()
	d, err := db.New(ctx, dsn, slog.Default())
	if err != nil {
		t.Fatalf("db.New: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	if err := db.Migrate(ctx, d, dbfs.Migrations); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return d, sqlite.New(d, slog.Default())
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestDeliverNotification(t *testing.T) {
	ctx := context.Background()
	_, repo := newTestEnv(t)

	userID, err := repo.CreateUser(ctx, &models.User{Email: "s@example.com", PasswordHash: "x", Role: models.RoleStudent})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	pool := notify.NewWorkerPool(repo, notify.DeliveryHandlers(repo, repo), slog.Default(), 1)
	pool.Start(ctx)
	defer pool.Stop()

	notifier := notify.NewOutboxNotifier(repo, slog.Default())
	notifier.Notify(ctx, models.Notification{
		RecipientID: userID,
		Type:        models.NotificationStatusChanged,
		Title:       "Application Accepted",
		Message:     "Your application for Barista has been accepted!",
	})

	waitFor(t, func() bool {
		n, err := repo.CountByRecipient(ctx, userID)
		return err == nil && n == 1
	}, "notification row was not written")

	got, err := repo.ListByRecipient(ctx, userID, 10, 0)
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Application Accepted" {
		t.Fatalf("unexpected notifications: %+v", got)
	}
}

func TestBroadcastJobPosted(t *testing.T) {
	ctx := context.Background()
	_, repo := newTestEnv(t)

	var students []int64
	for i := 0; i < 3; i++ {
		id, err := repo.CreateUser(ctx, &models.User{Email: fmt.Sprintf("s%d@example.com", i), PasswordHash: "x", Role: models.RoleStudent})
		if err != nil {
			t.Fatalf("create user: %v", err)
		}
		students = append(students, id)
	}
	ownerID, err := repo.CreateUser(ctx, &models.User{Email: "o@example.com", PasswordHash: "x", Role: models.RoleJobOwner})
	if err != nil {
		t.Fatalf("create owner: %v", err)
	}

	pool := notify.NewWorkerPool(repo, notify.DeliveryHandlers(repo, repo), slog.Default(), 1)
	pool.Start(ctx)
	defer pool.Stop()

	notifier := notify.NewOutboxNotifier(repo, slog.Default())
	notifier.BroadcastJobPosted(ctx, &models.Job{ID: 7, Title: "Barista", Company: "Cafe Aroma"})

	for _, id := range students {
		sid := id
		waitFor(t, func() bool {
			n, err := repo.CountByRecipient(ctx, sid)
			return err == nil && n == 1
		}, "student did not receive the broadcast")
	}

	// job owners are not in the audience
	n, err := repo.CountByRecipient(ctx, ownerID)
	if err != nil {
		t.Fatalf("count owner notifications: %v", err)
	}
	if n != 0 {
		t.Fatalf("owner should not be notified, got %d", n)
	}
}

func TestUnknownTypeGoesToDeadLetter(t *testing.T) {
	ctx := context.Background()
	d, repo := newTestEnv(t)

	if _, err := repo.Enqueue(ctx, &models.OutboxJob{Type: "bogus", Payload: []byte(`{}`)}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	pool := notify.NewWorkerPool(repo, notify.DeliveryHandlers(repo, repo), slog.Default(), 1)
	pool.Start(ctx)
	defer pool.Stop()

	waitFor(t, func() bool {
		var n int
		row := d.QueryRow(ctx, `SELECT COUNT(1) FROM notification_dead_letter WHERE type = 'bogus'`)
		return row.Scan(&n) == nil && n == 1
	}, "job was not dead-lettered")

	// the live queue no longer holds it
	job, err := repo.FetchNext(ctx)
	if err != nil {
		t.Fatalf("fetch next: %v", err)
	}
	if job != nil {
		t.Fatalf("expected empty queue, got %+v", job)
	}
}

func TestBackoffDuration(t *testing.T) {
	cases := []struct {
		attempt int
		want    time.Duration
	}{
		{0, time.Second},
		{1, 2 * time.Second},
		{3, 8 * time.Second},
		{20, 5 * time.Minute},
	}
	for _, c := range cases {
		if got := notify.BackoffDuration(c.attempt); got != c.want {
			t.Errorf("BackoffDuration(%d) = %v, want %v", c.attempt, got, c.want)
		}
	}
}
