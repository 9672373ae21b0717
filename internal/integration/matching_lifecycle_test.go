package integration

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"gigmatch/internal/config"
	"gigmatch/internal/database"
	"gigmatch/internal/database/migration"
	dbpostgres "gigmatch/internal/database/postgres"
	"gigmatch/internal/domain/application"
	"gigmatch/internal/domain/chat"
	"gigmatch/internal/domain/subject"
	"gigmatch/internal/domain/user"
	"gigmatch/internal/repository"
	"gigmatch/internal/usecase"

	"github.com/google/uuid"
)

// These tests run the real Postgres repositories against a disposable test
// database. Without the DB env vars they skip; with them they verify the
// arbitration the unit tests can only mock: the conditional slot decrement,
// sibling auto-reject, withdraw slot restore, done-count close, and the
// conversation pair delete.

func connectTestDB(t *testing.T, ctx context.Context) database.DB {
	t.Helper()

	host := firstNonEmpty(os.Getenv("GIGMATCH_TEST_DB_HOST"), os.Getenv("DB_HOST"))
	port := firstNonEmpty(os.Getenv("GIGMATCH_TEST_DB_PORT"), os.Getenv("DB_PORT"))
	name := firstNonEmpty(os.Getenv("GIGMATCH_TEST_DB_NAME"), os.Getenv("DB_NAME"))
	usr := firstNonEmpty(os.Getenv("GIGMATCH_TEST_DB_USER"), os.Getenv("DB_USER"))
	pass := firstNonEmpty(os.Getenv("GIGMATCH_TEST_DB_PASSWORD"), os.Getenv("DB_PASSWORD"))
	ssl := firstNonEmpty(os.Getenv("GIGMATCH_TEST_DB_SSL_MODE"), os.Getenv("DB_SSL_MODE"))

	if host == "" || port == "" || name == "" || usr == "" {
		t.Skip("missing test DB env vars: set GIGMATCH_TEST_DB_HOST/PORT/NAME/USER/PASSWORD (or DB_HOST/DB_PORT/DB_NAME/DB_USER/DB_PASSWORD)")
	}
	if ssl == "" {
		ssl = "disable"
	}

	db, err := dbpostgres.Connect(ctx, config.DatabaseConfig{
		DBHost:     host,
		DBPort:     port,
		DBName:     name,
		DBUser:     usr,
		DBPassword: pass,
		DBSSLMode:  ssl,
	})
	if err != nil {
		t.Fatalf("connect test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := (migration.Runner{}).Run(ctx, db.SQLDB()); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return db
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func seedUser(t *testing.T, ctx context.Context, db database.DB, role user.Role) user.User {
	t.Helper()

	u := user.User{
		ID:           uuid.New(),
		Email:        uuid.NewString() + "@integration.test",
		Name:         "Integration " + string(role),
		Role:         role,
		PasswordHash: "not-a-real-hash",
	}
	if err := repository.NewPostgresUserRepository(db).CreateUser(ctx, u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	// Cascades take subjects, applications and messages along.
	t.Cleanup(func() {
		_, _ = db.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, u.ID)
	})
	return u
}

func seedSubject(t *testing.T, ctx context.Context, db database.DB, ownerID uuid.UUID, mode subject.CapacityMode, slots int) subject.Subject {
	t.Helper()

	s, err := repository.NewPostgresSubjectRepository(db).Create(ctx, subject.Subject{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		Kind:         subject.KindJob,
		Title:        "Integration job",
		CapacityMode: mode,
		SlotsTotal:   slots,
		Status:       subject.StatusOpen,
	})
	if err != nil {
		t.Fatalf("seed subject: %v", err)
	}
	return s
}

func seedPendingApplication(t *testing.T, ctx context.Context, db database.DB, subjectID, applicantID uuid.UUID) application.Application {
	t.Helper()

	a, err := repository.NewPostgresApplicationRepository(db).Create(ctx, application.Application{
		ID:          uuid.New(),
		SubjectID:   subjectID,
		ApplicantID: applicantID,
		Status:      application.StatusPending,
	})
	if err != nil {
		t.Fatalf("seed application: %v", err)
	}
	return a
}

func TestIntegration_ConcurrentApproval_SingleWinner(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	subjects := repository.NewPostgresSubjectRepository(db)
	apps := repository.NewPostgresApplicationRepository(db)

	owner := seedUser(t, ctx, db, user.RoleCustomer)
	subj := seedSubject(t, ctx, db, owner.ID, subject.CapacitySingle, 1)
	appA := seedPendingApplication(t, ctx, db, subj.ID, seedUser(t, ctx, db, user.RoleFreelancer).ID)
	appB := seedPendingApplication(t, ctx, db, subj.ID, seedUser(t, ctx, db, user.RoleFreelancer).ID)

	errA := make(chan error, 1)
	errB := make(chan error, 1)
	var start sync.WaitGroup
	start.Add(1)
	go func() {
		start.Wait()
		_, err := apps.Approve(ctx, subj.ID, appA.ID, true)
		errA <- err
	}()
	go func() {
		start.Wait()
		_, err := apps.Approve(ctx, subj.ID, appB.ID, true)
		errB <- err
	}()
	start.Done()

	resA, resB := <-errA, <-errB
	if (resA == nil) == (resB == nil) {
		t.Fatalf("expected exactly one winner, got errA=%v errB=%v", resA, resB)
	}
	loserErr := resA
	loserID := appA.ID
	if resA == nil {
		loserErr = resB
		loserID = appB.ID
	}
	if !errors.Is(loserErr, repository.ErrCapacityExhausted) && !errors.Is(loserErr, repository.ErrApplicationResolved) {
		t.Fatalf("loser got %v, want capacity or resolved conflict", loserErr)
	}

	got, err := subjects.GetByID(ctx, subj.ID)
	if err != nil {
		t.Fatalf("reload subject: %v", err)
	}
	if got.SlotsRemaining != 0 {
		t.Fatalf("slots_remaining = %d, want 0", got.SlotsRemaining)
	}
	if got.Status != subject.StatusInProgress {
		t.Fatalf("status = %s, want in_progress", got.Status)
	}

	// The winner's commit rejects every pending sibling in the same step.
	if _, err := apps.GetByID(ctx, loserID); !errors.Is(err, repository.ErrApplicationNotFound) {
		t.Fatalf("sibling lookup: got %v, want ErrApplicationNotFound", err)
	}

	// A later owner attempt on the rejected sibling therefore surfaces as
	// not-found, matching the deletion model for rejections.
	uc := usecase.NewLifecycleUsecase(subjects, apps, nil, nil)
	if _, err := uc.Approve(ctx, usecase.Actor{ID: owner.ID, Role: user.RoleCustomer}, subj.ID, loserID); !errors.Is(err, usecase.ErrApplicationNotFound) {
		t.Fatalf("approve rejected sibling: got %v, want ErrApplicationNotFound", err)
	}
}

func TestIntegration_WithdrawRestoresSlot(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	subjects := repository.NewPostgresSubjectRepository(db)
	apps := repository.NewPostgresApplicationRepository(db)

	owner := seedUser(t, ctx, db, user.RoleCustomer)
	subj := seedSubject(t, ctx, db, owner.ID, subject.CapacitySingle, 1)
	app := seedPendingApplication(t, ctx, db, subj.ID, seedUser(t, ctx, db, user.RoleFreelancer).ID)

	if _, err := apps.Approve(ctx, subj.ID, app.ID, true); err != nil {
		t.Fatalf("approve: %v", err)
	}
	before, err := subjects.GetByID(ctx, subj.ID)
	if err != nil {
		t.Fatalf("reload subject: %v", err)
	}
	if before.SlotsRemaining != 0 {
		t.Fatalf("slots_remaining after approve = %d, want 0", before.SlotsRemaining)
	}

	deleted, err := apps.Withdraw(ctx, app.ID)
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if deleted.Status != application.StatusAccepted {
		t.Fatalf("withdrawn row status = %s, want accepted", deleted.Status)
	}

	after, err := subjects.GetByID(ctx, subj.ID)
	if err != nil {
		t.Fatalf("reload subject: %v", err)
	}
	if after.SlotsRemaining != 1 {
		t.Fatalf("slots_remaining after withdraw = %d, want 1", after.SlotsRemaining)
	}
	if _, err := apps.GetByID(ctx, app.ID); !errors.Is(err, repository.ErrApplicationNotFound) {
		t.Fatalf("withdrawn row still present: %v", err)
	}
}

func TestIntegration_DoneCountClosesSubject(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	subjects := repository.NewPostgresSubjectRepository(db)
	apps := repository.NewPostgresApplicationRepository(db)

	owner := seedUser(t, ctx, db, user.RoleCustomer)
	subj := seedSubject(t, ctx, db, owner.ID, subject.CapacityMulti, 2)
	appA := seedPendingApplication(t, ctx, db, subj.ID, seedUser(t, ctx, db, user.RoleFreelancer).ID)
	appB := seedPendingApplication(t, ctx, db, subj.ID, seedUser(t, ctx, db, user.RoleFreelancer).ID)

	for _, a := range []application.Application{appA, appB} {
		if _, err := apps.Approve(ctx, subj.ID, a.ID, false); err != nil {
			t.Fatalf("approve %s: %v", a.ID, err)
		}
	}

	finish := func(id uuid.UUID) {
		t.Helper()
		if _, err := apps.AdvanceStatus(ctx, id, application.StatusAccepted, application.StatusOnTheWay); err != nil {
			t.Fatalf("advance to on_the_way: %v", err)
		}
		if _, err := apps.AdvanceStatus(ctx, id, application.StatusOnTheWay, application.StatusDone); err != nil {
			t.Fatalf("advance to done: %v", err)
		}
	}

	finish(appA.ID)
	mid, err := subjects.GetByID(ctx, subj.ID)
	if err != nil {
		t.Fatalf("reload subject: %v", err)
	}
	if mid.Status == subject.StatusClosed {
		t.Fatalf("subject closed with one of two applications done")
	}

	finish(appB.ID)
	end, err := subjects.GetByID(ctx, subj.ID)
	if err != nil {
		t.Fatalf("reload subject: %v", err)
	}
	if end.Status != subject.StatusClosed {
		t.Fatalf("status = %s, want closed once done count covers capacity", end.Status)
	}
}

func TestIntegration_ConversationDeleteEmptiesListing(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	messages := repository.NewPostgresMessageRepository(db)

	alice := seedUser(t, ctx, db, user.RoleCustomer)
	bob := seedUser(t, ctx, db, user.RoleFreelancer)

	for _, m := range []chat.Message{
		{ID: uuid.New(), SenderID: alice.ID, RecipientID: bob.ID, Body: "hello"},
		{ID: uuid.New(), SenderID: bob.ID, RecipientID: alice.ID, Body: "hi back"},
	} {
		if _, err := messages.Append(ctx, m); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	listed, err := messages.ListBetween(ctx, bob.ID, alice.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("listed %d messages, want 2", len(listed))
	}
	if listed[0].Body != "hello" || listed[1].Body != "hi back" {
		t.Fatalf("messages out of order: %q, %q", listed[0].Body, listed[1].Body)
	}

	removed, err := messages.DeleteConversation(ctx, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("delete conversation: %v", err)
	}
	if removed != 2 {
		t.Fatalf("deleted %d rows, want 2", removed)
	}

	listed, err = messages.ListBetween(ctx, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("conversation not empty after delete: %d rows", len(listed))
	}
}
