package main

import (
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/lib/pq"
)

func TestEmbeddedMigrations(t *testing.T) {
	files, err := fs.Glob(migrationFS, "migrations/*.sql")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no migrations embedded")
	}

	tables := map[string]bool{}
	for _, f := range files {
		body, err := migrationFS.ReadFile(f)
		if err != nil {
			t.Fatal(err)
		}
		for _, line := range strings.Split(string(body), "\n") {
			if rest, ok := strings.CutPrefix(line, "CREATE TABLE IF NOT EXISTS "); ok {
				tables[strings.Fields(rest)[0]] = true
			}
		}
	}
	for _, want := range []string{"users", "listings", "bookings", "reviews", "support_tickets", "ticket_messages", "audit_logs", "user_push_tokens"} {
		if !tables[want] {
			t.Errorf("missing table %s", want)
		}
	}
}

func TestDescribe(t *testing.T) {
	err := &pq.Error{Code: "23505", Detail: "Key (email) already exists."}
	got := describe(errors.Join(errors.New("0001_core"), err))
	if !strings.Contains(got, "unique_violation") || !strings.Contains(got, "already exists") {
		t.Fatalf("describe = %q", got)
	}
	if got := describe(errors.New("plain")); got != "plain" {
		t.Fatalf("describe = %q", got)
	}
}
