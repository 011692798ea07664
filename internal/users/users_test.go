package users

import (
	"errors"
	"testing"

	"gonewsag/internal/models"
)

func TestRegistry_RegisterAndAuthenticate(t *testing.T) {
	r := NewRegistry()

	if err := r.Register("alice", "s3cret-pass"); err != nil {
		t.Fatalf("Expected registration to succeed, got %v", err)
	}

	if !r.Exists("alice") {
		t.Error("Expected alice to exist after registration")
	}

	if err := r.Authenticate("alice", "s3cret-pass"); err != nil {
		t.Errorf("Expected authentication to succeed, got %v", err)
	}

	if err := r.Authenticate("alice", "wrong-pass"); err == nil {
		t.Error("Expected authentication with wrong password to fail")
	}

	if err := r.Authenticate("nobody", "s3cret-pass"); err == nil {
		t.Error("Expected authentication of unknown user to fail")
	}
}

func TestRegistry_RegisterMissingCredentials(t *testing.T) {
	r := NewRegistry()

	var verr *models.ValidationError
	if err := r.Register("", "pass"); !errors.As(err, &verr) {
		t.Errorf("Expected ValidationError for missing username, got %v", err)
	}
	if err := r.Register("alice", ""); !errors.As(err, &verr) {
		t.Errorf("Expected ValidationError for missing password, got %v", err)
	}
}

func TestRegistry_RegisterDuplicate(t *testing.T) {
	r := NewRegistry()

	if err := r.Register("alice", "s3cret-pass"); err != nil {
		t.Fatalf("Expected first registration to succeed, got %v", err)
	}

	var verr *models.ValidationError
	if err := r.Register("alice", "other-pass"); !errors.As(err, &verr) {
		t.Errorf("Expected ValidationError for duplicate username, got %v", err)
	}
}

func TestRegistry_ExportRestore(t *testing.T) {
	r := NewRegistry()
	r.Register("alice", "s3cret-pass")
	r.Register("bob", "hunter2-plus")

	records := r.Export()
	if len(records) != 2 {
		t.Fatalf("Expected 2 exported records, got %d", len(records))
	}
	for _, rec := range records {
		if rec.Password == "s3cret-pass" || rec.Password == "hunter2-plus" {
			t.Error("Expected exported credential to be hashed, found raw password")
		}
	}

	restored := NewRegistry()
	restored.Restore(records)

	if err := restored.Authenticate("alice", "s3cret-pass"); err != nil {
		t.Errorf("Expected authentication to work after restore, got %v", err)
	}
}
