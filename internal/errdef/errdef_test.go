package errdef

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrapPreservesChain(t *testing.T) {
	base := errors.New("boom")
	err := Wrap(CodeFilesystem, base, "write settings %q", "settings.json")
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to match base")
	}
	want := `write settings "settings.json": boom`
	if err.Error() != want {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestCodeOf(t *testing.T) {
	err := New(CodeParse, "curl command missing URL")
	if CodeOf(err) != CodeParse {
		t.Fatalf("expected parse code, got %s", CodeOf(err))
	}
	wrapped := fmt.Errorf("outer: %w", err)
	if !IsCode(wrapped, CodeParse) {
		t.Fatalf("expected code to survive wrapping")
	}
	if CodeOf(errors.New("plain")) != CodeUnknown {
		t.Fatalf("expected unknown code for plain errors")
	}
}
