package settings

import (
	"context"
	"testing"
)

func TestNewCliParams(t *testing.T) {
	got := NewCliParams()
	want := Run{DiffFormat: "merge-patch"}
	if *got != want {
		t.Errorf("NewCliParams() = %+v, want %+v", got, want)
	}
}

func TestContextRoundTrip(t *testing.T) {
	if _, ok := FromContext(context.Background()); ok {
		t.Fatal("empty context should not carry settings")
	}
	run := &Run{NoColor: true, LogFile: "x.log"}
	got, ok := FromContext(IntoContext(context.Background(), run))
	if !ok || got != run {
		t.Fatalf("FromContext = %v, %v", got, ok)
	}
}
