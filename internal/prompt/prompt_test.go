package prompt

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"pharmacy-distance/internal/models"
)

var roster = []models.Pharmacy{
	{Name: "a", State: "CA"},
	{Name: "b", State: "nv"},
}

func TestAsk(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("ca\n1 Patient Way\nFresno\n93701\n"), &out)

	q, err := p.Ask(roster)
	if err != nil {
		t.Fatal(err)
	}
	if q.Address != "1 Patient Way, Fresno, CA 93701" {
		t.Fatalf("Unexpected address '%s'", q.Address)
	}
	if q.State != "CA" {
		t.Fatalf("Expected state CA, got '%s'", q.State)
	}

	want := strings.Join([]string{QuestionState, QuestionStreet, QuestionCity, QuestionZIP}, "\n") + "\n"
	if out.String() != want {
		t.Fatalf("Expected prompts in order, got %q", out.String())
	}
}

func TestAskTrimsInputAndAcceptsMissingFinalNewline(t *testing.T) {
	p := New(strings.NewReader("  NV \r\n 22 Sand Rd \r\nReno\r\n89501"), io.Discard)
	q, err := p.Ask(roster)
	if err != nil {
		t.Fatal(err)
	}
	if q.Address != "22 Sand Rd, Reno, NV 89501" {
		t.Fatalf("Unexpected address '%s'", q.Address)
	}
}

func TestAskUnknownStateStopsEarly(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("TX\n1 Patient Way\nAustin\n73301\n"), &out)

	_, err := p.Ask(roster)
	if !errors.Is(err, ErrNoPharmaciesInState) {
		t.Fatalf("Expected ErrNoPharmaciesInState, got %v", err)
	}
	want := QuestionState + "\n" + MessageNoPharmacies + "\n"
	if out.String() != want {
		t.Fatalf("Expected only the state question and message, got %q", out.String())
	}
}

func TestAskInputClosed(t *testing.T) {
	p := New(strings.NewReader("CA\n1 Patient Way\n"), io.Discard)
	_, err := p.Ask(roster)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("Expected ErrUnexpectedEOF, got %v", err)
	}
}
