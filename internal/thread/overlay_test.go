package thread

import "testing"

func TestOverlay_StartsClosed(t *testing.T) {
	o := NewOverlay()

	if o.IsOpen() {
		t.Error("new overlay should be closed")
	}
	if _, ok := o.Anchor(); ok {
		t.Error("closed overlay should have no anchor")
	}
}

func TestOverlay_OpenAndClose(t *testing.T) {
	o := NewOverlay()

	o.Open("note-1")
	if !o.IsOpen() {
		t.Fatal("overlay should be open")
	}
	if anchor, _ := o.Anchor(); anchor != "note-1" {
		t.Errorf("Anchor = %q, want note-1", anchor)
	}

	o.Close()
	if o.IsOpen() {
		t.Error("overlay should be closed after Close")
	}
}

func TestOverlay_OpenReplacesAnchor(t *testing.T) {
	o := NewOverlay()

	o.Open("note-1")
	o.Open("note-2")

	if anchor, _ := o.Anchor(); anchor != "note-2" {
		t.Errorf("Anchor = %q, want note-2 (no thread stack)", anchor)
	}

	// One close fully dismisses; there is nothing underneath
	o.Close()
	if o.IsOpen() {
		t.Error("a single Close should fully dismiss the overlay")
	}
}

func TestOverlay_CloseIsIdempotent(t *testing.T) {
	o := NewOverlay()

	o.Close()
	o.Close()

	if o.IsOpen() {
		t.Error("closing a closed overlay should stay closed")
	}
}

func TestOverlay_ReopenSameAnchor(t *testing.T) {
	o := NewOverlay()

	o.Open("note-1")
	o.Open("note-1")

	if anchor, ok := o.Anchor(); !ok || anchor != "note-1" {
		t.Errorf("Anchor = %q, %v; want note-1, true", anchor, ok)
	}
}
