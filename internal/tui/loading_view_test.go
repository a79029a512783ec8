package tui

import (
	"reflect"
	"testing"
)

func TestTickSpinnerWraps(t *testing.T) {
	s := AppState{SpinnerFrame: len(spinnerFrames) - 1}
	out := TickSpinner(s)
	if out.SpinnerFrame != len(spinnerFrames) {
		t.Fatalf("got %d, want %d", out.SpinnerFrame, len(spinnerFrames))
	}
	if spinnerFrames[out.SpinnerFrame%len(spinnerFrames)] != spinnerFrames[0] {
		t.Error("expected frame index to wrap back to the first frame")
	}
}

func TestTickLoadingMessageAdvances(t *testing.T) {
	s := AppState{LoadingMsgIdx: 0}
	out := TickLoadingMessage(s)
	if out.LoadingMsgIdx != 1 {
		t.Errorf("got %d, want 1", out.LoadingMsgIdx)
	}
}

func TestHandleLoadingIgnoresKeys(t *testing.T) {
	s := AppState{View: ViewLoading}
	out, signal := HandleLoading(s, keyEvent("q"))
	if signal != "" {
		t.Errorf("expected no signal, got %q", signal)
	}
	if !reflect.DeepEqual(out, s) {
		t.Error("expected state to be unchanged while loading")
	}
}

func TestRenderLoadingShowsToolName(t *testing.T) {
	s := AppState{SelectedTool: mustToolDef(t, "reader_add_url")}
	f := RenderLoading(s, 80, 24)
	if f.Breadcrumb != "Commands › reader_add_url" {
		t.Errorf("got breadcrumb %q", f.Breadcrumb)
	}
}
