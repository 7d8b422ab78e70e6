package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/certifyme/certrender/pkg/certificate"
	"github.com/certifyme/certrender/pkg/preview"
)

func mountTestTarget(t *testing.T) *preview.Target {
	t.Helper()
	tpl := &certificate.Template{LayoutKind: "classic"}
	rec := &certificate.DynamicRecord{RecipientName: "Jane Doe", IssueDate: "2025-03-14"}
	target := preview.Mount(context.Background(), tpl, rec, preview.Options{Debounce: -1})
	t.Cleanup(target.Close)
	return target
}

func nextArtifact(t *testing.T, target *preview.Target) preview.Artifact {
	t.Helper()
	select {
	case a := <-target.Updates():
		return a
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for artifact")
	}
	return preview.Artifact{}
}

func TestPreviewModelView(t *testing.T) {
	m := NewPreviewModel(mountTestTarget(t), "out.svg")

	view := m.View()
	for _, want := range []string{"Certificate Preview", "Classic", "Jane Doe", "March 14, 2025", "842 × 595"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestPreviewModelResize(t *testing.T) {
	target := mountTestTarget(t)
	var model tea.Model = NewPreviewModel(target, "out.svg")

	// Drain the mount publication.
	nextArtifact(t, target)

	model, _ = model.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	a := nextArtifact(t, target)
	model, cmd := model.Update(artifactMsg(a))
	if cmd == nil {
		t.Error("expected a follow-up wait command")
	}

	m := model.(PreviewModel)
	if m.Cols != 100 {
		t.Errorf("Cols = %d, want 100", m.Cols)
	}
	if m.Artifact.Surface.Width != 800 {
		t.Errorf("surface width = %v, want 800", m.Artifact.Surface.Width)
	}
	if !strings.Contains(m.View(), "800 × 565") {
		t.Errorf("view does not show resized surface:\n%s", m.View())
	}
}

func TestPreviewModelSave(t *testing.T) {
	target := mountTestTarget(t)
	out := filepath.Join(t.TempDir(), "cert.svg")
	m := NewPreviewModel(target, out)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	if cmd == nil {
		t.Fatal("expected save command")
	}
	msg := cmd()
	saved, ok := msg.(savedMsg)
	if !ok {
		t.Fatalf("msg = %T, want savedMsg", msg)
	}
	if saved.err != nil {
		t.Fatal(saved.err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Jane Doe") {
		t.Error("saved SVG missing recipient")
	}

	next, _ := m.Update(saved)
	if !strings.Contains(next.(PreviewModel).Status, "saved") {
		t.Errorf("status = %q", next.(PreviewModel).Status)
	}
}

func TestPreviewModelQuit(t *testing.T) {
	m := NewPreviewModel(mountTestTarget(t), "out.svg")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}
