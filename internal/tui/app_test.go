package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"todo/internal/board"
	"todo/internal/logging"
	"todo/internal/testutil"
)

func newTestApp(t *testing.T, svc *testutil.FakeService) appModel {
	t.Helper()
	ctx := log.WithContext(context.Background(), logging.Discard())
	m := newAppModel(ctx, svc)
	return run(t, m, loadTasks(m.ctx, m.svc))
}

func send(t *testing.T, m appModel, msg tea.Msg) (appModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(appModel)
	if !ok {
		t.Fatalf("Update returned %T, want appModel", next)
	}
	return am, cmd
}

// run executes cmd synchronously and feeds its message back into the model.
func run(t *testing.T, m appModel, cmd tea.Cmd) appModel {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command, got nil")
	}
	m, _ = send(t, m, cmd())
	return m
}

func press(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func seeded() *testutil.FakeService {
	svc := testutil.NewFakeService()
	svc.AddTask("a1", "Buy milk", false)
	svc.AddTask("a2", "Walk dog", true)
	svc.AddTask("a3", "Write report", false)
	return svc
}

// toList moves focus from the new-task field to the list.
func toList(t *testing.T, m appModel) appModel {
	t.Helper()
	m, _ = send(t, m, press("tab"))
	if m.focus != focusList {
		t.Fatal("tab did not focus the list")
	}
	return m
}

func TestApp_ShowsLoadingUntilListArrives(t *testing.T) {
	m := newAppModel(context.Background(), seeded())
	if !m.board.Loading() {
		t.Fatal("board should be loading before the first list")
	}
	if !strings.Contains(m.View(), loadingText) {
		t.Errorf("view missing loading indicator:\n%s", m.View())
	}
	if m.Init() == nil {
		t.Error("Init returned nil command")
	}
}

func TestApp_LoadRendersTasks(t *testing.T) {
	m := newTestApp(t, seeded())

	if m.board.Loading() {
		t.Error("still loading after list")
	}
	if m.board.Len() != 3 {
		t.Fatalf("Len = %d, want 3", m.board.Len())
	}
	view := m.View()
	for _, want := range []string{"My Tasks", "2 tasks remaining", "Buy milk", "Write report"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if len(m.items) != 3 {
		t.Errorf("items = %d, want 3", len(m.items))
	}
}

func TestApp_LoadFailureShowsBanner(t *testing.T) {
	svc := seeded()
	svc.ListErr = errors.New("connection refused")
	m := newTestApp(t, svc)

	if m.board.Loading() {
		t.Error("loading should be cleared after failure")
	}
	if m.board.Len() != 0 {
		t.Errorf("Len = %d, want 0", m.board.Len())
	}
	if !strings.Contains(m.View(), board.MsgLoadFailed) {
		t.Errorf("view missing banner:\n%s", m.View())
	}
}

func TestApp_EmptyState(t *testing.T) {
	m := newTestApp(t, testutil.NewFakeService())
	view := m.View()
	for _, want := range []string{emptyText, emptyHintText, "0 tasks remaining"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestApp_SubmitCreatesOnceWithTrimmedTitle(t *testing.T) {
	svc := testutil.NewFakeService()
	m := newTestApp(t, svc)

	m.input.field.SetValue("  Buy milk  ")
	m, cmd := send(t, m, press("enter"))
	if cmd == nil {
		t.Fatal("submit returned no command")
	}
	if !m.input.inFlight {
		t.Error("input should be in flight")
	}

	// a second submit while in flight is ignored
	m, again := send(t, m, press("enter"))
	if again != nil {
		t.Error("second submit issued a command")
	}

	m = run(t, m, cmd)

	if n := svc.CallCount("create"); n != 1 {
		t.Fatalf("create calls = %d, want 1", n)
	}
	if got := svc.Calls()[1].Title; got != "Buy milk" {
		t.Errorf("created title = %q, want %q", got, "Buy milk")
	}
	if m.input.inFlight {
		t.Error("input still in flight")
	}
	if v := m.input.field.Value(); v != "" {
		t.Errorf("draft = %q, want cleared", v)
	}
	if got := m.board.At(0).Title; got != "Buy milk" {
		t.Errorf("first task = %q, want %q", got, "Buy milk")
	}
}

func TestApp_BlankSubmitIsNoop(t *testing.T) {
	svc := testutil.NewFakeService()
	m := newTestApp(t, svc)

	m.input.field.SetValue("   ")
	m, cmd := send(t, m, press("enter"))
	if cmd != nil {
		t.Error("blank submit issued a command")
	}
	if m.input.inFlight {
		t.Error("blank submit set in flight")
	}
	if n := svc.CallCount("create"); n != 0 {
		t.Errorf("create calls = %d, want 0", n)
	}
}

func TestApp_CreateFailureKeepsDraft(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.CreateErr = errors.New("boom")
	m := newTestApp(t, svc)

	m.input.field.SetValue("Buy milk")
	m, cmd := send(t, m, press("enter"))
	m = run(t, m, cmd)

	if v := m.input.field.Value(); v != "Buy milk" {
		t.Errorf("draft = %q, want kept", v)
	}
	if m.input.inFlight {
		t.Error("input still in flight")
	}
	if m.board.Err() != board.MsgAddFailed {
		t.Errorf("Err = %q, want %q", m.board.Err(), board.MsgAddFailed)
	}
	if m.board.Len() != 0 {
		t.Errorf("Len = %d, want 0", m.board.Len())
	}
}

func TestApp_ToggleTwiceRestores(t *testing.T) {
	svc := seeded()
	m := toList(t, newTestApp(t, svc))

	m, cmd := send(t, m, press("x"))
	if !m.board.Busy("a1") {
		t.Error("a1 should be busy while the update is in flight")
	}
	m = run(t, m, cmd)
	if !m.board.At(0).Completed {
		t.Fatal("a1 not completed after toggle")
	}
	if m.board.Busy("a1") {
		t.Error("a1 still busy")
	}
	if !strings.Contains(m.View(), "1 task remaining") {
		t.Errorf("view missing count:\n%s", m.View())
	}

	m, cmd = send(t, m, press(" "))
	m = run(t, m, cmd)
	if m.board.At(0).Completed {
		t.Error("a1 completed after second toggle")
	}
	if got := m.board.At(1).ID; got != "a2" {
		t.Errorf("order changed: At(1) = %q", got)
	}
}

func TestApp_BusyItemIgnoresControls(t *testing.T) {
	svc := seeded()
	m := toList(t, newTestApp(t, svc))

	m, pending := send(t, m, press("x"))
	if pending == nil {
		t.Fatal("toggle returned no command")
	}
	for _, k := range []string{"x", "d", "e"} {
		var cmd tea.Cmd
		m, cmd = send(t, m, press(k))
		if cmd != nil {
			t.Errorf("%q on busy item issued a command", k)
		}
	}
	if m.editing != "" {
		t.Error("busy item entered edit mode")
	}

	m = run(t, m, pending)
	if n := svc.CallCount("update"); n != 1 {
		t.Errorf("update calls = %d, want 1", n)
	}
	if n := svc.CallCount("delete"); n != 0 {
		t.Errorf("delete calls = %d, want 0", n)
	}
}

func TestApp_EditCommit(t *testing.T) {
	svc := seeded()
	m := toList(t, newTestApp(t, svc))

	m, _ = send(t, m, press("e"))
	if m.editing != "a1" {
		t.Fatalf("editing = %q, want a1", m.editing)
	}
	if v := m.items["a1"].draft.Value(); v != "Buy milk" {
		t.Errorf("draft seeded with %q", v)
	}

	m.items["a1"].draft.SetValue("  Buy oat milk ")
	m, cmd := send(t, m, press("enter"))
	m = run(t, m, cmd)

	if m.editing != "" || m.items["a1"].editing {
		t.Error("still editing after successful commit")
	}
	if got := m.board.At(0).Title; got != "Buy oat milk" {
		t.Errorf("title = %q, want %q", got, "Buy oat milk")
	}
	calls := svc.Calls()
	last := calls[len(calls)-1]
	if last.Op != "update" || last.Updates.Title == nil || *last.Updates.Title != "Buy oat milk" {
		t.Errorf("last call = %+v", last)
	}
	if last.Updates.Completed != nil {
		t.Error("title edit also sent completed")
	}
}

func TestApp_EditBlurCommits(t *testing.T) {
	svc := seeded()
	m := toList(t, newTestApp(t, svc))

	m, _ = send(t, m, press("e"))
	m.items["a1"].draft.SetValue("Buy bread")
	m, cmd := send(t, m, press("tab"))
	m = run(t, m, cmd)

	if got := m.board.At(0).Title; got != "Buy bread" {
		t.Errorf("title = %q, want %q", got, "Buy bread")
	}
}

func TestApp_EditEmptyCommitRejected(t *testing.T) {
	svc := seeded()
	m := toList(t, newTestApp(t, svc))

	m, _ = send(t, m, press("e"))
	m.items["a1"].draft.SetValue("   ")
	m, cmd := send(t, m, press("enter"))
	if cmd != nil {
		t.Error("empty commit issued a command")
	}
	if m.editing != "a1" {
		t.Error("left edit mode after rejected commit")
	}
	if n := svc.CallCount("update"); n != 0 {
		t.Errorf("update calls = %d, want 0", n)
	}
}

func TestApp_EditFailureRevertsDraft(t *testing.T) {
	svc := seeded()
	svc.UpdateErr = errors.New("boom")
	m := toList(t, newTestApp(t, svc))

	m, _ = send(t, m, press("e"))
	m.items["a1"].draft.SetValue("Something else")
	m, cmd := send(t, m, press("enter"))
	m = run(t, m, cmd)

	if m.editing != "a1" {
		t.Error("left edit mode after failed commit")
	}
	if v := m.items["a1"].draft.Value(); v != "Buy milk" {
		t.Errorf("draft = %q, want reverted", v)
	}
	if m.board.Err() != board.MsgUpdateFailed {
		t.Errorf("Err = %q", m.board.Err())
	}
	if m.board.Busy("a1") {
		t.Error("a1 still busy")
	}
}

func TestApp_EditCancelMakesNoCall(t *testing.T) {
	svc := seeded()
	m := toList(t, newTestApp(t, svc))

	m, _ = send(t, m, press("e"))
	m.items["a1"].draft.SetValue("Changed")
	m, cmd := send(t, m, press("esc"))
	if cmd != nil {
		t.Error("cancel issued a command")
	}
	if m.editing != "" {
		t.Error("still editing after cancel")
	}
	if n := svc.CallCount("update"); n != 0 {
		t.Errorf("update calls = %d, want 0", n)
	}
	view := m.View()
	if !strings.Contains(view, "Buy milk") || strings.Contains(view, "Changed") {
		t.Errorf("view did not restore title:\n%s", view)
	}
}

func TestApp_CompletedTaskCannotBeEdited(t *testing.T) {
	m := toList(t, newTestApp(t, seeded()))

	m, _ = send(t, m, press("down"))
	m, cmd := send(t, m, press("e"))
	if cmd != nil || m.editing != "" {
		t.Error("completed task entered edit mode")
	}
}

func TestApp_Delete(t *testing.T) {
	svc := seeded()
	m := toList(t, newTestApp(t, svc))

	m, _ = send(t, m, press("down"))
	m, _ = send(t, m, press("down"))
	m, cmd := send(t, m, press("d"))
	m = run(t, m, cmd)

	if m.board.Len() != 2 {
		t.Fatalf("Len = %d, want 2", m.board.Len())
	}
	if m.board.Index("a3") >= 0 {
		t.Error("a3 still present")
	}
	if _, ok := m.items["a3"]; ok {
		t.Error("row state for a3 not dropped")
	}
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want clamped to 1", m.cursor)
	}
}

func TestApp_DeleteFailureReenables(t *testing.T) {
	svc := seeded()
	svc.DeleteErr = errors.New("boom")
	m := toList(t, newTestApp(t, svc))

	m, cmd := send(t, m, press("d"))
	m = run(t, m, cmd)

	if m.board.Len() != 3 {
		t.Errorf("Len = %d, want 3", m.board.Len())
	}
	if m.board.Busy("a1") {
		t.Error("a1 still busy")
	}
	if !strings.Contains(m.View(), board.MsgDeleteFailed) {
		t.Errorf("view missing banner:\n%s", m.View())
	}

	// the next success clears the banner
	svc.DeleteErr = nil
	m, cmd = send(t, m, press("d"))
	m = run(t, m, cmd)
	if m.board.Err() != "" {
		t.Errorf("Err = %q, want cleared", m.board.Err())
	}
}

func TestApp_Reload(t *testing.T) {
	svc := seeded()
	m := toList(t, newTestApp(t, svc))

	svc.AddTask("a4", "Call mom", false)
	m, cmd := send(t, m, press("r"))
	if !m.board.Loading() {
		t.Error("reload did not set loading")
	}
	m = run(t, m, cmd)
	if m.board.Len() != 4 {
		t.Errorf("Len = %d, want 4", m.board.Len())
	}
}

func TestApp_QuitOnlyFromList(t *testing.T) {
	m := newTestApp(t, seeded())

	m, _ = send(t, m, press("q"))
	if v := m.input.field.Value(); v != "q" {
		t.Errorf("draft = %q, want %q", v, "q")
	}

	m = toList(t, m)
	_, cmd := send(t, m, press("q"))
	if cmd == nil {
		t.Fatal("q in list returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q in list did not quit")
	}
}

func TestApp_CursorStaysInBounds(t *testing.T) {
	m := toList(t, newTestApp(t, seeded()))

	m, _ = send(t, m, press("up"))
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}
	for i := 0; i < 5; i++ {
		m, _ = send(t, m, press("j"))
	}
	if m.cursor != 2 {
		t.Errorf("cursor = %d, want 2", m.cursor)
	}
}

func lastUpdateTitle(t *testing.T, svc *testutil.FakeService) string {
	t.Helper()
	calls := svc.Calls()
	last := calls[len(calls)-1]
	if last.Op != "update" || last.Updates.Title == nil {
		t.Fatalf("last call = %+v, want a title update", last)
	}
	return *last.Updates.Title
}

func TestApp_UntouchedEditKeepsLongTitle(t *testing.T) {
	long := strings.Repeat("x", 300)
	svc := testutil.NewFakeService()
	svc.AddTask("a1", long, false)
	m := toList(t, newTestApp(t, svc))

	m, _ = send(t, m, press("e"))
	m, cmd := send(t, m, press("enter"))
	m = run(t, m, cmd)

	if got := lastUpdateTitle(t, svc); got != long {
		t.Errorf("sent title has %d runes, want %d", len(got), len(long))
	}
	if got := m.board.At(0).Title; got != long {
		t.Errorf("stored title has %d runes, want %d", len(got), len(long))
	}
}

func TestApp_UntouchedEditKeepsMultilineTitle(t *testing.T) {
	title := "Pack:\n\tshoes\n\tcoat"
	svc := testutil.NewFakeService()
	svc.AddTask("a1", title, false)
	m := toList(t, newTestApp(t, svc))

	m, _ = send(t, m, press("e"))
	m, cmd := send(t, m, press("tab"))
	m = run(t, m, cmd)

	if got := lastUpdateTitle(t, svc); got != title {
		t.Errorf("sent title %q, want %q", got, title)
	}
}

func TestApp_EditedLongTitleIsNotCut(t *testing.T) {
	svc := seeded()
	m := toList(t, newTestApp(t, svc))

	long := strings.Repeat("y", 400)
	m, _ = send(t, m, press("e"))
	m.items["a1"].draft.SetValue(long)
	m, cmd := send(t, m, press("enter"))
	m = run(t, m, cmd)

	if got := lastUpdateTitle(t, svc); got != long {
		t.Errorf("sent title has %d runes, want %d", len(got), len(long))
	}
}

func TestApp_SubmitLongTitleIsNotCut(t *testing.T) {
	svc := testutil.NewFakeService()
	m := newTestApp(t, svc)

	long := strings.Repeat("z", 300)
	m.input.field.SetValue(long)
	m, cmd := send(t, m, press("enter"))
	m = run(t, m, cmd)

	if got := m.board.At(0).Title; got != long {
		t.Errorf("created title has %d runes, want %d", len(got), len(long))
	}
}
