package paintview

import "testing"

type fakeCommand struct {
	name    string
	applied bool
}

func (c *fakeCommand) Execute() { c.applied = true }
func (c *fakeCommand) Undo()    { c.applied = false }

func TestHistoryCapAndRedoInvalidation(t *testing.T) {
	h := NewHistoryManager(3)

	a := &fakeCommand{name: "A"}
	b := &fakeCommand{name: "B"}
	c := &fakeCommand{name: "C"}
	d := &fakeCommand{name: "D"}
	e := &fakeCommand{name: "E"}

	for _, cmd := range []*fakeCommand{a, b, c, d, e} {
		cmd.Execute()
		h.AddCommand(cmd)
	}

	if len(h.undo) != 3 {
		t.Fatalf("undo stack len = %d, want 3", len(h.undo))
	}
	names := []string{h.undo[0].(*fakeCommand).name, h.undo[1].(*fakeCommand).name, h.undo[2].(*fakeCommand).name}
	if names[0] != "C" || names[1] != "D" || names[2] != "E" {
		t.Fatalf("undo stack = %v, want [C D E]", names)
	}

	h.Undo()
	h.Undo()
	if len(h.undo) != 1 || h.undo[0].(*fakeCommand).name != "C" {
		t.Fatalf("undo stack after two undos = %v, want [C]", h.undo)
	}
	if len(h.redo) != 2 || h.redo[0].(*fakeCommand).name != "E" || h.redo[1].(*fakeCommand).name != "D" {
		t.Fatalf("redo stack = %v, want [E D]", h.redo)
	}

	f := &fakeCommand{name: "F"}
	f.Execute()
	h.AddCommand(f)

	if len(h.undo) != 2 || h.undo[0].(*fakeCommand).name != "C" || h.undo[1].(*fakeCommand).name != "F" {
		t.Fatalf("undo stack after new command = %v, want [C F]", h.undo)
	}
	if len(h.redo) != 0 {
		t.Fatalf("redo stack should be emptied by a new command, got %v", h.redo)
	}
}

func TestUndoRedoSymmetry(t *testing.T) {
	h := NewHistoryManager(50)
	a := &fakeCommand{name: "A"}
	a.Execute()
	h.AddCommand(a)

	if !h.CanUndo() || h.CanRedo() {
		t.Fatal("expected CanUndo=true, CanRedo=false")
	}

	if popped := h.Undo(); popped != Command(a) {
		t.Error("Undo should return the popped command")
	}
	if a.applied {
		t.Error("command should report undone")
	}
	if h.CanUndo() || !h.CanRedo() {
		t.Fatal("expected CanUndo=false, CanRedo=true after Undo")
	}

	if popped := h.Redo(); popped != Command(a) {
		t.Error("Redo should return the popped command")
	}
	if !a.applied {
		t.Error("command should report re-applied")
	}
	if !h.CanUndo() || h.CanRedo() {
		t.Fatal("expected CanUndo=true, CanRedo=false after Redo")
	}
}

func TestUndoRedoOnEmptyStacksReturnNil(t *testing.T) {
	h := NewHistoryManager(10)
	if h.Undo() != nil {
		t.Error("Undo on empty stack should return nil")
	}
	if h.Redo() != nil {
		t.Error("Redo on empty stack should return nil")
	}
}

func TestSetMaxHistorySizeTrims(t *testing.T) {
	h := NewHistoryManager(50)
	for i := 0; i < 5; i++ {
		cmd := &fakeCommand{}
		cmd.Execute()
		h.AddCommand(cmd)
	}
	h.SetMaxHistorySize(2)
	if len(h.undo) != 2 {
		t.Errorf("undo stack len after shrinking bound = %d, want 2", len(h.undo))
	}
}

func TestSetMaxHistorySizeBelowOneClampsToOne(t *testing.T) {
	h := NewHistoryManager(50)
	h.SetMaxHistorySize(-5)
	if h.max != 1 {
		t.Errorf("max = %d, want 1", h.max)
	}
}

func TestUndoRedoOnEmptyStacksAreNoOps(t *testing.T) {
	h := NewHistoryManager(10)
	h.Undo()
	h.Redo()
	if h.CanUndo() || h.CanRedo() {
		t.Error("expected no-op on empty stacks")
	}
}
