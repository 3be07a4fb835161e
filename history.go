package paintview

// Command is an undoable unit of work. Execute and Undo must be exact
// inverses of each other once Execute has run.
type Command interface {
	Execute()
	Undo()
}

// Mergeable commands may absorb a newly-added command into themselves
// instead of the new command becoming its own history entry, collapsing
// e.g. a rapid run of same-layer same-color strokes into one undo step.
type Mergeable interface {
	Command
	CanMerge(next Command) bool
	Merge(next Command) Command
}

const defaultMaxHistorySize = 50

// HistoryManager holds bounded undo and redo stacks of Command. Adding a
// fresh command empties the redo stack.
type HistoryManager struct {
	undo []Command
	redo []Command
	max  int
}

// NewHistoryManager creates a HistoryManager bounded to maxSize entries.
// Values below 1 are raised to 1 (ConfigOutOfRange: sanitized).
func NewHistoryManager(maxSize int) *HistoryManager {
	if maxSize < 1 {
		maxSize = 1
	}
	return &HistoryManager{max: maxSize}
}

// ExecuteCommand runs cmd.Execute and records it via AddCommand.
func (h *HistoryManager) ExecuteCommand(cmd Command) {
	cmd.Execute()
	h.AddCommand(cmd)
}

// AddCommand records an already-applied command: it clears the redo stack,
// attempts to merge into the top of the undo stack, and trims the oldest
// entry if the stack exceeds its bound.
func (h *HistoryManager) AddCommand(cmd Command) {
	h.redo = h.redo[:0]

	if len(h.undo) > 0 {
		if top, ok := h.undo[len(h.undo)-1].(Mergeable); ok && top.CanMerge(cmd) {
			h.undo[len(h.undo)-1] = top.Merge(cmd)
			debugLogHistory("merge", len(h.undo), len(h.redo))
			return
		}
	}

	h.undo = append(h.undo, cmd)
	if len(h.undo) > h.max {
		h.undo = h.undo[len(h.undo)-h.max:]
	}
	debugLogHistory("add", len(h.undo), len(h.redo))
}

// Undo pops the most recent undo-stack command, calls its Undo, and pushes
// it onto the redo stack. A no-op returning nil on an empty undo stack.
func (h *HistoryManager) Undo() Command {
	if len(h.undo) == 0 {
		return nil
	}
	cmd := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	cmd.Undo()
	h.redo = append(h.redo, cmd)
	debugLogHistory("undo", len(h.undo), len(h.redo))
	return cmd
}

// Redo pops the most recent redo-stack command, calls its Execute, and
// pushes it back onto the undo stack. A no-op returning nil on an empty
// redo stack.
func (h *HistoryManager) Redo() Command {
	if len(h.redo) == 0 {
		return nil
	}
	cmd := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	cmd.Execute()
	h.undo = append(h.undo, cmd)
	debugLogHistory("redo", len(h.undo), len(h.redo))
	return cmd
}

// CanUndo reports whether Undo would do anything.
func (h *HistoryManager) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether Redo would do anything.
func (h *HistoryManager) CanRedo() bool { return len(h.redo) > 0 }

// Clear empties both stacks without undoing anything.
func (h *HistoryManager) Clear() {
	h.undo = h.undo[:0]
	h.redo = h.redo[:0]
}

// SetMaxHistorySize changes the undo-stack bound, trimming the oldest
// entries immediately if the new bound is smaller. Values below 1 are
// raised to 1.
func (h *HistoryManager) SetMaxHistorySize(n int) {
	if n < 1 {
		n = 1
	}
	h.max = n
	if len(h.undo) > h.max {
		h.undo = h.undo[len(h.undo)-h.max:]
	}
}
