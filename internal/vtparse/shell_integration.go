package vtparse

import "github.com/danielgatis/go-ansicode"

// ShellIntegrationMark satisfies ansicode.Handler's OSC 133 callback.
// Snippet output never carries shell prompt marks, so there's nothing to
// record beyond giving middleware a chance to observe the event.
func (t *Terminal) ShellIntegrationMark(mark ansicode.ShellIntegrationMark, exitCode int) {
	if t.middleware != nil && t.middleware.SemanticPromptMark != nil {
		t.middleware.SemanticPromptMark(mark, exitCode, func(ansicode.ShellIntegrationMark, int) {})
		return
	}
}
