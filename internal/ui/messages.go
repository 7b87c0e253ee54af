package ui

// CopyRequestMsg asks the root model to put Text on the clipboard.
type CopyRequestMsg struct {
	Text string
}

// BackMsg asks the root model to return to the list view.
type BackMsg struct{}
