package ui

import (
	"fmt"

	"github.com/charmbracelet/huh/spinner"
)

// RunWithSpinner executes action while displaying a spinner titled title.
//
// Example:
//
//	var openErr error
//	err := RunWithSpinner("Opening browser...", func() {
//	    openErr = openURL(u)
//	})
//	if err != nil { return err }
//	if openErr != nil { return openErr }
func RunWithSpinner(title string, action func()) error {
	err := spinner.New().
		Title(title).
		Action(action).
		Run()
	if err != nil {
		return fmt.Errorf("spinner error: %w", err)
	}
	return nil
}
