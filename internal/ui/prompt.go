package ui

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/thesavant42/marsphotos/internal/api"
	"github.com/thesavant42/marsphotos/internal/models"
)

// ErrUntrustedURL is returned when a photo URL is not on a NASA domain
var ErrUntrustedURL = errors.New("untrusted image url")

// sanitizeInput removes null bytes and other invisible control characters from input
func sanitizeInput(s string) string {
	return strings.Map(func(r rune) rune {
		if r == 0 || (r < 32 && r != '\t') || r == 127 {
			return -1
		}
		return r
	}, s)
}

// ConfirmOpenPhoto asks whether to open photo in the system browser
func ConfirmOpenPhoto(photo models.PhotoRecord, msgs Messages) (bool, error) {
	var open bool

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf(msgs.OpenTitle, photo.ID)).
				Description(fmt.Sprintf(msgs.OpenDescription, photo.Rover.Name, photo.Camera.FullName, photo.EarthDate)).
				Affirmative(msgs.Yes).
				Negative(msgs.No).
				Value(&open),
		),
	).WithTheme(NewAppTheme())

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, fmt.Errorf("prompt cancelled: %w", err)
	}
	return open, nil
}

// OpenPhoto opens the photo's image in the system browser behind a spinner.
// Only NASA-hosted URLs are opened; plain http is upgraded to https.
func OpenPhoto(photo models.PhotoRecord, msgs Messages) error {
	if !api.IsTrustedImageURL(photo.ImgSrc) {
		return fmt.Errorf("%w: %s", ErrUntrustedURL, photo.ImgSrc)
	}
	target := api.SecureImageURL(photo.ImgSrc)

	var openErr error
	if err := RunWithSpinner(msgs.Opening, func() {
		openErr = openURL(target)
	}); err != nil {
		return err
	}
	return openErr
}

// openURL opens a URL in the default browser (cross-platform)
func openURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default: // linux, freebsd, etc.
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}
