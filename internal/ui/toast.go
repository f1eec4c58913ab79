package ui

import "github.com/HARSHsabne/Udgir-Marketplace-App/internal/apperr"

// Toast is the transient message payload the page renders bottom-right.
// Stateless between calls: the page replaces the previous toast wholesale.
type Toast struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func SuccessToast(title, message string) Toast {
	return Toast{Title: title, Message: message, Type: "success"}
}

func ErrorToast(title, message string) Toast {
	return Toast{Title: title, Message: message, Type: "error"}
}

func InfoToast(title, message string) Toast {
	return Toast{Title: title, Message: message, Type: "info"}
}

// ToastForError maps an error to its user-facing toast using the taxonomy
// titles of the error kinds.
func ToastForError(err error) Toast {
	msg := apperr.DisplayMessage(err)
	switch apperr.KindOf(err) {
	case apperr.Configuration:
		return ErrorToast("Configuration Error", msg)
	case apperr.Authentication:
		return ErrorToast("Authentication Error", msg)
	case apperr.Input:
		return ErrorToast("Input Error", msg)
	case apperr.Upload:
		return ErrorToast("Upload Error", msg)
	default:
		return ErrorToast("Error", msg)
	}
}
