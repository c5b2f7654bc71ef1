package page

import (
	"time"

	"github.com/google/uuid"
)

// ToastKind selects the look of a toast.
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
	ToastInfo    ToastKind = "info"
)

// DefaultToastDuration is how long a toast stays on screen.
const DefaultToastDuration = 4 * time.Second

// Toast is a transient notification shown by the toaster. The toaster owns
// its visibility once delivered; the server only describes it.
type Toast struct {
	ID       string
	Kind     ToastKind
	Message  string
	Duration time.Duration
}

// NewToast returns a toast with a unique element ID and the default duration.
func NewToast(kind ToastKind, message string) Toast {
	return Toast{
		ID:       "toast-" + uuid.NewString(),
		Kind:     kind,
		Message:  message,
		Duration: DefaultToastDuration,
	}
}

// DurationMillis is the duration in the unit toaster.js expects.
func (t Toast) DurationMillis() int64 {
	return t.Duration.Milliseconds()
}
