package notify

// Appearance is the visual weight of a confirm button.
type Appearance string

const (
	AppearancePrimary     Appearance = "primary"
	AppearanceSecondary   Appearance = "secondary"
	AppearanceOutline     Appearance = "outline"
	AppearanceSubtle      Appearance = "subtle"
	AppearanceTransparent Appearance = "transparent"
)

// ConfirmOptions describes a confirmation request.
type ConfirmOptions struct {
	Title             string
	Message           string
	ConfirmText       string
	CancelText        string
	ConfirmAppearance Appearance
	CancelAppearance  Appearance
}

// TitleOrDefault returns the title, falling back to "Confirm".
func (o ConfirmOptions) TitleOrDefault() string {
	if o.Title == "" {
		return "Confirm"
	}
	return o.Title
}

// ConfirmTextOrDefault returns the affirmative button label.
func (o ConfirmOptions) ConfirmTextOrDefault() string {
	if o.ConfirmText == "" {
		return "Confirm"
	}
	return o.ConfirmText
}

// CancelTextOrDefault returns the cancel button label.
func (o ConfirmOptions) CancelTextOrDefault() string {
	if o.CancelText == "" {
		return "Cancel"
	}
	return o.CancelText
}

// ConfirmAppearanceOrDefault returns the affirmative button appearance.
func (o ConfirmOptions) ConfirmAppearanceOrDefault() Appearance {
	if o.ConfirmAppearance == "" {
		return AppearancePrimary
	}
	return o.ConfirmAppearance
}

// CancelAppearanceOrDefault returns the cancel button appearance.
func (o ConfirmOptions) CancelAppearanceOrDefault() Appearance {
	if o.CancelAppearance == "" {
		return AppearanceSecondary
	}
	return o.CancelAppearance
}

// Size is the dialog width class.
type Size string

const (
	SizeSmall      Size = "small"
	SizeMedium     Size = "medium"
	SizeLarge      Size = "large"
	SizeFullscreen Size = "fullscreen"
)

// ModalType controls whether a dialog blocks the rest of the UI.
type ModalType string

const (
	ModalTypeModal    ModalType = "modal"
	ModalTypeNonModal ModalType = "non-modal"
	ModalTypeAlert    ModalType = "alert"
)

// Backdrop controls the overlay drawn behind a dialog.
type Backdrop string

const (
	BackdropNone        Backdrop = "none"
	BackdropOpaque      Backdrop = "opaque"
	BackdropTransparent Backdrop = "transparent"
)

// DialogOptions describes an arbitrary dialog.
type DialogOptions struct {
	Title   string
	Content string // markdown
	Footer  string
	Size    Size
	// ModalType defaults to ModalTypeModal.
	ModalType ModalType
	// Backdrop defaults to BackdropOpaque.
	Backdrop Backdrop
	// CloseOnEscape and CloseOnOutsideClick default to true when nil.
	CloseOnEscape       *bool
	CloseOnOutsideClick *bool
	ClassName           string
	OnDismiss           func()
}

// Bool returns a pointer to v, for the optional dialog flags.
func Bool(v bool) *bool {
	return &v
}

// EscapeCloses reports whether the escape key dismisses the dialog.
func (o DialogOptions) EscapeCloses() bool {
	return o.CloseOnEscape == nil || *o.CloseOnEscape
}

// OutsideClickCloses reports whether a click outside dismisses the dialog.
func (o DialogOptions) OutsideClickCloses() bool {
	return o.CloseOnOutsideClick == nil || *o.CloseOnOutsideClick
}

// SizeOrDefault returns the dialog size, defaulting to medium.
func (o DialogOptions) SizeOrDefault() Size {
	if o.Size == "" {
		return SizeMedium
	}
	return o.Size
}

// ModalTypeOrDefault returns the modal type, defaulting to modal.
func (o DialogOptions) ModalTypeOrDefault() ModalType {
	if o.ModalType == "" {
		return ModalTypeModal
	}
	return o.ModalType
}

// BackdropOrDefault returns the backdrop, defaulting to opaque.
func (o DialogOptions) BackdropOrDefault() Backdrop {
	if o.Backdrop == "" {
		return BackdropOpaque
	}
	return o.Backdrop
}
