package notify

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestType_IsValid(t *testing.T) {
	for _, typ := range Types {
		assert.True(t, typ.IsValid(), typ)
	}
	assert.False(t, Type("").IsValid())
	assert.False(t, Type("critical").IsValid())
}

func TestNewInput_options(t *testing.T) {
	clicked := false
	in := NewInput(TypeWarning, "disk almost full",
		WithTitle("Storage"),
		WithDuration(2*time.Second),
		WithAction("Clean up", func() { clicked = true }),
	)

	assert.Equal(t, TypeWarning, in.Type)
	assert.Equal(t, "disk almost full", in.Message)
	assert.Equal(t, "Storage", in.Title)
	require.NotNil(t, in.Duration)
	assert.Equal(t, 2*time.Second, *in.Duration)
	require.NotNil(t, in.Action)
	assert.Equal(t, "Clean up", in.Action.Label)

	in.Action.OnClick()
	assert.True(t, clicked)
}

func TestNewInput_persistent(t *testing.T) {
	in := NewInput(TypeInfo, "sticky", Persistent())
	require.NotNil(t, in.Duration)
	assert.Zero(t, *in.Duration)

	in = NewInput(TypeInfo, "default")
	assert.Nil(t, in.Duration, "nil duration defers to the engine default")
}

func TestNewID_unique_within_same_millisecond(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	pattern := regexp.MustCompile(`^notification-1700000000000-[A-Za-z0-9_-]+$`)

	seen := make(map[string]struct{}, 1000)
	for range 1000 {
		id := NewID("notification", now)
		assert.Regexp(t, pattern, id)
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestConfirmOptions_defaults(t *testing.T) {
	var o ConfirmOptions
	assert.Equal(t, "Confirm", o.TitleOrDefault())
	assert.Equal(t, "Confirm", o.ConfirmTextOrDefault())
	assert.Equal(t, "Cancel", o.CancelTextOrDefault())
	assert.Equal(t, AppearancePrimary, o.ConfirmAppearanceOrDefault())
	assert.Equal(t, AppearanceSecondary, o.CancelAppearanceOrDefault())

	o = ConfirmOptions{Title: "Delete", ConfirmText: "Delete", CancelText: "Keep", CancelAppearance: AppearanceSubtle}
	assert.Equal(t, "Delete", o.TitleOrDefault())
	assert.Equal(t, "Delete", o.ConfirmTextOrDefault())
	assert.Equal(t, "Keep", o.CancelTextOrDefault())
	assert.Equal(t, AppearanceSubtle, o.CancelAppearanceOrDefault())
}

func TestDialogOptions_defaults(t *testing.T) {
	var o DialogOptions
	assert.True(t, o.EscapeCloses())
	assert.True(t, o.OutsideClickCloses())
	assert.Equal(t, SizeMedium, o.SizeOrDefault())
	assert.Equal(t, ModalTypeModal, o.ModalTypeOrDefault())
	assert.Equal(t, BackdropOpaque, o.BackdropOrDefault())

	o = DialogOptions{
		CloseOnEscape:       Bool(false),
		CloseOnOutsideClick: Bool(false),
		Size:                SizeFullscreen,
		ModalType:           ModalTypeAlert,
		Backdrop:            BackdropNone,
	}
	assert.False(t, o.EscapeCloses())
	assert.False(t, o.OutsideClickCloses())
	assert.Equal(t, SizeFullscreen, o.SizeOrDefault())
	assert.Equal(t, ModalTypeAlert, o.ModalTypeOrDefault())
	assert.Equal(t, BackdropNone, o.BackdropOrDefault())
}
