package constant

const (
	NoteModelName = "Note"

	NoteContentMinLength = 5

	NoteEventCreated = "created"
	NoteEventUpdated = "updated"
	NoteEventDeleted = "deleted"
)
