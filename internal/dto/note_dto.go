package dto

type CreateNoteRequest struct {
	Content   string `json:"content" validate:"required"`
	Important *bool  `json:"important"`
}

type UpdateNoteRequest struct {
	Id        string
	Content   string `json:"content"`
	Important *bool  `json:"important"`
}

type NoteResponse struct {
	Id        string `json:"id"`
	Content   string `json:"content"`
	Important bool   `json:"important"`
}

type PublishNoteChangedMessage struct {
	Type   string `json:"type"`
	NoteId string `json:"note_id"`
}
