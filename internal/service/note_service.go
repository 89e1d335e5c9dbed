package service

import (
	"context"
	"encoding/json"

	"notes-be/internal/constant"
	"notes-be/internal/dto"
	"notes-be/internal/entity"
	"notes-be/internal/repository"

	"github.com/gofiber/fiber/v2/log"
)

type INoteService interface {
	GetAll(ctx context.Context) ([]*dto.NoteResponse, error)
	Show(ctx context.Context, id string) (*dto.NoteResponse, error)
	Create(ctx context.Context, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	Update(ctx context.Context, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	Delete(ctx context.Context, id string) error
}

type noteService struct {
	noteRepository   repository.INoteRepository
	publisherService IPublisherService
}

func NewNoteService(noteRepository repository.INoteRepository, publisherService IPublisherService) INoteService {
	return &noteService{
		noteRepository:   noteRepository,
		publisherService: publisherService,
	}
}

func (c *noteService) GetAll(ctx context.Context) ([]*dto.NoteResponse, error) {
	notes, err := c.noteRepository.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.NoteResponse, 0, len(notes))
	for _, note := range notes {
		res = append(res, toNoteResponse(note))
	}

	return res, nil
}

func (c *noteService) Show(ctx context.Context, idParam string) (*dto.NoteResponse, error) {
	id, err := repository.ParseNoteId(idParam)
	if err != nil {
		return nil, err
	}

	note, err := c.noteRepository.GetById(ctx, id)
	if err != nil {
		return nil, err
	}

	return toNoteResponse(note), nil
}

func (c *noteService) Create(ctx context.Context, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	important := false
	if req.Important != nil {
		important = *req.Important
	}

	note := entity.Note{
		Content:   req.Content,
		Important: important,
	}

	err := c.noteRepository.Create(ctx, &note)
	if err != nil {
		return nil, err
	}

	c.publish(ctx, constant.NoteEventCreated, &note)

	return toNoteResponse(&note), nil
}

// Update replaces both fields of an existing note. An omitted important flag
// is assigned as false; there is no partial update.
func (c *noteService) Update(ctx context.Context, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	id, err := repository.ParseNoteId(req.Id)
	if err != nil {
		return nil, err
	}

	note, err := c.noteRepository.GetById(ctx, id)
	if err != nil {
		return nil, err
	}

	note.Content = req.Content
	note.Important = req.Important != nil && *req.Important

	err = c.noteRepository.Update(ctx, note)
	if err != nil {
		return nil, err
	}

	c.publish(ctx, constant.NoteEventUpdated, note)

	return toNoteResponse(note), nil
}

func (c *noteService) Delete(ctx context.Context, idParam string) error {
	id, err := repository.ParseNoteId(idParam)
	if err != nil {
		return err
	}

	err = c.noteRepository.DeleteById(ctx, id)
	if err != nil {
		return err
	}

	c.publish(ctx, constant.NoteEventDeleted, &entity.Note{Id: id})

	return nil
}

// publish emits a change event. Delivery failures are logged and never fail
// the request that caused them.
func (c *noteService) publish(ctx context.Context, eventType string, note *entity.Note) {
	payload := dto.PublishNoteChangedMessage{
		Type:   eventType,
		NoteId: note.Id.Hex(),
	}

	payloadJson, err := json.Marshal(payload)
	if err != nil {
		log.Warnf("[NoteService] cannot encode %s event for note %s: %v", eventType, payload.NoteId, err)
		return
	}

	if err := c.publisherService.Publish(ctx, payloadJson); err != nil {
		log.Warnf("[NoteService] cannot publish %s event for note %s: %v", eventType, payload.NoteId, err)
	}
}

func toNoteResponse(note *entity.Note) *dto.NoteResponse {
	return &dto.NoteResponse{
		Id:        note.Id.Hex(),
		Content:   note.Content,
		Important: note.Important,
	}
}
