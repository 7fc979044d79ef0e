package usecase

import (
	"errors"

	promptdomain "channelsync-backend/internal/prompt/domain"
	promptdto "channelsync-backend/internal/prompt/dto"
	"channelsync-backend/internal/prompt/repository"
)

var (
	ErrPromptNotFound = errors.New("prompt not found")
	ErrNoActivePrompt = errors.New("no active prompt")
)

// PromptUsecase handles prompt CRUD; the single-active invariant is enforced
// by the repository transactions.
type PromptUsecase interface {
	CreatePrompt(req *promptdto.CreatePromptRequest) (*promptdomain.Prompt, error)
	GetPrompt(id string) (*promptdomain.Prompt, error)
	GetActivePrompt() (*promptdomain.Prompt, error)
	ListPrompts(limit, offset int) ([]*promptdomain.Prompt, int64, error)
	UpdatePrompt(id string, req *promptdto.UpdatePromptRequest) (*promptdomain.Prompt, error)
	DeletePrompt(id string) error
}

// promptUsecase implements PromptUsecase interface
type promptUsecase struct {
	promptRepo repository.PromptRepository
}

// NewPromptUsecase creates a new instance of promptUsecase
func NewPromptUsecase(promptRepo repository.PromptRepository) PromptUsecase {
	return &promptUsecase{
		promptRepo: promptRepo,
	}
}

func (u *promptUsecase) CreatePrompt(req *promptdto.CreatePromptRequest) (*promptdomain.Prompt, error) {
	prompt := &promptdomain.Prompt{
		Name:     req.Name,
		Content:  req.Content,
		IsActive: req.IsActive,
	}
	if err := u.promptRepo.Create(prompt); err != nil {
		return nil, err
	}
	return prompt, nil
}

func (u *promptUsecase) GetPrompt(id string) (*promptdomain.Prompt, error) {
	prompt, err := u.promptRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if prompt == nil {
		return nil, ErrPromptNotFound
	}
	return prompt, nil
}

func (u *promptUsecase) GetActivePrompt() (*promptdomain.Prompt, error) {
	prompt, err := u.promptRepo.FindActive()
	if err != nil {
		return nil, err
	}
	if prompt == nil {
		return nil, ErrNoActivePrompt
	}
	return prompt, nil
}

func (u *promptUsecase) ListPrompts(limit, offset int) ([]*promptdomain.Prompt, int64, error) {
	return u.promptRepo.FindAll(limit, offset)
}

func (u *promptUsecase) UpdatePrompt(id string, req *promptdto.UpdatePromptRequest) (*promptdomain.Prompt, error) {
	prompt, err := u.promptRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if prompt == nil {
		return nil, ErrPromptNotFound
	}

	if req.Name != nil {
		prompt.Name = *req.Name
	}
	if req.Content != nil {
		prompt.Content = *req.Content
	}
	if req.IsActive != nil {
		prompt.IsActive = *req.IsActive
	}

	if err := u.promptRepo.Update(prompt); err != nil {
		return nil, err
	}
	return prompt, nil
}

func (u *promptUsecase) DeletePrompt(id string) error {
	prompt, err := u.promptRepo.FindByID(id)
	if err != nil {
		return err
	}
	if prompt == nil {
		return ErrPromptNotFound
	}
	return u.promptRepo.Delete(id)
}
